// Package mockapi is an in-memory stand-in for the subscription backend,
// used for local development and end-to-end tests of the client.
package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"subx/internal/models"
)

// Plan is a purchasable subscription tier
type Plan struct {
	Name         string
	Price        string
	DurationDays int
}

// DefaultPlans mirrors the plans seeded on a fresh backend
func DefaultPlans() []Plan {
	return []Plan{
		{Name: "basic", Price: "6000.00", DurationDays: 30},
		{Name: "standard", Price: "11900.00", DurationDays: 30},
		{Name: "premium", Price: "14900.00", DurationDays: 30},
	}
}

type subscription struct {
	plan    Plan
	endDate time.Time
}

// API serves the subscription endpoints for a single user
type API struct {
	plans  map[string]Plan
	now    func() time.Time
	logger *slog.Logger

	mu     sync.Mutex
	active *subscription
}

// NewAPI creates an API; now defaults to time.Now
func NewAPI(plans []Plan, now func() time.Time, logger *slog.Logger) *API {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	byName := make(map[string]Plan, len(plans))
	for _, p := range plans {
		byName[p.Name] = p
	}

	return &API{plans: byName, now: now, logger: logger}
}

// NewRouter mounts the API with its middleware stack
func NewRouter(a *API) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	a.AppendRoutes(r)
	return r
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/api/subscriptions", func(r chi.Router) {
		r.Use(requireCSRF)
		r.Post("/subscribe/", a.subscribe)
		r.Post("/cancel/", a.cancel)
		r.Post("/renew/", a.renew)
		r.Post("/change-plan/", a.changePlan)
	})
}

// requireCSRF rejects requests whose CSRF header is missing or empty
func requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(models.CSRFHeader) == "" {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"detail": "CSRF Failed: CSRF token missing.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, err.Error())
		return
	}

	plan, ok := a.plans[req.PlanName]
	if !ok {
		writeFailure(w, fmt.Sprintf("Plan %s does not exist.", req.PlanName))
		return
	}

	details := req.PaymentDetails
	if details.MethodType == "" {
		details.MethodType = models.MethodCreditCard
	}
	if err := details.Validate(a.now()); err != nil {
		writeFailure(w, err.Error())
		return
	}

	a.mu.Lock()
	a.active = &subscription{plan: plan, endDate: a.now().AddDate(0, 0, plan.DurationDays)}
	a.mu.Unlock()

	a.logger.Info("subscribed", "plan", plan.Name, "request_id", middleware.GetReqID(r.Context()))
	writeSuccess(w, fmt.Sprintf("User has subscribed to %s plan successfully.", plan.Name))
}

func (a *API) cancel(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active == nil {
		writeFailure(w, "No active subscription found.")
		return
	}
	a.active = nil

	writeSuccess(w, "User has cancelled subscription successfully.")
}

func (a *API) renew(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active == nil {
		writeFailure(w, "No active subscription found.")
		return
	}

	now := a.now()
	if a.active.endDate.After(now) {
		writeFailure(w, "Subscription has not expired yet and cannot be renewed.")
		return
	}
	a.active = &subscription{plan: a.active.plan, endDate: now.AddDate(0, 0, a.active.plan.DurationDays)}

	writeSuccess(w, "Subscription renewed successfully.")
}

func (a *API) changePlan(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, err.Error())
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active == nil {
		writeFailure(w, "No active subscription found.")
		return
	}

	plan, ok := a.plans[req.PlanName]
	if !ok {
		writeFailure(w, fmt.Sprintf("Plan %s does not exist.", req.PlanName))
		return
	}

	// The remaining days carry over to the new plan
	a.active = &subscription{plan: plan, endDate: a.active.endDate}

	writeSuccess(w, "Subscription plan changed successfully.")
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": message})
}

func writeFailure(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
