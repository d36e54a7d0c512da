package mockapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"subx/internal/api"
	"subx/internal/cookies"
	"subx/internal/mockapi"
	"subx/internal/models"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setup(t *testing.T, cookieString string) (*api.Client, *clock) {
	t.Helper()

	clk := &clock{now: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
	srv := httptest.NewServer(mockapi.NewRouter(mockapi.NewAPI(mockapi.DefaultPlans(), clk.Now, nil)))
	t.Cleanup(srv.Close)

	reader := cookies.NewReader(cookies.Static(cookieString), nil)
	return api.NewClient(srv.URL, reader, 5*time.Second, nil), clk
}

func requireStatus(t *testing.T, result api.Result, status int) {
	t.Helper()

	var statusErr *api.StatusError
	require.True(t, errors.As(result.Err, &statusErr), "expected a status error, got %v", result.Err)
	require.Equal(t, status, statusErr.StatusCode)
	require.Equal(t, "Failure: network response was not ok", result.Message())
}

func TestMockAPI_RequiresCSRF(t *testing.T) {
	client, _ := setup(t, "sessionid=abc")

	result := client.Subscribe(context.Background(), "basic", models.DefaultPaymentDetails())
	requireStatus(t, result, http.StatusForbidden)
}

func TestMockAPI_SubscriptionLifecycle(t *testing.T) {
	client, clk := setup(t, "csrftoken=token")
	ctx := context.Background()

	result := client.Subscribe(ctx, "basic", models.DefaultPaymentDetails())
	require.True(t, result.OK(), result.Message())
	require.Equal(t, map[string]interface{}{
		"success": true,
		"message": "User has subscribed to basic plan successfully.",
	}, result.Data)

	requireStatus(t, client.Renew(ctx), http.StatusBadRequest)

	result = client.ChangePlan(ctx, "premium")
	require.True(t, result.OK(), result.Message())

	requireStatus(t, client.ChangePlan(ctx, "diamond"), http.StatusBadRequest)

	clk.Advance(31 * 24 * time.Hour)
	result = client.Renew(ctx)
	require.True(t, result.OK(), result.Message())

	require.True(t, client.Cancel(ctx).OK())
	requireStatus(t, client.Cancel(ctx), http.StatusBadRequest)
}

func TestMockAPI_RejectsBadPayment(t *testing.T) {
	client, _ := setup(t, "csrftoken=token")
	ctx := context.Background()

	requireStatus(t, client.Subscribe(ctx, "unknown", models.DefaultPaymentDetails()), http.StatusBadRequest)

	details := models.DefaultPaymentDetails()
	details.CardNumber = "4242-4242-4242-4241"
	requireStatus(t, client.Subscribe(ctx, "basic", details), http.StatusBadRequest)

	details = models.DefaultPaymentDetails()
	details.ExpirationDate = "01/25"
	requireStatus(t, client.Subscribe(ctx, "basic", details), http.StatusBadRequest)
}

func TestMockAPI_Heartbeat(t *testing.T) {
	srv := httptest.NewServer(mockapi.NewRouter(mockapi.NewAPI(mockapi.DefaultPlans(), nil, nil)))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
