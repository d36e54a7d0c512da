package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"subx/internal/cookies"
	"subx/internal/models"
)

// RequestIDHeader carries a per-request identifier the server can log
const RequestIDHeader = "X-Request-ID"

// Client handles communication with the subscription API
type Client struct {
	// Base URL of the API server
	BaseURL string

	// HTTP client; a zero timeout leaves requests pending until the context ends
	client *http.Client

	// Reader for the CSRF cookie
	cookies *cookies.Reader

	logger *slog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, cookieReader *cookies.Reader, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		cookies: cookieReader,
		logger:  logger,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Subscribe purchases plan using the given payment details
func (c *Client) Subscribe(ctx context.Context, plan string, details models.PaymentDetails) Result {
	return c.post(ctx, models.SubscribePath, models.SubscriptionRequest{
		PlanName:       plan,
		PaymentDetails: details,
	})
}

// Cancel cancels the current user's subscription
func (c *Client) Cancel(ctx context.Context) Result {
	return c.post(ctx, models.CancelPath, struct{}{})
}

// Renew renews the current user's subscription
func (c *Client) Renew(ctx context.Context) Result {
	return c.post(ctx, models.RenewPath, struct{}{})
}

// ChangePlan moves the current subscription to plan
func (c *Client) ChangePlan(ctx context.Context, plan string) Result {
	return c.post(ctx, models.ChangePlanPath, models.ChangePlanRequest{PlanName: plan})
}

// post sends body as JSON to path with the CSRF header and resolves the
// response into a Result. Every failure ends up in Result.Err.
func (c *Client) post(ctx context.Context, path string, body interface{}) Result {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return Failure(fmt.Errorf("error marshalling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return Failure(fmt.Errorf("error creating request: %w", err))
	}

	// An absent cookie is sent as an empty header rather than "null", the server decides
	token, _ := c.cookies.Get(models.CSRFCookieName)
	requestID := uuid.NewString()

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(models.CSRFHeader, token)
	req.Header.Set(RequestIDHeader, requestID)

	c.logger.Debug("sending request", "method", req.Method, "url", req.URL.String(), "request_id", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return Failure(err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Warn("failed to close response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Debug("request rejected",
			"status", resp.StatusCode,
			"body", string(bodyBytes),
			"request_id", requestID,
		)
		return Failure(&StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)})
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure(fmt.Errorf("error reading response body: %w", err))
	}

	// The whole body must be one JSON value, trailing data is an error
	var data interface{}
	if err := json.Unmarshal(responseBody, &data); err != nil {
		return Failure(fmt.Errorf("error decoding response: %w", err))
	}

	return Success(data)
}
