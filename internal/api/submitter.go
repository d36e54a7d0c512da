package api

import (
	"context"
	"log/slog"

	"subx/internal/models"
)

// Notifier presents the outcome of a submission to the user
type Notifier interface {
	Notify(result Result)
}

// NotifierFunc adapts a plain function to Notifier
type NotifierFunc func(result Result)

func (f NotifierFunc) Notify(result Result) {
	f(result)
}

// Submitter runs API calls in the background and routes each outcome to a Notifier
type Submitter struct {
	client   *Client
	notifier Notifier
	logger   *slog.Logger
}

// NewSubmitter creates a Submitter; a nil logger falls back to slog.Default
func NewSubmitter(client *Client, notifier Notifier, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{client: client, notifier: notifier, logger: logger}
}

// Submit starts a subscription purchase for plan and returns immediately.
// The notifier is called exactly once with the outcome, which is also sent
// on the returned channel before it is closed. Callers may ignore the channel.
func (s *Submitter) Submit(ctx context.Context, plan string, details models.PaymentDetails) <-chan Result {
	return s.run(ctx, func(ctx context.Context) Result {
		return s.client.Subscribe(ctx, plan, details)
	})
}

// SubmitCancel cancels the subscription in the background
func (s *Submitter) SubmitCancel(ctx context.Context) <-chan Result {
	return s.run(ctx, s.client.Cancel)
}

// SubmitRenew renews the subscription in the background
func (s *Submitter) SubmitRenew(ctx context.Context) <-chan Result {
	return s.run(ctx, s.client.Renew)
}

// SubmitChangePlan changes the subscription plan in the background
func (s *Submitter) SubmitChangePlan(ctx context.Context, plan string) <-chan Result {
	return s.run(ctx, func(ctx context.Context) Result {
		return s.client.ChangePlan(ctx, plan)
	})
}

func (s *Submitter) run(ctx context.Context, call func(context.Context) Result) <-chan Result {
	done := make(chan Result, 1)

	go func() {
		defer close(done)

		result := call(ctx)
		if result.OK() {
			s.logger.Info("request succeeded", "response", result.Data)
		} else {
			s.logger.Error("request failed", "error", result.Err)
		}

		if s.notifier != nil {
			s.notifier.Notify(result)
		}
		done <- result
	}()

	return done
}
