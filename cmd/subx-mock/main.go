package main

import (
	"log/slog"
	"net/http"
	"os"

	"subx/internal/mockapi"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	port := "8000"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	api := mockapi.NewAPI(mockapi.DefaultPlans(), nil, logger)

	logger.Info("mock subscription server starting", "addr", ":"+port)
	logger.Info("routes",
		"subscribe", "POST /api/subscriptions/subscribe/",
		"cancel", "POST /api/subscriptions/cancel/",
		"renew", "POST /api/subscriptions/renew/",
		"change_plan", "POST /api/subscriptions/change-plan/",
	)

	if err := http.ListenAndServe(":"+port, mockapi.NewRouter(api)); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
