package models

// Subscription endpoint paths, relative to the server URL
const (
	SubscribePath  = "/api/subscriptions/subscribe/"
	CancelPath     = "/api/subscriptions/cancel/"
	RenewPath      = "/api/subscriptions/renew/"
	ChangePlanPath = "/api/subscriptions/change-plan/"
)

// CSRF cookie and the header the server expects it echoed in
const (
	CSRFCookieName = "csrftoken"
	CSRFHeader     = "X-CSRFToken"
)
