package models

import (
	"errors"
)

// Response-related errors
var (
	// ErrResponseNotOK is returned when the server answers with a non-2xx status
	ErrResponseNotOK = errors.New("network response was not ok")
)

// Payment-related errors
var (
	// ErrInvalidPaymentDetails is returned when card fields fail validation
	ErrInvalidPaymentDetails = errors.New("invalid payment details")

	// ErrCardExpired is returned when the expiration date has passed
	ErrCardExpired = errors.New("the card's expiration date has passed")
)

// Cookie-related errors
var (
	// ErrCookieNotFound is returned when a named cookie is absent from the store
	ErrCookieNotFound = errors.New("cookie not found")
)
