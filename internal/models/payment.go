package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Payment method types accepted by the subscription endpoint
const (
	MethodCreditCard = "credit_card"
)

// PaymentDetails holds the card data sent along with a subscription purchase
type PaymentDetails struct {
	MethodType     string `json:"method_type"`
	CardNumber     string `json:"card_number" validate:"required,len=19,luhn"`
	ExpirationDate string `json:"expiration_date" validate:"required,mmyy"`
	CVC            string `json:"cvc" validate:"required,min=3,max=4,number"`
}

// DefaultPaymentDetails returns the placeholder card used when no details are supplied
func DefaultPaymentDetails() PaymentDetails {
	return PaymentDetails{
		MethodType:     MethodCreditCard,
		CardNumber:     "4242-4242-4242-4242",
		ExpirationDate: "12/25",
		CVC:            "123",
	}
}

// WithDefaults fills any empty field from DefaultPaymentDetails
func (p PaymentDetails) WithDefaults() PaymentDetails {
	def := DefaultPaymentDetails()
	if p.MethodType == "" {
		p.MethodType = def.MethodType
	}
	if p.CardNumber == "" {
		p.CardNumber = def.CardNumber
	}
	if p.ExpirationDate == "" {
		p.ExpirationDate = def.ExpirationDate
	}
	if p.CVC == "" {
		p.CVC = def.CVC
	}
	return p
}

// SubscriptionRequest is the body of a subscribe call
type SubscriptionRequest struct {
	PlanName       string         `json:"plan_name"`
	PaymentDetails PaymentDetails `json:"payment_details"`
}

// ChangePlanRequest is the body of a change-plan call
type ChangePlanRequest struct {
	PlanName string `json:"plan_name"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("luhn", func(fl validator.FieldLevel) bool {
		return LuhnValid(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register luhn validation: %v", err))
	}
	if err := v.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
		_, err := ParseExpiration(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("register mmyy validation: %v", err))
	}
	return v
}

// Validate checks the card fields and that the card has not expired at now
func (p PaymentDetails) Validate(now time.Time) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", ErrInvalidPaymentDetails, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidPaymentDetails, err)
	}

	expires, _ := ParseExpiration(p.ExpirationDate)
	if expires.Before(now) {
		return ErrCardExpired
	}

	return nil
}

// LuhnValid reports whether the digits in number pass the Luhn checksum.
// Non-digit characters such as spaces and dashes are ignored.
func LuhnValid(number string) bool {
	var digits []int
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) == 0 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// ParseExpiration parses an MM/YY expiration date into the last instant of that month (UTC)
func ParseExpiration(mmyy string) (time.Time, error) {
	parts := strings.Split(mmyy, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return time.Time{}, fmt.Errorf("expiration date %q is not in MM/YY format", mmyy)
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("expiration month %q is invalid", parts[0])
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 0 {
		return time.Time{}, fmt.Errorf("expiration year %q is invalid", parts[1])
	}

	firstNext := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstNext.Add(-time.Nanosecond), nil
}
