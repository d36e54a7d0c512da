package api

import (
	"encoding/json"
	"fmt"

	"subx/internal/models"
)

// Result is the outcome of one API call: either Data (the decoded JSON
// body) or Err is meaningful, never both.
type Result struct {
	Data interface{}
	Err  error
}

// Success wraps a decoded response body
func Success(data interface{}) Result {
	return Result{Data: data}
}

// Failure wraps an error; a nil err is replaced so the result stays a failure
func Failure(err error) Result {
	if err == nil {
		err = models.ErrResponseNotOK
	}
	return Result{Err: err}
}

// OK reports whether the call succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// Message renders the result the way it is shown to the user
func (r Result) Message() string {
	if !r.OK() {
		return fmt.Sprintf("Failure: %v", r.Err)
	}

	data, err := json.Marshal(r.Data)
	if err != nil {
		return fmt.Sprintf("Success: %v", r.Data)
	}
	return "Success: " + string(data)
}

// StatusError is returned for non-2xx responses. Its message is the generic
// ErrResponseNotOK text; status and body are kept for logs and errors.As.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return models.ErrResponseNotOK.Error()
}

func (e *StatusError) Unwrap() error {
	return models.ErrResponseNotOK
}
