package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrUnexpected   = errors.New("unexpected error")

	ErrSeatUnavailable = errors.New("this seat is not available")
	ErrInvalidSeat     = errors.New("this seat does not exist in the current seating plan")
)

// APIError is a failure reported by the remote booking API. Kind is one of the
// sentinel errors above so callers can branch with errors.Is while Message
// stays suitable for showing to the user.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

func NewAPIError(kind error, status int, message string) *APIError {
	return &APIError{Kind: kind, Status: status, Message: message}
}

// ErrorMessage returns the user facing message of err, or fallback when err
// carries none.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	if err == nil || err.Error() == "" {
		return fallback
	}

	return err.Error()
}
