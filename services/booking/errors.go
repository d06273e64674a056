package booking

import "fmt"

// BookingError is a typed service error carrying a machine-readable code.
// Handlers translate codes into HTTP statuses.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes used by the booking lifecycle.
const (
	CodeNotFound        = "notFound"
	CodeNotConfirmed    = "notConfirmed"
	CodeAlreadyEdited   = "alreadyEdited"
	CodeAlreadyStarted  = "alreadyStarted"
	CodeInvalidDates    = "invalidDates"
	CodeRoomUnavailable = "roomUnavailable"
	CodeConflict        = "conflict"
)

func newError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}

// ErrNotFound reports whether err is a booking-not-found error.
func ErrNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// ErrConflict reports whether err is an optimistic-concurrency conflict.
func ErrConflict(err error) bool { return hasCode(err, CodeConflict) }

func hasCode(err error, code string) bool {
	be, ok := err.(*BookingError)
	return ok && be.Code == code
}
