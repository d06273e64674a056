package hotel

import "fmt"

// CatalogError is a typed service error carrying a machine-readable code.
type CatalogError struct {
	Code    string
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeNotFound   = "notFound"
	CodeValidation = "validation"
	CodeForbidden  = "forbidden"
)

func newError(code, msg string) error {
	return &CatalogError{Code: code, Message: msg}
}

// ErrNotFound reports whether err is a catalog not-found error.
func ErrNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// ErrValidation reports whether err is a validation error.
func ErrValidation(err error) bool { return hasCode(err, CodeValidation) }

// ErrForbidden reports whether err is an ownership failure.
func ErrForbidden(err error) bool { return hasCode(err, CodeForbidden) }

func hasCode(err error, code string) bool {
	ce, ok := err.(*CatalogError)
	return ok && ce.Code == code
}
