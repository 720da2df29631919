package httperr

import (
	"runtime/debug"
	"time"
)

// Error types recognized by the response builder. The set is open: anything
// else travels through unchanged and defaults apply at serialization time.
const (
	TypeValidation       = "ValidationError"
	TypeDuplicateField   = "DuplicateField"
	TypeNotAuthenticated = "NotAuthenticated"
	TypeNotFound         = "NotFound"
	TypeServer           = "ServerError"
)

// Error is the typed failure value every handler returns on an error path.
// It is created where the failure is detected and consumed only by the
// response builder in this package.
type Error struct {
	Message       string
	StatusCode    int
	Type          string
	Code          string
	Details       map[string]any
	Timestamp     time.Time
	IsOperational bool

	stack []byte
}

// New builds an Error with an explicit status and type. The timestamp and
// stack are captured at the point of construction.
func New(message string, statusCode int, errType string) *Error {
	return &Error{
		Message:       message,
		StatusCode:    statusCode,
		Type:          errType,
		Timestamp:     time.Now().UTC(),
		IsOperational: true,
		stack:         debug.Stack(),
	}
}

// Validation builds a 400 ValidationError.
func Validation(message string) *Error {
	return New(message, 400, TypeValidation)
}

// Duplicate builds a 400 DuplicateField error naming the conflicting field.
func Duplicate(field string) *Error {
	return New(field+" is already registered", 400, TypeDuplicateField)
}

// NotAuthenticated builds a 401 error.
func NotAuthenticated(message string) *Error {
	return New(message, 401, TypeNotAuthenticated)
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return New(message, 404, TypeNotFound)
}

// Server builds a 500 ServerError.
func Server(message string) *Error {
	return New(message, 500, TypeServer)
}

// WithCode attaches an application-specific error code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithDetails attaches additional error details.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func (e *Error) Error() string {
	return e.Message
}
