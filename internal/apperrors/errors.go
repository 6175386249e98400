package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Validation failures are deterministic and must never be retried.
var ErrValidation = errors.New("validation error")

// ErrStateConflict indicates an operation that is illegal in the aggregate's
// current state (posting to a frozen account, closing a non-empty account,
// moving a statement backwards).
var ErrStateConflict = errors.New("state conflict")

// ErrConcurrency indicates a lost update was detected while posting. Nothing
// was committed, so the caller may retry the whole journal from scratch.
var ErrConcurrency = errors.New("concurrent modification detected")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// AppError carries a status code alongside a wrapped cause so the repository
// layer can classify infrastructure failures without handlers inspecting
// driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
