// Package apperrors carries the error taxonomy every handler maps onto
// an HTTP status. Services return *DomainError; anything else that
// escapes is treated as internal.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrTypeForbidden       ErrorType = "FORBIDDEN"
	ErrTypeNotFound        ErrorType = "NOT_FOUND"
	ErrTypeValidation      ErrorType = "VALIDATION"
	ErrTypeConflict        ErrorType = "CONFLICT"
	ErrTypeInternal        ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if stackErr, ok := err.(*goerrors.Error); ok {
		stack = stackErr.Stack()
	} else if err != nil {
		stack = goerrors.Wrap(err, 2).Stack()
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Unauthenticated(message string) *DomainError {
	return New(ErrTypeUnauthenticated, message, nil)
}

func Forbidden(message string) *DomainError {
	return New(ErrTypeForbidden, message, nil)
}

func NotFound(message string) *DomainError {
	return New(ErrTypeNotFound, message, nil)
}

func Validation(message string) *DomainError {
	return New(ErrTypeValidation, message, nil)
}

func Conflict(message string) *DomainError {
	return New(ErrTypeConflict, message, nil)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

// HTTPStatus maps an error to its response code. Non-domain errors are
// surfaced as 500.
func HTTPStatus(err error) int {
	var de *DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Type {
	case ErrTypeUnauthenticated:
		return http.StatusUnauthorized
	case ErrTypeForbidden:
		return http.StatusForbidden
	case ErrTypeNotFound:
		return http.StatusNotFound
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is what goes into the JSON error body. Internal detail
// stays in the log, not the response.
func PublicMessage(err error) string {
	var de *DomainError
	if !errors.As(err, &de) {
		return "internal server error"
	}
	if de.Type == ErrTypeInternal {
		return "internal server error"
	}
	return de.Message
}

func IsType(err error, t ErrorType) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Type == t
}
