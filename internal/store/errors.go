package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error codes for store failures.
const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeUnavailable = "UNAVAILABLE"
	ErrCodeCommand     = "COMMAND"
	ErrCodeTimeout     = "TIMEOUT"
	ErrCodeReadOnly    = "READ_ONLY"
)

// Error is a coded store error wrapping the underlying driver failure.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// wrapError converts a driver error into a coded Error.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	code := ErrCodeCommand
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		code = ErrCodeNotFound
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		code = ErrCodeTimeout
	case mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected):
		code = ErrCodeUnavailable
	}

	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s failed", op),
		Cause:   err,
	}
}
