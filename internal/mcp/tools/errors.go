package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/docsift/mongo-mcp/internal/store"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeMongoError   = "MONGO_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeReadOnly     = "READ_ONLY"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapStoreError converts a store.Error (or any other error) into a coded
// tool error.
func WrapStoreError(err error) error {
	if err == nil {
		return nil
	}

	coded := &CodedError{
		Code:    ErrCodeMongoError,
		Message: err.Error(),
		Cause:   err,
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		coded.Message = storeErr.Message
		switch storeErr.Code {
		case store.ErrCodeNotFound:
			coded.Code = ErrCodeNotFound
		case store.ErrCodeTimeout:
			coded.Code = ErrCodeTimeout
		case store.ErrCodeReadOnly:
			coded.Code = ErrCodeReadOnly
		}
	}

	slog.Warn("mongodb store error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
