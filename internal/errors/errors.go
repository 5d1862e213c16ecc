package errors

import (
	stderrors "errors"
	"fmt"

	"prepkit/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    GetCode(Classify(err)),
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeNoData            = "NO_DATA"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeReadFailure       = "READ_FAILURE"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// Classify attaches the code matching a domain error, leaving the chain intact
// so errors.Is still sees the domain sentinel.
func Classify(err error) error {
	if err == nil || IsAppError(err) {
		return err
	}

	var appErr *AppError
	switch {
	case stderrors.Is(err, core.ErrNoData):
		appErr = New(CodeNoData, err.Error())
	case stderrors.Is(err, core.ErrUnsupportedFormat):
		appErr = New(CodeUnsupportedFormat, err.Error())
	case stderrors.Is(err, core.ErrReadFailure):
		appErr = New(CodeReadFailure, err.Error())
	case core.IsNotFoundError(err):
		appErr = New(CodeNotFound, err.Error())
	case core.IsValidationError(err):
		appErr = InvalidInput(err.Error())
	default:
		appErr = InternalError(err.Error())
	}
	appErr.Cause = err
	return appErr
}
