package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrInvalidReference
	ErrDoctorClinicMismatch
	ErrInvalidDuration
	ErrConflict
	ErrIDMismatch
	ErrInternal
)

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func InvalidReference() *AppError {
	return &AppError{
		Code:    ErrInvalidReference,
		Message: "invalid patient, doctor, clinic or category reference",
	}
}

func DoctorClinicMismatch() *AppError {
	return &AppError{
		Code:    ErrDoctorClinicMismatch,
		Message: "doctor is not assigned to the selected clinic",
	}
}

func InvalidDuration() *AppError {
	return &AppError{
		Code:    ErrInvalidDuration,
		Message: "duration must be positive",
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Err:     err,
	}
}

func IDMismatch() *AppError {
	return &AppError{
		Code:    ErrIDMismatch,
		Message: "route id does not match payload id",
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf extracts the ErrorCode from err, or ErrInternal when err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

func IsNotFound(err error) bool { return CodeOf(err) == ErrNotFound }

func IsConflict(err error) bool { return CodeOf(err) == ErrConflict }

// IsValidation reports whether err belongs to the validation class
// (bad reference, doctor/clinic mismatch or non-positive duration).
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case ErrInvalidReference, ErrDoctorClinicMismatch, ErrInvalidDuration:
		return true
	}
	return false
}
