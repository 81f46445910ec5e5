package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Business rule violations
	ErrBusinessRule = errors.New("business rule violation")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
)

// Department errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
)

// Course errors
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseCodeExists = errors.New("course with this code already exists")
	ErrCourseFull       = errors.New("course is full, no available seats")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
)

// Student / Teacher errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")
)

// Grade / Attendance errors
var (
	ErrGradeNotFound      = errors.New("grade not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// CustomError carries a sentinel kind plus a human-readable message and
// optional per-field details for the boundary to serialize.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap so errors.Is matches the sentinel kind
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewNotFoundError creates a not-found error naming the resource and id
func NewNotFoundError(resource string, id interface{}) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: fmt.Sprintf("%s not found with id: %v", resource, id),
	}
}

// NewConflictError creates a duplicate-resource error with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrResourceAlreadyExists,
		Message: message,
	}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBusinessError creates a business-rule violation carrying the reason
func NewBusinessError(format string, args ...interface{}) error {
	return &CustomError{
		Err:     ErrBusinessRule,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewValidationError creates a validation failure with per-field details
func NewValidationError(message string, fields map[string]interface{}) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: fields,
	}
}

// IsNotFound reports whether err belongs to the not-found family
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound,
		ErrUserNotFound, ErrDepartmentNotFound, ErrCourseNotFound,
		ErrEnrollmentNotFound, ErrStudentNotFound, ErrTeacherNotFound,
		ErrGradeNotFound, ErrAttendanceNotFound)
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
