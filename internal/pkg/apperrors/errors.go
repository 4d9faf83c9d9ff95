package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrInvalidState          = errors.New("operation not valid for current state")
	ErrConsistency           = errors.New("store consistency violation")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrPermissionDenied   = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
)

// Application errors
var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrApplicationNotPending = errors.New("application is not pending")
	ErrApplicationRejected   = errors.New("application already rejected")
	ErrEmailAlreadyExists    = errors.New("an application with this email already exists")
	ErrScoreBelowCutOff      = errors.New("score is below the course cut-off mark")
)

// Student errors
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrMatricAlreadyExists = errors.New("matric number already exists")
	ErrAlreadySuspended    = errors.New("student is already suspended")
	ErrNotSuspended        = errors.New("student is not suspended")
	ErrSetupPending        = errors.New("student account setup has not been completed")
)

// Admin errors
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin with this username or email already exists")
)

// Catalog errors
var (
	ErrFacultyNotFound         = errors.New("faculty not found")
	ErrFacultyAlreadyExists    = errors.New("faculty with this name or code already exists")
	ErrFacultyEmpty            = errors.New("faculty has no departments")
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrInvalidDepartmentCode   = errors.New("department code must be at least two letters")
)

// NewNotFoundError creates a new custom error for a missing resource with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewInvalidStateError creates a new custom error for a state-machine violation
func NewInvalidStateError(message string) error {
	return &CustomError{
		Err:     ErrInvalidState,
		Message: message,
	}
}

// NewConsistencyError creates a new custom error for a cross-store violation.
// Consistency errors are fatal: they mean a mutation path other than the
// admission workflow touched the stores.
func NewConsistencyError(message string) error {
	return &CustomError{
		Err:     ErrConsistency,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
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

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
