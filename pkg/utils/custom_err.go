package utils

import "errors"

var (
	ErrFacilityNotFound     = errors.New("facility not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrPlaceNotFound        = errors.New("place not found")
	ErrHourNotFound         = errors.New("hour not found")
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrCarrierNotFound      = errors.New("carrier not found")

	ErrValidation       = errors.New("validation failed")
	ErrInvalidPage      = errors.New("invalid page parameter")
	ErrInvalidPageSize  = errors.New("invalid page size parameter")
	ErrCapacityExceeded = errors.New("facility capacity exceeded")

	ErrConflict           = errors.New("conflict")
	ErrAvailabilityExists = errors.New("availability for facility and category already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrDatabaseError = errors.New("database error")
)

// ValidationError carries per-field messages alongside ErrValidation.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Message: message, Fields: map[string]string{field: message}}
}
