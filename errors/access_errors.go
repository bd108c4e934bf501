// errors/access_errors.go
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Taxonomy roots. Every error surfaced to a caller wraps exactly one of these.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")

	ErrDatabaseOperation = errors.New("database operation failed")
	ErrInternalServer    = errors.New("internal server error")
)

var (
	ErrMissingCredential = fmt.Errorf("missing credential: %w", ErrUnauthenticated)
	ErrInvalidToken      = fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	ErrTokenExpired      = fmt.Errorf("token expired: %w", ErrUnauthenticated)
	ErrSubjectNotFound   = fmt.Errorf("subject not found: %w", ErrUnauthenticated)
	ErrAccountInactive   = fmt.Errorf("account inactive: %w", ErrUnauthenticated)
	ErrInvalidLogin      = fmt.Errorf("invalid email or password: %w", ErrUnauthenticated)

	ErrUnknownResourceType = fmt.Errorf("unknown resource type: %w", ErrForbidden)
	ErrInvalidPagination   = fmt.Errorf("invalid pagination parameters: %w", ErrValidation)
)

// FieldRestrictionError reports update fields the caller may not write.
type FieldRestrictionError struct {
	Fields []string
}

func NewFieldRestrictionError(fields []string) *FieldRestrictionError {
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	return &FieldRestrictionError{Fields: sorted}
}

func (e *FieldRestrictionError) Error() string {
	return "fields not writable: " + strings.Join(e.Fields, ", ")
}

func (e *FieldRestrictionError) Unwrap() error {
	return ErrValidation
}

// Invalid wraps a validation message under ErrValidation.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
