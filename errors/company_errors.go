// errors/company_errors.go
package errors

import "fmt"

var (
	ErrCompanyNotFound    = fmt.Errorf("company %w", ErrNotFound)
	ErrInvalidCompanyData = fmt.Errorf("invalid company data: %w", ErrValidation)
	ErrCompanyConflict    = fmt.Errorf("company email or tax id already registered: %w", ErrConflict)

	ErrProviderNotFound    = fmt.Errorf("provider %w", ErrNotFound)
	ErrInvalidProviderData = fmt.Errorf("invalid provider data: %w", ErrValidation)
	ErrProviderConflict    = fmt.Errorf("provider email or tax id already registered: %w", ErrConflict)
)
