// errors/resource_errors.go

package errors

import "fmt"

var (
	ErrResourceNotFound    = fmt.Errorf("resource %w", ErrNotFound)
	ErrInvalidResourceData = fmt.Errorf("invalid resource data: %w", ErrValidation)
	ErrResourceConflict    = fmt.Errorf("resource %w", ErrConflict)

	ErrPurchaseOrderNotFound   = fmt.Errorf("purchase order %w", ErrNotFound)
	ErrInvalidStatusTransition = fmt.Errorf("invalid purchase order status transition: %w", ErrValidation)

	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrCategoryConflict = fmt.Errorf("category key already exists: %w", ErrConflict)
)
