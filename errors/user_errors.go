// errors/user_errors.go
package errors

import "fmt"

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidUserData = fmt.Errorf("invalid user data: %w", ErrValidation)
	ErrUserConflict    = fmt.Errorf("user email already registered: %w", ErrConflict)
)
