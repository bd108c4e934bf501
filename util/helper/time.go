package helper_util

import (
	"time"

	bo_errors "github.com/buildledger/backoffice/errors"
)

// ParseTime parses an RFC3339 timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err
}

// ParseOptionalTime returns the zero time for an empty string.
func ParseOptionalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, bo_errors.Invalid("invalid timestamp %q", s)
	}
	return t, nil
}
