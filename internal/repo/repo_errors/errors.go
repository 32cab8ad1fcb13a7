package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("requested entity not found")

	// ErrQuotaExceeded is returned by the guarded response insert when the
	// transactional count finds the lot-specific cap already reached.
	ErrQuotaExceeded = errors.New("response quota reached for supplier and brief")
)
