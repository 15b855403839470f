package repository

import "errors"

// Sentinel kinds for reference table errors.
var (
	ErrNoRows = errors.New("reference table has no rows")
)
