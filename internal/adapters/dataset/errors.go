package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrOpenDataset   = errors.New("open dataset failed")
	ErrMissingColumn = errors.New("dataset missing required column")
	ErrBadRecord     = errors.New("malformed dataset record")
	ErrEmptyDataset  = errors.New("dataset contains no rows")
)
