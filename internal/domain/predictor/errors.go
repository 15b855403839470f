package predictor

import "errors"

// Sentinel kinds for model errors.
var (
	ErrLoadModel      = errors.New("model load failed")
	ErrInvalidModel   = errors.New("invalid model artifact")
	ErrMissingFeature = errors.New("vector missing required feature")
)
