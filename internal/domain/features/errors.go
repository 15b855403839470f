package features

import "errors"

// Sentinel kinds for assembly errors.
var (
	ErrUnknownFeature = errors.New("unknown feature required by model")
)
