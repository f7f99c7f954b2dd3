package fractal

import "errors"

var (
	// ErrInvalidInput is returned when a request is rejected before any computation starts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSectionFailed is returned when any section of a render fails.
	// The whole render fails with it and no partial image is returned.
	ErrSectionFailed = errors.New("section failed")
)
