package aero

import "errors"

var (
	// ErrInvalidRange indicates a sweep with step <= 0, start >= end, or a
	// non-finite bound.
	ErrInvalidRange = errors.New("aero: invalid velocity range or step")

	// ErrTooManySamples indicates a sweep whose sample count exceeds MaxSamples.
	ErrTooManySamples = errors.New("aero: sweep has too many samples")
)
