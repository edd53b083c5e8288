package flow

import "errors"

var (
	ErrBadGrid  = errors.New("flow: grid needs at least 2 points per axis and increasing bounds")
	ErrNoSeeds  = errors.New("flow: no seed points")
	ErrNilField = errors.New("flow: nil field")
)
