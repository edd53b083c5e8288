package tunnel

import "errors"

var (
	ErrNoObject    = errors.New("no STL object loaded")
	ErrNoRangeData = errors.New("no range analysis data")
	ErrNoPath      = errors.New("no file path given")
	ErrOutOfBounds = errors.New("object would exit tunnel bounds")
)
