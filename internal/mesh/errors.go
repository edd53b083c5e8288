package mesh

import "errors"

var (
	ErrEmptyMesh    = errors.New("mesh: no triangles")
	ErrMalformedSTL = errors.New("mesh: malformed STL")
	ErrUnknownAxis  = errors.New("mesh: unknown rotation axis")
)
