// Package flow builds the illustrative fields shown inside the tunnel: a
// steady streamline vector field sampled on a structured grid, the paths
// traced through it, an exponential-decay pressure volume and a surface
// pressure estimate on the object. None of them come from solving the
// flow equations.
package flow
