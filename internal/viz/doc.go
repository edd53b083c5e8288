// Package viz renders the wind tunnel scene to the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell, with a layer
//     tag per cell for colouring
//   - [Camera]: orbit camera with the named views xy, xz, yz and iso
//   - [Scene]: wireframe of the tunnel box, wind arrow, object, streamlines
//     and pressure volume
//   - [Theme]: colour schemes for the scene layers
package viz
