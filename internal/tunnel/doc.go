// Package tunnel holds the state of one wind tunnel session and every
// action a front end can trigger on it.
//
// Actions run on the caller's goroutine. Each one sets Status to a short
// human readable line; failures leave the previous state in place and
// produce a status of the form "<action> error: <detail>".
package tunnel
