// Package internal holds helpers shared by the nigeom packages that are not
// part of the public API.
package internal

import "github.com/pkg/errors"

// Ear clipping keeps a lot of index bookkeeping in sync (the vertex ring, the
// priority heap, the parked list). Threading an error through every helper
// that touches it would bury the algorithm, so a broken invariant panics with
// an InvariantError and the public entry points recover it into an error.

// InvariantError marks a panic raised by Fatalf, so other panics (including
// runtime errors) are never mistaken for one.
type InvariantError struct {
	error
}

func (e InvariantError) Unwrap() error {
	return e.error
}

// Fatalf panics with an InvariantError.
func Fatalf(format string, args ...interface{}) {
	panic(InvariantError{errors.Errorf(format, args...)})
}

// HandlePanicRecover converts a recovered InvariantError into an error. Any
// other panic value is re-raised; nil means nothing was recovered.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if invariantError, ok := r.(InvariantError); ok {
			return invariantError
		}
		panic(r)
	}
	return nil
}
