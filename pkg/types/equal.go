package types

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// The reconciler uses structural equality to decide whether an update
// actually changes behavior: a no-op update must not restart tasks. Maps
// compare by key/value set regardless of insertion order; slices compare
// element-wise; nil and empty collections are the same thing, since the
// difference is an encoding accident, not user intent.

var compareOptions = []cmp.Option{cmpopts.EquateEmpty()}

// Equal reports deterministic structural equality between two spec values of
// the same kind.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, compareOptions...)
}

// Diff returns a human-readable report of the structural differences between
// two spec values, or the empty string when they are equal.
func Diff(a, b any) string {
	return cmp.Diff(a, b, compareOptions...)
}
