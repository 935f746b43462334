// Package mrf defines the ground Markov Random Field data model: Atom,
// Constraint, and the immutable MRF network that indexes them.
//
// Errors:
//
//	ErrEmptyMRF            - a network with zero atoms was constructed.
//	ErrMalformedConstraint - a constraint has a NaN weight, an empty
//	                         literal array, or a zero literal id.
//	ErrUnknownAtom         - a literal referenced an atom id outside [1,N].
package mrf

import "errors"

// Sentinel errors for MRF construction. All are fatal: the caller must not
// run a solver over a network that failed to build.
var (
	// ErrEmptyMRF indicates a network was built with zero atoms.
	ErrEmptyMRF = errors.New("mrf: network has zero atoms")

	// ErrMalformedConstraint indicates a constraint has a NaN weight, an
	// empty literal array, or a zero literal id. Infinite weights are not
	// malformed: they mark hard constraints.
	ErrMalformedConstraint = errors.New("mrf: malformed constraint")

	// ErrUnknownAtom indicates a literal referenced an atom id outside the
	// valid [1, N] range for the network being built.
	ErrUnknownAtom = errors.New("mrf: literal references unknown atom id")
)
