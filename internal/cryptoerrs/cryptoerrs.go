// Package cryptoerrs defines the typed error taxonomy shared by every
// primitive in cryptocore. Every failure in the library is one of five
// kinds; callers can test with errors.Is against the sentinels below.
package cryptoerrs

import "errors"

// Sentinel kinds. Wrap one of these with fmt.Errorf("%w: ...", Kind) at
// the call site so errors.Is still matches while the message stays
// specific.
var (
	// ErrInputShape marks a wrong byte length or wrong container type.
	ErrInputShape = errors.New("cryptocore: invalid input shape")

	// ErrInputRange marks a scalar out of range, a point coordinate
	// out of the field, or any other value outside its required range.
	ErrInputRange = errors.New("cryptocore: value out of range")

	// ErrNoSolution marks a missing square root, an identity result
	// where a valid point was required, or similar non-existence.
	ErrNoSolution = errors.New("cryptocore: no solution")

	// ErrUnsupported marks an input whose type or shape is outside the
	// set this operation accepts.
	ErrUnsupported = errors.New("cryptocore: unsupported input")

	// ErrSignFailure marks an exhausted internal retry loop in a
	// signing algorithm.
	ErrSignFailure = errors.New("cryptocore: signing failed")
)
