package coeff

import "errors"

var (
	// ErrParse is returned when a coefficient literal cannot be read.
	ErrParse = errors.New("coeff: invalid coefficient literal")

	// ErrModulus is returned for a ZMod modulus outside (1, 2^32).
	ErrModulus = errors.New("coeff: modulus out of range")
)
