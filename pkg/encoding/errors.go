package encoding

import "errors"

var (
	// ErrSyntax is returned by ParsePoly for malformed polynomial text.
	ErrSyntax = errors.New("encoding: malformed polynomial")

	// ErrTruncated is returned by UnpackPoly for input that ends early.
	ErrTruncated = errors.New("encoding: truncated input")

	// ErrRange is returned for exponents that do not fit the packed or
	// textual form.
	ErrRange = errors.New("encoding: exponent out of range")
)
