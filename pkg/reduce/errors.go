package reduce

import "errors"

var (
	// ErrReductionOverflow is returned when dividing a coefficient by p would
	// push a t exponent past the configured maximum. It is fatal for the whole
	// call: the ideal passed in must be discarded.
	ErrReductionOverflow = errors.New("reduce: overflow in t exponent")

	// ErrPrecondition signals a caller error: p is zero or a unit, a
	// generator is not homogeneous in the space variables, or the degree-0
	// stratum is not the single uniformizer p - t.
	ErrPrecondition = errors.New("reduce: precondition violated")

	// ErrStepLimit is returned when a call runs more reduction steps than
	// allowed by WithStepLimit.
	ErrStepLimit = errors.New("reduce: step limit exceeded")

	// ErrNotReduced is returned by Check for an ideal that breaks one of the
	// initially-reduced invariants.
	ErrNotReduced = errors.New("reduce: ideal is not initially reduced")
)
