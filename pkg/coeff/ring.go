// Package coeff provides the coefficient rings the reduction engine works over.
//
// The engine only sees the Ring interface. Two reference rings are shipped:
// Integers (arbitrary precision) and ZMod (Z/nZ for a word-sized modulus).
package coeff

// Ring is the capability set the reducers need from a coefficient ring.
// Values of type C are treated as immutable: every operation returns a
// fresh value and never modifies its arguments.
type Ring[C any] interface {
	Zero() C
	One() C
	FromInt64(v int64) C

	IsZero(a C) bool
	Equal(a, b C) bool
	IsUnit(a C) bool

	Add(a, b C) C
	Sub(a, b C) C
	Neg(a C) C
	Mul(a, b C) C

	// DivisibleBy reports whether b divides a.
	DivisibleBy(a, b C) bool
	// Div returns a / b. Only defined when DivisibleBy(a, b) holds.
	Div(a, b C) C

	// ClearDenominators normalizes a coefficient vector as a whole: the
	// content is removed and the leading entry gets its canonical sign or
	// unit. The input slice is not modified.
	ClearDenominators(cs []C) []C

	Parse(s string) (C, error)
	String(a C) string
}

// Pow returns a^e using binary exponentiation.
func Pow[C any](r Ring[C], a C, e int) C {
	result := r.One()
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = r.Mul(result, base)
		}
		e >>= 1
		if e > 0 {
			base = r.Mul(base, base)
		}
	}
	return result
}

// Valuation returns the largest k with b^k dividing a, together with a / b^k.
// It stops early once k reaches limit and reports ok=false in that case.
// a must be non-zero and b a non-unit.
func Valuation[C any](r Ring[C], a, b C, limit int) (k int, rest C, ok bool) {
	rest = a
	for r.DivisibleBy(rest, b) {
		if k == limit {
			return k, rest, false
		}
		rest = r.Div(rest, b)
		k++
	}
	return k, rest, true
}
