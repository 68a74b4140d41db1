package coeff

import (
	"fmt"
	"strconv"
	"strings"
)

// ZMod is the ring Z/nZ for a modulus n with 1 < n < 2^32.
// Elements are uint64 values in [0, n). Products of two reduced elements fit
// in a uint64.
type ZMod struct {
	n uint64
}

var _ Ring[uint64] = ZMod{}

// NewZMod returns Z/nZ.
func NewZMod(n uint64) (ZMod, error) {
	if n < 2 || n >= 1<<32 {
		return ZMod{}, fmt.Errorf("%w: %d", ErrModulus, n)
	}
	return ZMod{n: n}, nil
}

// Modulus returns n.
func (z ZMod) Modulus() uint64 { return z.n }

// Mod returns x mod n, handling negative values correctly.
func (z ZMod) Mod(x int64) uint64 {
	m := x % int64(z.n)
	if m < 0 {
		m += int64(z.n)
	}
	return uint64(m)
}

// Zero returns 0.
func (z ZMod) Zero() uint64 { return 0 }

// One returns 1.
func (z ZMod) One() uint64 { return 1 }

// FromInt64 returns v mod n.
func (z ZMod) FromInt64(v int64) uint64 { return z.Mod(v) }

// IsZero reports whether a == 0.
func (z ZMod) IsZero(a uint64) bool { return a == 0 }

// Equal reports whether a == b.
func (z ZMod) Equal(a, b uint64) bool { return a == b }

// IsUnit reports whether gcd(a, n) == 1.
func (z ZMod) IsUnit(a uint64) bool { return gcd(a, z.n) == 1 }

// Add returns (a + b) mod n.
func (z ZMod) Add(a, b uint64) uint64 {
	sum := a + b
	if sum >= z.n {
		sum -= z.n
	}
	return sum
}

// Sub returns (a - b) mod n.
func (z ZMod) Sub(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return z.n - b + a
}

// Neg returns (-a) mod n.
func (z ZMod) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return z.n - a
}

// Mul returns (a * b) mod n.
func (z ZMod) Mul(a, b uint64) uint64 { return (a * b) % z.n }

// DivisibleBy reports whether b divides a in Z/nZ, i.e. gcd(b, n) | a.
func (z ZMod) DivisibleBy(a, b uint64) bool {
	return a%gcd(b, z.n) == 0
}

// Div returns the smallest c in [0, n) with c*b == a.
func (z ZMod) Div(a, b uint64) uint64 {
	g := gcd(b, z.n)
	m := z.n / g
	if m == 1 {
		return 0
	}
	inv := invMod((b/g)%m, m)
	return ((a / g) % m) * inv % m
}

// ClearDenominators scales cs so that a unit leading entry becomes 1.
// Vectors with a non-unit leading entry are returned unchanged.
func (z ZMod) ClearDenominators(cs []uint64) []uint64 {
	out := make([]uint64, len(cs))
	copy(out, cs)
	if len(cs) == 0 || !z.IsUnit(cs[0]) {
		return out
	}
	inv := invMod(cs[0], z.n)
	for i := range out {
		out[i] = z.Mul(out[i], inv)
	}
	return out
}

// Parse reads a decimal integer and reduces it mod n.
func (z ZMod) Parse(s string) (uint64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return z.Mod(v), nil
}

// String formats a in decimal.
func (z ZMod) String(a uint64) string { return strconv.FormatUint(a, 10) }

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// invMod returns the inverse of a modulo m via the extended Euclidean
// algorithm. a and m must be coprime.
func invMod(a, m uint64) uint64 {
	t, newT := int64(0), int64(1)
	r, newR := int64(m), int64(a%m)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += int64(m)
	}
	return uint64(t)
}
