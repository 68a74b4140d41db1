package coeff

import (
	"fmt"
	"math/big"
	"strings"
)

// Integers is the ring Z with *big.Int values.
type Integers struct{}

var _ Ring[*big.Int] = Integers{}

// Zero returns 0.
func (Integers) Zero() *big.Int { return new(big.Int) }

// One returns 1.
func (Integers) One() *big.Int { return big.NewInt(1) }

// FromInt64 returns v as a ring element.
func (Integers) FromInt64(v int64) *big.Int { return big.NewInt(v) }

// IsZero reports whether a == 0.
func (Integers) IsZero(a *big.Int) bool { return a.Sign() == 0 }

// Equal reports whether a == b.
func (Integers) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

// IsUnit reports whether a is 1 or -1.
func (Integers) IsUnit(a *big.Int) bool { return a.IsInt64() && (a.Int64() == 1 || a.Int64() == -1) }

// Add returns a + b.
func (Integers) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

// Sub returns a - b.
func (Integers) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

// Neg returns -a.
func (Integers) Neg(a *big.Int) *big.Int { return new(big.Int).Neg(a) }

// Mul returns a * b.
func (Integers) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// DivisibleBy reports whether b divides a. Zero divides only zero.
func (Integers) DivisibleBy(a, b *big.Int) bool {
	if b.Sign() == 0 {
		return a.Sign() == 0
	}
	return new(big.Int).Rem(a, b).Sign() == 0
}

// Div returns the exact quotient a / b.
func (Integers) Div(a, b *big.Int) *big.Int { return new(big.Int).Quo(a, b) }

// ClearDenominators divides out the gcd of cs and makes the first entry positive.
func (Integers) ClearDenominators(cs []*big.Int) []*big.Int {
	out := make([]*big.Int, len(cs))
	if len(cs) == 0 {
		return out
	}
	g := new(big.Int)
	for _, c := range cs {
		g.GCD(nil, nil, g, new(big.Int).Abs(c))
	}
	if g.Sign() == 0 {
		g.SetInt64(1)
	}
	if cs[0].Sign() < 0 {
		g.Neg(g)
	}
	for i, c := range cs {
		out[i] = new(big.Int).Quo(c, g)
	}
	return out
}

// Parse reads a decimal integer, optionally signed.
func (Integers) Parse(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return v, nil
}

// String formats a in decimal.
func (Integers) String(a *big.Int) string { return a.String() }
