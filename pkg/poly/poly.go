// Package poly provides sparse multivariate polynomials over a coefficient ring.
//
// A polynomial is a list of terms sorted strictly descending by Compare with
// no zero coefficients and no repeated monomials. The zero polynomial has no
// terms.
package poly

import (
	"sort"

	"ppreduce/pkg/coeff"
)

// Term is a coefficient times a monomial.
type Term[C any] struct {
	Coeff C
	Mono  Monomial
}

// Poly is a polynomial. Reduction routines mutate it in place by replacing
// Terms; the Term values themselves are never modified.
type Poly[C any] struct {
	Terms []Term[C]
}

// New builds a polynomial from terms in any order. Terms with equal
// monomials are added together and zero terms are dropped.
func New[C any](r coeff.Ring[C], terms ...Term[C]) *Poly[C] {
	ts := make([]Term[C], len(terms))
	copy(ts, terms)
	sort.SliceStable(ts, func(i, j int) bool { return Compare(ts[i].Mono, ts[j].Mono) > 0 })
	out := make([]Term[C], 0, len(ts))
	for _, t := range ts {
		if n := len(out); n > 0 && out[n-1].Mono.Equal(t.Mono) {
			out[n-1].Coeff = r.Add(out[n-1].Coeff, t.Coeff)
			continue
		}
		out = append(out, t)
	}
	return &Poly[C]{Terms: dropZeros(r, out)}
}

// Zero returns the zero polynomial.
func Zero[C any]() *Poly[C] { return &Poly[C]{} }

// Len returns the number of terms.
func (p *Poly[C]) Len() int { return len(p.Terms) }

// IsZero reports whether p has no terms.
func (p *Poly[C]) IsZero() bool { return len(p.Terms) == 0 }

// Lead returns the leading term. p must be non-zero.
func (p *Poly[C]) Lead() Term[C] { return p.Terms[0] }

// LeadMono returns the leading monomial. p must be non-zero.
func (p *Poly[C]) LeadMono() Monomial { return p.Terms[0].Mono }

// LeadCoeff returns the leading coefficient. p must be non-zero.
func (p *Poly[C]) LeadCoeff() C { return p.Terms[0].Coeff }

// TDegree returns the t exponent of the leading monomial. p must be non-zero.
func (p *Poly[C]) TDegree() int { return p.Terms[0].Mono.T() }

// Set replaces the contents of p with those of q. q must not be used afterwards.
func (p *Poly[C]) Set(q *Poly[C]) { p.Terms = q.Terms }

// Copy returns a copy of p that shares no term slice with it.
func (p *Poly[C]) Copy() *Poly[C] {
	ts := make([]Term[C], len(p.Terms))
	copy(ts, p.Terms)
	return &Poly[C]{Terms: ts}
}

// SpaceDegree returns the space degree of the leading monomial and whether
// every term has that same space degree.
func (p *Poly[C]) SpaceDegree() (int, bool) {
	if p.IsZero() {
		return 0, true
	}
	d := p.Terms[0].Mono.SpaceDegree()
	for _, t := range p.Terms[1:] {
		if t.Mono.SpaceDegree() != d {
			return d, false
		}
	}
	return d, true
}

// Normalize applies the ring's ClearDenominators to the coefficient vector.
func (p *Poly[C]) Normalize(r coeff.Ring[C]) {
	if p.IsZero() {
		return
	}
	cs := make([]C, len(p.Terms))
	for i, t := range p.Terms {
		cs[i] = t.Coeff
	}
	cs = r.ClearDenominators(cs)
	ts := make([]Term[C], len(p.Terms))
	for i, t := range p.Terms {
		ts[i] = Term[C]{Coeff: cs[i], Mono: t.Mono}
	}
	p.Terms = ts
}

// Equal reports whether a and b have the same terms.
func Equal[C any](r coeff.Ring[C], a, b *Poly[C]) bool {
	if len(a.Terms) != len(b.Terms) {
		return false
	}
	for i := range a.Terms {
		if !a.Terms[i].Mono.Equal(b.Terms[i].Mono) || !r.Equal(a.Terms[i].Coeff, b.Terms[i].Coeff) {
			return false
		}
	}
	return true
}

// Add returns a + b.
func Add[C any](r coeff.Ring[C], a, b *Poly[C]) *Poly[C] {
	out := make([]Term[C], 0, len(a.Terms)+len(b.Terms))
	i, j := 0, 0
	for i < len(a.Terms) && j < len(b.Terms) {
		switch Compare(a.Terms[i].Mono, b.Terms[j].Mono) {
		case 1:
			out = append(out, a.Terms[i])
			i++
		case -1:
			out = append(out, b.Terms[j])
			j++
		default:
			c := r.Add(a.Terms[i].Coeff, b.Terms[j].Coeff)
			if !r.IsZero(c) {
				out = append(out, Term[C]{Coeff: c, Mono: a.Terms[i].Mono})
			}
			i++
			j++
		}
	}
	out = append(out, a.Terms[i:]...)
	out = append(out, b.Terms[j:]...)
	return &Poly[C]{Terms: out}
}

// Neg returns -a.
func Neg[C any](r coeff.Ring[C], a *Poly[C]) *Poly[C] {
	out := make([]Term[C], len(a.Terms))
	for i, t := range a.Terms {
		out[i] = Term[C]{Coeff: r.Neg(t.Coeff), Mono: t.Mono}
	}
	return &Poly[C]{Terms: out}
}

// Sub returns a - b.
func Sub[C any](r coeff.Ring[C], a, b *Poly[C]) *Poly[C] {
	return Add(r, a, Neg(r, b))
}

// Scale returns c * a. Products that vanish in the ring are dropped.
func Scale[C any](r coeff.Ring[C], a *Poly[C], c C) *Poly[C] {
	out := make([]Term[C], 0, len(a.Terms))
	for _, t := range a.Terms {
		out = append(out, Term[C]{Coeff: r.Mul(t.Coeff, c), Mono: t.Mono})
	}
	return &Poly[C]{Terms: dropZeros(r, out)}
}

// MulTerm returns (c * m) * a.
func MulTerm[C any](r coeff.Ring[C], a *Poly[C], c C, m Monomial) *Poly[C] {
	out := make([]Term[C], 0, len(a.Terms))
	for _, t := range a.Terms {
		out = append(out, Term[C]{Coeff: r.Mul(t.Coeff, c), Mono: t.Mono.Mul(m)})
	}
	return &Poly[C]{Terms: dropZeros(r, out)}
}

// MulMonomial returns m * a.
func MulMonomial[C any](a *Poly[C], m Monomial) *Poly[C] {
	out := make([]Term[C], len(a.Terms))
	for i, t := range a.Terms {
		out[i] = Term[C]{Coeff: t.Coeff, Mono: t.Mono.Mul(m)}
	}
	return &Poly[C]{Terms: out}
}

// IndexDivisibleBy returns the index of the first term of p whose monomial
// is divisible by m, or -1.
func (p *Poly[C]) IndexDivisibleBy(m Monomial) int {
	for i, t := range p.Terms {
		if m.Divides(t.Mono) {
			return i
		}
	}
	return -1
}

func dropZeros[C any](r coeff.Ring[C], ts []Term[C]) []Term[C] {
	out := ts[:0]
	for _, t := range ts {
		if !r.IsZero(t.Coeff) {
			out = append(out, t)
		}
	}
	return out
}
