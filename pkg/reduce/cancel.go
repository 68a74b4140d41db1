package reduce

import "ppreduce/pkg/poly"

// Cancellation reports whether CancelInitial changed its target.
type Cancellation int

const (
	// Unchanged means no term of the target was divisible by the reducer's lead.
	Unchanged Cancellation = iota
	// Changed means a term was cancelled; the target needs PReduce again.
	Changed
)

func (c Cancellation) String() string {
	if c == Changed {
		return "changed"
	}
	return "unchanged"
}

// cancel sets h := lc(g)*h - c*q*g for the first term c*m of h with
// lead(g) | m and q = m / lead(g). No coefficient is divided.
func (x *run[C]) cancel(h, g *poly.Poly[C]) Cancellation {
	if h == g || h.IsZero() || g.IsZero() {
		return Unchanged
	}
	i := h.IndexDivisibleBy(g.LeadMono())
	if i < 0 {
		return Unchanged
	}
	c := h.Terms[i]
	q := c.Mono.Quo(g.LeadMono())
	r := x.ring
	h.Set(poly.Sub(r, poly.Scale(r, h, g.LeadCoeff()), poly.MulTerm(r, g, c.Coeff, q)))
	x.stats.Cancellations++
	return Changed
}
