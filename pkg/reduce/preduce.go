package reduce

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/poly"
)

// pReduce applies the substitution t = p term by term.
//
// Terms are taken from a pending stream in descending order. A term whose
// space monomial already occurs among the accepted terms is folded into it:
// for exponents t^a and t^b with a <= b the coefficients combine as
// c_a + c_b * p^(b-a) on t^a. A term with a coefficient divisible by p is
// replaced by c/p^k * t^(e+k) and goes back into the stream; everything else
// is accepted.
func (x *run[C]) pReduce(g *poly.Poly[C]) error {
	if g.IsZero() {
		return nil
	}
	x.stats.PReductions++
	r := x.ring

	pending := make([]poly.Term[C], len(g.Terms))
	copy(pending, g.Terms)
	accepted := make([]poly.Term[C], 0, len(g.Terms))

	for len(pending) > 0 {
		u := pending[0]
		pending = pending[1:]

		if i := indexSpaceEqual(accepted, u.Mono); i >= 0 {
			a := accepted[i]
			accepted = append(accepted[:i], accepted[i+1:]...)
			lo, hi := a, u
			if hi.Mono.T() < lo.Mono.T() {
				lo, hi = hi, lo
			}
			shift := coeff.Pow(r, x.p, hi.Mono.T()-lo.Mono.T())
			c := r.Add(lo.Coeff, r.Mul(hi.Coeff, shift))
			if !r.IsZero(c) {
				pending = insertTerm(r, pending, poly.Term[C]{Coeff: c, Mono: lo.Mono})
			}
			continue
		}

		if !r.DivisibleBy(u.Coeff, x.p) {
			accepted = insertTerm(r, accepted, u)
			continue
		}

		limit := x.opts.maxExponent - u.Mono.T()
		if limit < 0 {
			limit = 0
		}
		k, rest, ok := coeff.Valuation(r, u.Coeff, x.p, limit)
		if !ok {
			x.log.Warn("t exponent overflow",
				zap.Int("t", u.Mono.T()),
				zap.Int("max", x.opts.maxExponent))
			return fmt.Errorf("%w: t^%d times p^%d exceeds t^%d",
				ErrReductionOverflow, u.Mono.T(), k+1, x.opts.maxExponent)
		}
		pending = insertTerm(r, pending, poly.Term[C]{Coeff: rest, Mono: u.Mono.WithT(u.Mono.T() + k)})
	}

	g.Terms = accepted
	return nil
}

func indexSpaceEqual[C any](ts []poly.Term[C], m poly.Monomial) int {
	for i, t := range ts {
		if t.Mono.SpaceEqual(m) {
			return i
		}
	}
	return -1
}

// insertTerm inserts t into the descending list ts, adding it to a term with
// the same monomial if there is one.
func insertTerm[C any](r coeff.Ring[C], ts []poly.Term[C], t poly.Term[C]) []poly.Term[C] {
	i := sort.Search(len(ts), func(i int) bool { return poly.Compare(ts[i].Mono, t.Mono) <= 0 })
	if i < len(ts) && ts[i].Mono.Equal(t.Mono) {
		c := r.Add(ts[i].Coeff, t.Coeff)
		if r.IsZero(c) {
			return append(ts[:i], ts[i+1:]...)
		}
		ts[i] = poly.Term[C]{Coeff: c, Mono: t.Mono}
		return ts
	}
	ts = append(ts, poly.Term[C]{})
	copy(ts[i+1:], ts[i:])
	ts[i] = t
	return ts
}
