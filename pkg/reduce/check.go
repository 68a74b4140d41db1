package reduce

import (
	"fmt"
	"sort"

	"ppreduce/pkg/ideal"
	"ppreduce/pkg/poly"
)

// Check reports whether I is initially reduced, as produced by Reduce.
// Space degree 0 must hold only the uniformizer, which is exempt from the
// coefficient rules. Within one space degree, generators appear with
// strictly descending leads and no term of one is divisible by the lead of
// another. No non-leading term is divisible by a lead of lower space degree.
// The returned error wraps ErrNotReduced or ErrPrecondition.
func (r *Reducer[C]) Check(I *ideal.Ideal[C]) error {
	x := r.begin()
	strata := make(map[int][]int)
	for i := 0; i < I.Len(); i++ {
		g := I.Poly(i)
		if g == nil || g.IsZero() {
			continue
		}
		d, ok := g.SpaceDegree()
		if !ok {
			return fmt.Errorf("%w: generator %d is not homogeneous in the space variables", ErrPrecondition, i)
		}
		if d == 0 {
			if !x.isUniformizer(g) {
				return fmt.Errorf("%w: generator %d has space degree 0 but is not the uniformizer", ErrNotReduced, i)
			}
			continue
		}
		if err := x.checkTerms(g); err != nil {
			return fmt.Errorf("generator %d: %w", i, err)
		}
		strata[d] = append(strata[d], i)
	}

	degrees := make([]int, 0, len(strata))
	for d := range strata {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)

	var lower []int
	for _, d := range degrees {
		slots := strata[d]
		for k, i := range slots {
			g := I.Poly(i)
			if k > 0 && poly.Compare(I.Poly(slots[k-1]).LeadMono(), g.LeadMono()) <= 0 {
				return fmt.Errorf("%w: leads of generators %d and %d are not strictly descending", ErrNotReduced, slots[k-1], i)
			}
			for _, j := range slots {
				if j != i && g.IndexDivisibleBy(I.Poly(j).LeadMono()) >= 0 {
					return fmt.Errorf("%w: a term of generator %d is divisible by the lead of %d", ErrNotReduced, i, j)
				}
			}
			for _, j := range lower {
				for _, t := range g.Terms[1:] {
					if I.Poly(j).LeadMono().Divides(t.Mono) {
						return fmt.Errorf("%w: a trailing term of generator %d is divisible by the lead of %d", ErrNotReduced, i, j)
					}
				}
			}
		}
		lower = append(lower, slots...)
	}
	return nil
}

// IsInitiallyReduced reports whether Check accepts I.
func (r *Reducer[C]) IsInitiallyReduced(I *ideal.Ideal[C]) bool {
	return r.Check(I) == nil
}

// checkTerms verifies the PReduce invariants on one generator.
func (x *run[C]) checkTerms(g *poly.Poly[C]) error {
	for i, t := range g.Terms {
		if x.ring.DivisibleBy(t.Coeff, x.p) {
			return fmt.Errorf("%w: coefficient %s is divisible by p", ErrNotReduced, x.ring.String(t.Coeff))
		}
		for _, u := range g.Terms[:i] {
			if u.Mono.SpaceEqual(t.Mono) {
				return fmt.Errorf("%w: two terms share a space monomial", ErrNotReduced)
			}
		}
	}
	return nil
}
