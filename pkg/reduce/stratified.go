package reduce

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"ppreduce/pkg/ideal"
	"ppreduce/pkg/poly"
)

// reduce normalizes the generators of I, splits them by space degree and
// folds the strata in increasing degree into an accumulator of everything
// already reduced, ordered by t exponent. Generators keep their handles, so the results land in I
// without copying; those reduced to zero are compacted away at the end.
//
// The degree-0 stratum is the uniformizer p - t. It is validated but never
// term-reduced: substituting t = p turns it into zero. Its role is played by
// PReduce inside every other stratum.
func (x *run[C]) reduce(I *ideal.Ideal[C]) error {
	arena := I.Arena()
	origin := make(map[ideal.Handle]int, I.Len())
	strata := make(map[int][]ideal.Handle)
	var base []ideal.Handle

	for i := 0; i < I.Len(); i++ {
		p := I.Poly(i)
		if p == nil || p.IsZero() {
			x.stats.Vanished = append(x.stats.Vanished, i)
			continue
		}
		p.Normalize(x.ring)
		d, ok := p.SpaceDegree()
		if !ok {
			return fmt.Errorf("%w: generator %d is not homogeneous in the space variables", ErrPrecondition, i)
		}
		h := I.At(i)
		origin[h] = i
		if d == 0 {
			base = append(base, h)
			continue
		}
		strata[d] = append(strata[d], h)
	}
	if err := x.checkUniformizer(arena, base); err != nil {
		return err
	}

	degrees := make([]int, 0, len(strata))
	for d := range strata {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)

	G := ideal.NewBorrowed(arena)
	for _, d := range degrees {
		x.stats.Strata++
		H := ideal.NewBorrowed(arena, strata[d]...)
		x.log.Debug("reducing stratum",
			zap.Int("degree", d),
			zap.Int("generators", H.Len()),
			zap.Int("reducers", G.Len()))

		if err := x.reduceAgainst(H, G); err != nil {
			return fmt.Errorf("degree %d: %w", d, err)
		}
		x.writeBack(I, H, strata[d], origin)
		extendByT(G, H)
	}
	sort.Ints(x.stats.Vanished)

	I.Compact()
	for _, p := range I.Polys() {
		p.Normalize(x.ring)
	}
	x.log.Debug("reduced ideal",
		zap.Int("generators", I.Len()),
		zap.Int("vanished", len(x.stats.Vanished)))
	return nil
}

// byT orders polynomials by descending t exponent of the leading term.
func byT[C any](a, b *poly.Poly[C]) bool { return a.TDegree() > b.TDegree() }

// extendByT merges the generators of H into G, which is kept ordered by
// byT. On equal t exponents earlier members of G come first.
func extendByT[C any](G, H *ideal.Ideal[C]) {
	T := ideal.NewBorrowed(H.Arena(), H.Handles()...)
	T.SortStable(byT[C])
	G.MergeSorted(T, byT[C])
}

// writeBack stores the reduced stratum H, in its sorted order, in the slots
// of I the stratum came from, lowest slot first. Slots left over belonged to
// generators reduced to zero and are cleared; an owning I releases those.
func (x *run[C]) writeBack(I, H *ideal.Ideal[C], stratum []ideal.Handle, origin map[ideal.Handle]int) {
	slots := make([]int, 0, len(stratum))
	for _, h := range stratum {
		slots = append(slots, origin[h])
		if !H.Contains(h) {
			x.stats.Vanished = append(x.stats.Vanished, origin[h])
			if I.Owns() {
				I.Arena().Release(h)
			}
		}
	}
	sort.Ints(slots)
	for i, s := range slots {
		if i < H.Len() {
			I.Set(s, H.At(i))
			continue
		}
		I.Set(s, ideal.None)
	}
}

// checkUniformizer verifies that base holds exactly one generator and that
// it is a unit multiple of p - t.
func (x *run[C]) checkUniformizer(arena *ideal.Arena[C], base []ideal.Handle) error {
	if len(base) != 1 {
		return fmt.Errorf("%w: %d generators of space degree 0, want the uniformizer only", ErrPrecondition, len(base))
	}
	if !x.isUniformizer(arena.Get(base[0])) {
		return fmt.Errorf("%w: degree 0 generator is not a unit multiple of p - t", ErrPrecondition)
	}
	return nil
}

// isUniformizer reports whether g = c0 + c1*t with c1 a unit and c0 = -c1*p.
func (x *run[C]) isUniformizer(g *poly.Poly[C]) bool {
	if g.Len() != 2 {
		return false
	}
	lo, hi := g.Terms[0], g.Terms[1]
	if lo.Mono.SpaceDegree() != 0 || hi.Mono.SpaceDegree() != 0 || lo.Mono.T() != 0 || hi.Mono.T() != 1 {
		return false
	}
	r := x.ring
	return r.IsUnit(hi.Coeff) && r.Equal(lo.Coeff, r.Neg(r.Mul(hi.Coeff, x.p)))
}
