package reduce

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"ppreduce/pkg/ideal"
	"ppreduce/pkg/poly"
)

// cursor walks the non-leading terms of one generator of H. Terms at or
// above bound have been seen and are not divisible by any lead of G.
type cursor struct {
	h     ideal.Handle
	bound poly.Monomial
	ord   int
}

// position returns the index of the first non-leading term of p below
// bound, or -1.
func position[C any](p *poly.Poly[C], bound poly.Monomial) int {
	for i := 1; i < p.Len(); i++ {
		if bound == nil || poly.Compare(p.Terms[i].Mono, bound) < 0 {
			return i
		}
	}
	return -1
}

// reduceAgainst reduces H modulo G without forming G's span. Only the
// trailing terms actually present in H are inspected: a term divisible by a
// lead of G turns into a multiple of that generator, which is inserted into
// a working ideal holding H, so the cancellation reaches whichever
// generator carries the term. Multiples added that way are released before
// returning; H keeps its own handles with updated contents.
func (x *run[C]) reduceAgainst(H, G *ideal.Ideal[C]) error {
	if err := x.selfReduce(H); err != nil {
		return err
	}
	arena := H.Arena()
	members := make(map[ideal.Handle]bool, H.Len())
	for _, h := range H.Handles() {
		members[h] = true
	}
	work := ideal.NewBorrowed(arena, H.Handles()...)

	var created []ideal.Handle
	defer func() {
		for _, h := range created {
			arena.Release(h)
		}
	}()

	leads := G.Polys()
	for {
		progress := false
		cursors := x.cursors(work, members)
		x.log.Debug("cross reduction pass",
			zap.Int("generators", work.Len()),
			zap.Int("cursors", len(cursors)),
			zap.Int("reducers", len(leads)))
		for {
			cursors = x.advance(work, cursors)
			if len(cursors) == 0 {
				break
			}
			if err := x.tick(); err != nil {
				return err
			}
			x.stats.WorklistSteps++

			c := &cursors[0]
			p := arena.Get(c.h)
			m := p.Terms[position(p, c.bound)].Mono
			g := divisorOf(leads, m)
			if g == nil {
				c.bound = m
				continue
			}
			before := p.Terms[position(p, c.bound)]
			witness := arena.New(poly.MulMonomial(g, m.SpaceQuo(g.LeadMono())))
			created = append(created, witness)
			if err := x.insert(work, witness); err != nil {
				return err
			}
			if work.Contains(c.h) && x.hasTerm(p, before) {
				// the witness was absorbed elsewhere; move on and leave the
				// term to the rescan
				c.bound = m
				continue
			}
			progress = true
		}
		// a cancellation between members can expose a reducible term above
		// a cursor; start over until a full pass finds nothing
		if !x.hasReducibleTail(work, members, leads) {
			break
		}
		if !progress {
			x.log.Warn("cross reduction stalled", zap.Int("generators", work.Len()))
			return fmt.Errorf("%w: cross reduction made no progress", ErrStepLimit)
		}
	}

	var keep []ideal.Handle
	for _, h := range work.Handles() {
		if members[h] {
			keep = append(keep, h)
		}
	}
	H.Retain(keep)
	return nil
}

// cursors opens one cursor per member of work with more than one term.
func (x *run[C]) cursors(work *ideal.Ideal[C], members map[ideal.Handle]bool) []cursor {
	var cs []cursor
	for i, h := range work.Handles() {
		if members[h] && work.Poly(i).Len() > 1 {
			cs = append(cs, cursor{h: h, ord: len(cs)})
		}
	}
	return cs
}

// advance drops exhausted cursors and cursors whose generator left the
// working ideal, then orders the rest by the monomial under the cursor,
// largest first. Equal monomials keep the order the cursors were opened in.
func (x *run[C]) advance(work *ideal.Ideal[C], cs []cursor) []cursor {
	arena := work.Arena()
	out := cs[:0]
	for _, c := range cs {
		if !work.Contains(c.h) {
			continue
		}
		p := arena.Get(c.h)
		if position(p, c.bound) < 0 {
			continue
		}
		out = append(out, c)
	}
	at := func(c cursor) poly.Monomial {
		p := arena.Get(c.h)
		return p.Terms[position(p, c.bound)].Mono
	}
	sort.SliceStable(out, func(i, j int) bool {
		if d := poly.Compare(at(out[i]), at(out[j])); d != 0 {
			return d > 0
		}
		return out[i].ord < out[j].ord
	})
	return out
}

// hasReducibleTail reports whether some member of work has a non-leading
// term divisible by one of the leads.
func (x *run[C]) hasReducibleTail(work *ideal.Ideal[C], members map[ideal.Handle]bool, leads []*poly.Poly[C]) bool {
	for i, h := range work.Handles() {
		if !members[h] {
			continue
		}
		for _, t := range work.Poly(i).Terms[1:] {
			if divisorOf(leads, t.Mono) != nil {
				return true
			}
		}
	}
	return false
}

// hasTerm reports whether p still carries the term u unchanged.
func (x *run[C]) hasTerm(p *poly.Poly[C], u poly.Term[C]) bool {
	for _, t := range p.Terms {
		if t.Mono.Equal(u.Mono) {
			return x.ring.Equal(t.Coeff, u.Coeff)
		}
	}
	return false
}

// divisorOf returns the first generator whose leading monomial divides m.
func divisorOf[C any](gs []*poly.Poly[C], m poly.Monomial) *poly.Poly[C] {
	for _, g := range gs {
		if !g.IsZero() && g.LeadMono().Divides(m) {
			return g
		}
	}
	return nil
}
