// Package reduce implements initial reduction of polynomial ideals with
// respect to a uniformizer p and the grading variable t.
//
// Polynomials live in an ideal.Arena and ideals hold handles into it, so the
// same generator can be shared between the caller's ideal, per-degree strata
// and the worklists used internally. Every operation mutates the polynomials
// it is given in place.
//
// The engine works in a fixed monomial order (poly.Compare) that is local in
// t. Its guarantees on return from SelfReduce, Insert, ReduceAgainst and
// Reduce:
//   - no generator has two terms with the same space monomial;
//   - no coefficient is divisible by p;
//   - leading monomials are strictly descending and no term of a generator is
//     divisible by the leading monomial of another generator of the ideal.
//
// A Reducer is not safe for concurrent use.
package reduce

import (
	"fmt"

	"go.uber.org/zap"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/ideal"
	"ppreduce/pkg/poly"
)

// Stats counts the work done by the last public call.
type Stats struct {
	PReductions   int
	Cancellations int
	Inserts       int
	WorklistSteps int
	Strata        int
	// Vanished lists the slots of the ideal given to Reduce that end up
	// without a generator, in increasing order: empty slots, zero
	// generators and generators reduced to zero.
	Vanished []int
}

// Reducer runs the reduction algorithms over one coefficient ring and one
// uniformizer p.
type Reducer[C any] struct {
	ring coeff.Ring[C]
	p    C
	opts options
	last Stats
}

// New returns a Reducer for ring r and uniformizer p. p must be a non-zero
// non-unit.
func New[C any](r coeff.Ring[C], p C, opts ...Option) (*Reducer[C], error) {
	if r.IsZero(p) || r.IsUnit(p) {
		return nil, fmt.Errorf("%w: p = %s must be a non-zero non-unit", ErrPrecondition, r.String(p))
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Reducer[C]{ring: r, p: p, opts: o}, nil
}

// Ring returns the coefficient ring.
func (r *Reducer[C]) Ring() coeff.Ring[C] { return r.ring }

// P returns the uniformizer.
func (r *Reducer[C]) P() C { return r.p }

// Stats returns the counters of the last public call.
func (r *Reducer[C]) Stats() Stats { return r.last }

// PReduce rewrites g so that its terms have pairwise distinct space
// monomials and no coefficient is divisible by p.
func (r *Reducer[C]) PReduce(g *poly.Poly[C]) error {
	x := r.begin()
	defer r.finish(x)
	return x.pReduce(g)
}

// CancelInitial cancels the first term of h divisible by the leading monomial
// of g. Both must already satisfy the PReduce invariants. The caller has to
// run PReduce on h afterwards when Changed is returned.
func (r *Reducer[C]) CancelInitial(h, g *poly.Poly[C]) Cancellation {
	x := r.begin()
	defer r.finish(x)
	return x.cancel(h, g)
}

// SelfReduce sorts the generators of I by leading monomial and reduces them
// against each other and against p - t. The generators must be homogeneous
// in the space variables of one common degree.
func (r *Reducer[C]) SelfReduce(I *ideal.Ideal[C]) error {
	x := r.begin()
	defer r.finish(x)
	return x.selfReduce(I)
}

// Insert adds g to the self-reduced ideal I and restores its normal form.
func (r *Reducer[C]) Insert(I *ideal.Ideal[C], g ideal.Handle) error {
	x := r.begin()
	defer r.finish(x)
	return x.insert(I, g)
}

// ReduceAgainst reduces H with respect to itself, p - t, and the ideal G of
// generators of strictly lower space degree. On return no generator of H
// has a non-leading term divisible by a leading monomial of G.
func (r *Reducer[C]) ReduceAgainst(H, G *ideal.Ideal[C]) error {
	x := r.begin()
	defer r.finish(x)
	return x.reduceAgainst(H, G)
}

// Reduce computes the initially reduced form of I, whose generators are
// homogeneous in the space variables and which contains the uniformizer
// p - t as its only generator of space degree 0.
func (r *Reducer[C]) Reduce(I *ideal.Ideal[C]) error {
	x := r.begin()
	defer r.finish(x)
	return x.reduce(I)
}

// run carries the state of one public call.
type run[C any] struct {
	*Reducer[C]
	log   *zap.Logger
	steps int
	stats Stats
}

func (r *Reducer[C]) begin() *run[C] {
	return &run[C]{Reducer: r, log: r.opts.logger}
}

func (r *Reducer[C]) finish(x *run[C]) {
	r.last = x.stats
}

// tick charges one step against the budget.
func (x *run[C]) tick() error {
	x.steps++
	if x.opts.stepLimit > 0 && x.steps > x.opts.stepLimit {
		x.log.Warn("step limit exceeded", zap.Int("limit", x.opts.stepLimit))
		return fmt.Errorf("%w: %d steps", ErrStepLimit, x.opts.stepLimit)
	}
	return nil
}
