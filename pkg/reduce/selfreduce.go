package reduce

import (
	"ppreduce/pkg/ideal"
)

// selfReduce puts I into internal normal form: sort, PReduce every
// generator, a first pass cancelling later generators against earlier
// leads, a second pass cancelling earlier generators against later leads,
// compaction. Generators touched by a cancellation are then settled against
// the rest until nothing changes.
func (x *run[C]) selfReduce(I *ideal.Ideal[C]) error {
	I.Compact()
	I.SortStable(ideal.ByLead[C])
	for i := 0; i < I.Len(); i++ {
		if err := x.pReduce(I.Poly(i)); err != nil {
			return err
		}
	}
	// a lead coefficient divisible by p moves the lead
	I.Compact()
	I.SortStable(ideal.ByLead[C])

	dirty := newDirtySet()
	n := I.Len()
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if err := x.reduceBy(I, j, i, dirty); err != nil {
				return err
			}
		}
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if err := x.reduceBy(I, i, j, dirty); err != nil {
				return err
			}
		}
	}
	return x.settle(I, dirty)
}

// reduceBy cancels slot target against the lead of slot by and, on change,
// runs PReduce on the target and marks it dirty.
func (x *run[C]) reduceBy(I *ideal.Ideal[C], target, by int, dirty *dirtySet) error {
	if target == by {
		return nil
	}
	if err := x.tick(); err != nil {
		return err
	}
	h, g := I.Poly(target), I.Poly(by)
	if h == nil || g == nil {
		return nil
	}
	if x.cancel(h, g) == Unchanged {
		return nil
	}
	dirty.add(I.At(target))
	return x.pReduce(h)
}

// settle compacts and sorts I, then re-checks every pair involving a dirty
// generator until no cancellation applies anywhere.
func (x *run[C]) settle(I *ideal.Ideal[C], dirty *dirtySet) error {
	for {
		I.Compact()
		I.SortStable(ideal.ByLead[C])
		if dirty.empty() {
			return nil
		}
		for _, h := range dirty.drain(I.Handles()) {
			i := I.Index(h)
			for k := 0; k < I.Len(); k++ {
				if err := x.reduceBy(I, i, k, dirty); err != nil {
					return err
				}
				if err := x.reduceBy(I, k, i, dirty); err != nil {
					return err
				}
			}
		}
	}
}

// dirtySet tracks generators changed since their pairs were last checked.
type dirtySet struct {
	m map[ideal.Handle]bool
}

func newDirtySet() *dirtySet {
	return &dirtySet{m: make(map[ideal.Handle]bool)}
}

func (d *dirtySet) add(h ideal.Handle) { d.m[h] = true }

func (d *dirtySet) empty() bool { return len(d.m) == 0 }

// drain returns the dirty handles among slots, in slot order, and clears
// the set.
func (d *dirtySet) drain(slots []ideal.Handle) []ideal.Handle {
	var out []ideal.Handle
	for _, h := range slots {
		if d.m[h] {
			out = append(out, h)
		}
	}
	d.m = make(map[ideal.Handle]bool)
	return out
}
