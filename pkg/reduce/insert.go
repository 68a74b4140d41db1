package reduce

import (
	"ppreduce/pkg/ideal"
	"ppreduce/pkg/poly"
)

// insert adds g to the already reduced ideal I. g is placed by its leading
// monomial at slot j and only pairs that involve j are cancelled:
//
//	g against every earlier lead, every later generator against g,
//	every earlier generator against g and the later leads, g against every later lead.
//
// Generators changed on the way are then settled against the rest.
func (x *run[C]) insert(I *ideal.Ideal[C], g ideal.Handle) error {
	x.stats.Inserts++
	if err := x.pReduce(I.Arena().Get(g)); err != nil {
		return err
	}
	I.Compact()
	I.Append(g)
	if I.Arena().Get(g).IsZero() {
		I.Compact()
		return nil
	}

	n := I.Len()
	j := n - 1
	for ; j > 0; j-- {
		if poly.Compare(I.Poly(j).LeadMono(), I.Poly(j-1).LeadMono()) <= 0 {
			break
		}
		I.Swap(j, j-1)
	}

	dirty := newDirtySet()
	for i := 0; i < j; i++ {
		if err := x.reduceBy(I, j, i, dirty); err != nil {
			return err
		}
	}
	for k := j + 1; k < n; k++ {
		if err := x.reduceBy(I, k, j, dirty); err != nil {
			return err
		}
	}
	for i := 0; i < j; i++ {
		for k := j; k < n; k++ {
			if err := x.reduceBy(I, i, k, dirty); err != nil {
				return err
			}
		}
	}
	for k := j + 1; k < n; k++ {
		if err := x.reduceBy(I, j, k, dirty); err != nil {
			return err
		}
	}
	return x.settle(I, dirty)
}
