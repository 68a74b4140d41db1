package ideal

import (
	"sort"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/poly"
)

// Ideal is an ordered, possibly sparse sequence of generator slots.
//
// An owning ideal releases the handles it drops (Compact, Drop); a borrowed
// ideal is a view over handles owned elsewhere and never releases anything.
type Ideal[C any] struct {
	arena *Arena[C]
	slots []Handle
	owns  bool
}

// NewOwned returns an empty ideal that owns its generators.
func NewOwned[C any](a *Arena[C]) *Ideal[C] {
	return &Ideal[C]{arena: a, owns: true}
}

// NewBorrowed returns a view over the given handles.
func NewBorrowed[C any](a *Arena[C], hs ...Handle) *Ideal[C] {
	slots := make([]Handle, len(hs))
	copy(slots, hs)
	return &Ideal[C]{arena: a, slots: slots}
}

// FromPolys stores ps in a and returns an owning ideal over them.
func FromPolys[C any](a *Arena[C], ps ...*poly.Poly[C]) *Ideal[C] {
	I := NewOwned(a)
	for _, p := range ps {
		I.Append(a.New(p))
	}
	return I
}

// Arena returns the arena the ideal's handles point into.
func (I *Ideal[C]) Arena() *Arena[C] { return I.arena }

// Owns reports whether the ideal owns its generators.
func (I *Ideal[C]) Owns() bool { return I.owns }

// Len returns the number of slots, empty ones included.
func (I *Ideal[C]) Len() int { return len(I.slots) }

// At returns the handle in slot i, or None.
func (I *Ideal[C]) At(i int) Handle { return I.slots[i] }

// Poly returns the polynomial in slot i, or nil for an empty slot.
func (I *Ideal[C]) Poly(i int) *poly.Poly[C] {
	if I.slots[i] == None {
		return nil
	}
	return I.arena.Get(I.slots[i])
}

// Append adds h at the end.
func (I *Ideal[C]) Append(h Handle) { I.slots = append(I.slots, h) }

// Set stores h in slot i.
func (I *Ideal[C]) Set(i int, h Handle) { I.slots[i] = h }

// Clear empties slot i without releasing anything.
func (I *Ideal[C]) Clear(i int) { I.slots[i] = None }

// Swap exchanges slots i and j.
func (I *Ideal[C]) Swap(i, j int) { I.slots[i], I.slots[j] = I.slots[j], I.slots[i] }

// Handles returns a copy of the slot sequence.
func (I *Ideal[C]) Handles() []Handle {
	out := make([]Handle, len(I.slots))
	copy(out, I.slots)
	return out
}

// Index returns the slot holding h, or -1.
func (I *Ideal[C]) Index(h Handle) int {
	for i, s := range I.slots {
		if s == h {
			return i
		}
	}
	return -1
}

// Contains reports whether some slot holds h.
func (I *Ideal[C]) Contains(h Handle) bool { return I.Index(h) >= 0 }

// Compact removes empty slots and slots whose polynomial is zero, keeping the
// relative order of the survivors. It returns the dropped handles; an owning
// ideal has already released them.
func (I *Ideal[C]) Compact() []Handle {
	var dropped []Handle
	out := I.slots[:0]
	for _, h := range I.slots {
		if h == None {
			continue
		}
		if I.arena.Get(h).IsZero() {
			dropped = append(dropped, h)
			continue
		}
		out = append(out, h)
	}
	I.slots = out
	if I.owns {
		for _, h := range dropped {
			I.arena.Release(h)
		}
	}
	return dropped
}

// SortStable orders the slots by less over their polynomials. Empty slots
// and zero polynomials go last.
func (I *Ideal[C]) SortStable(less func(a, b *poly.Poly[C]) bool) {
	sort.SliceStable(I.slots, func(i, j int) bool {
		a, b := I.nonZero(i), I.nonZero(j)
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return less(a, b)
	})
}

// MergeSorted merges the slots of other into I. Both must already be sorted
// by less; on ties generators of I come first.
func (I *Ideal[C]) MergeSorted(other *Ideal[C], less func(a, b *poly.Poly[C]) bool) {
	out := make([]Handle, 0, len(I.slots)+len(other.slots))
	i, j := 0, 0
	for i < len(I.slots) && j < len(other.slots) {
		if less(other.arena.Get(other.slots[j]), I.arena.Get(I.slots[i])) {
			out = append(out, other.slots[j])
			j++
		} else {
			out = append(out, I.slots[i])
			i++
		}
	}
	out = append(out, I.slots[i:]...)
	out = append(out, other.slots[j:]...)
	I.slots = out
}

// Retain replaces the slots of I by keep. Handles of I missing from keep are
// released if I owns them.
func (I *Ideal[C]) Retain(keep []Handle) {
	kept := make(map[Handle]bool, len(keep))
	for _, h := range keep {
		kept[h] = true
	}
	if I.owns {
		for _, h := range I.slots {
			if h != None && !kept[h] {
				I.arena.Release(h)
			}
		}
	}
	I.slots = append(I.slots[:0:0], keep...)
}

// Drop empties the ideal, releasing every generator if it owns them.
func (I *Ideal[C]) Drop() {
	if I.owns {
		for _, h := range I.slots {
			if h != None {
				I.arena.Release(h)
			}
		}
	}
	I.slots = nil
}

// Polys returns the non-empty generators in slot order.
func (I *Ideal[C]) Polys() []*poly.Poly[C] {
	out := make([]*poly.Poly[C], 0, len(I.slots))
	for _, h := range I.slots {
		if h != None {
			out = append(out, I.arena.Get(h))
		}
	}
	return out
}

// Equal reports whether I and J hold equal polynomials in the same order.
func Equal[C any](r coeff.Ring[C], I, J *Ideal[C]) bool {
	a, b := I.Polys(), J.Polys()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !poly.Equal(r, a[i], b[i]) {
			return false
		}
	}
	return true
}

// ByLead orders polynomials by descending leading monomial.
func ByLead[C any](a, b *poly.Poly[C]) bool {
	return poly.Compare(a.LeadMono(), b.LeadMono()) > 0
}

func (I *Ideal[C]) nonZero(i int) *poly.Poly[C] {
	h := I.slots[i]
	if h == None {
		return nil
	}
	p := I.arena.Get(h)
	if p.IsZero() {
		return nil
	}
	return p
}
