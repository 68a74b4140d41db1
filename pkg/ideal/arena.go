// Package ideal holds generator sets as sequences of stable handles into an
// arena of polynomials.
//
// Every polynomial of one computation lives in a single Arena. Ideals store
// handles, so the same polynomial can sit in several ideals at once and a
// mutation through one of them is seen through all the others.
package ideal

import (
	"fmt"

	"ppreduce/pkg/poly"
)

// Handle addresses a polynomial in an Arena. Handles are never reused.
type Handle int

// None marks an empty ideal slot.
const None Handle = -1

// Arena owns polynomials and hands out stable handles to them.
type Arena[C any] struct {
	polys []*poly.Poly[C]
	live  int
}

// NewArena returns an empty arena.
func NewArena[C any]() *Arena[C] {
	return &Arena[C]{}
}

// New stores p and returns its handle.
func (a *Arena[C]) New(p *poly.Poly[C]) Handle {
	a.polys = append(a.polys, p)
	a.live++
	return Handle(len(a.polys) - 1)
}

// Get returns the polynomial behind h. Every call returns the same pointer.
// It panics if h was released.
func (a *Arena[C]) Get(h Handle) *poly.Poly[C] {
	p := a.polys[h]
	if p == nil {
		panic(fmt.Sprintf("ideal: handle %d used after release", h))
	}
	return p
}

// Released reports whether h has been released.
func (a *Arena[C]) Released(h Handle) bool {
	return a.polys[h] == nil
}

// Release frees the polynomial behind h. Releasing twice panics.
func (a *Arena[C]) Release(h Handle) {
	if a.polys[h] == nil {
		panic(fmt.Sprintf("ideal: handle %d released twice", h))
	}
	a.polys[h] = nil
	a.live--
}

// Live returns the number of polynomials not yet released.
func (a *Arena[C]) Live() int {
	return a.live
}
