package ideal

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/poly"
)

var zz coeff.Integers

func mono(c int64, t int, x ...int) *poly.Poly[*big.Int] {
	return poly.New[*big.Int](zz, poly.Term[*big.Int]{Coeff: big.NewInt(c), Mono: poly.Mono(t, x...)})
}

func TestArenaAliasing(t *testing.T) {
	a := NewArena[*big.Int]()
	h := a.New(mono(1, 0, 1))
	I := NewBorrowed(a, h)
	J := NewBorrowed(a, h)

	I.Poly(0).Set(mono(5, 2, 0))
	assert.Same(t, I.Poly(0), J.Poly(0))
	assert.Equal(t, int64(5), J.Poly(0).LeadCoeff().Int64())
}

func TestArenaReleaseOnce(t *testing.T) {
	a := NewArena[*big.Int]()
	h := a.New(mono(1, 0, 1))
	require.Equal(t, 1, a.Live())

	a.Release(h)
	assert.Equal(t, 0, a.Live())
	assert.True(t, a.Released(h))
	assert.Panics(t, func() { a.Release(h) })
	assert.Panics(t, func() { a.Get(h) })
}

func TestCompactOwned(t *testing.T) {
	a := NewArena[*big.Int]()
	I := FromPolys(a, mono(1, 0, 2), poly.Zero[*big.Int](), mono(3, 0, 1))
	I.Append(None)

	dropped := I.Compact()
	require.Len(t, dropped, 1)
	assert.Equal(t, 2, I.Len())
	assert.Equal(t, int64(1), I.Poly(0).LeadCoeff().Int64())
	assert.Equal(t, int64(3), I.Poly(1).LeadCoeff().Int64())
	assert.True(t, a.Released(dropped[0]))
	assert.Equal(t, 2, a.Live())
}

func TestCompactBorrowedNeverReleases(t *testing.T) {
	a := NewArena[*big.Int]()
	h0 := a.New(poly.Zero[*big.Int]())
	h1 := a.New(mono(1, 0, 1))
	I := NewBorrowed(a, h0, h1)

	dropped := I.Compact()
	assert.Equal(t, []Handle{h0}, dropped)
	assert.False(t, a.Released(h0))
	assert.Equal(t, []Handle{h1}, I.Handles())
}

func TestSortStableByLead(t *testing.T) {
	a := NewArena[*big.Int]()
	// leads: y, x^2, t*x^2, x^2 (second copy keeps its place after the first)
	I := FromPolys(a, mono(1, 0, 0, 1), mono(1, 0, 2, 0), mono(1, 1, 2, 0), mono(2, 0, 2, 0))
	I.Append(None)
	I.SortStable(ByLead[*big.Int])

	got := []Handle{I.At(0), I.At(1), I.At(2), I.At(3), I.At(4)}
	assert.Equal(t, []Handle{1, 3, 0, 2, None}, got)
}

func TestMergeSorted(t *testing.T) {
	a := NewArena[*big.Int]()
	G := FromPolys(a, mono(1, 0, 3), mono(1, 0, 1))
	H := FromPolys(a, mono(1, 0, 2), mono(1, 0, 0))
	G.MergeSorted(H, ByLead[*big.Int])

	var degs []int
	for _, p := range G.Polys() {
		degs = append(degs, p.LeadMono().SpaceDegree())
	}
	assert.Equal(t, []int{3, 2, 1, 0}, degs)
}

func TestDropOwned(t *testing.T) {
	a := NewArena[*big.Int]()
	I := FromPolys(a, mono(1, 0, 1), mono(1, 0, 2))
	B := NewBorrowed(a, I.Handles()...)

	B.Drop()
	assert.Equal(t, 2, a.Live())
	I.Drop()
	assert.Equal(t, 0, a.Live())
	assert.Equal(t, 0, I.Len())
}

func TestEqualAndIndex(t *testing.T) {
	a := NewArena[*big.Int]()
	I := FromPolys(a, mono(1, 0, 1), mono(2, 0, 2))
	J := FromPolys(a, mono(1, 0, 1), mono(2, 0, 2))
	assert.True(t, Equal[*big.Int](zz, I, J))

	J.Poly(1).Set(mono(3, 0, 2))
	assert.False(t, Equal[*big.Int](zz, I, J))
	assert.Equal(t, 1, I.Index(I.At(1)))
	assert.False(t, I.Contains(J.At(0)))
}

func TestRetain(t *testing.T) {
	a := NewArena[*big.Int]()
	I := FromPolys(a, mono(1, 0, 1), mono(1, 0, 2), mono(1, 0, 3))
	hs := I.Handles()
	B := NewBorrowed(a, hs...)

	B.Retain([]Handle{hs[2]})
	assert.Equal(t, 3, a.Live())
	assert.Equal(t, []Handle{hs[2]}, B.Handles())

	I.Retain([]Handle{hs[2], hs[0]})
	assert.True(t, a.Released(hs[1]))
	assert.Equal(t, []Handle{hs[2], hs[0]}, I.Handles())
	assert.Equal(t, 2, a.Live())
}
