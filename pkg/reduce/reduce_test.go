package reduce

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/encoding"
	"ppreduce/pkg/ideal"
	"ppreduce/pkg/poly"
	"ppreduce/pkg/sampling"
)

var (
	zz  coeff.Integers
	two = big.NewInt(2)
	tx  = []string{"t", "x"}
	txy = []string{"t", "x", "y"}
)

func parse(t *testing.T, vars []string, s string) *poly.Poly[*big.Int] {
	t.Helper()
	p, err := encoding.ParsePoly[*big.Int](zz, vars, s)
	require.NoError(t, err)
	return p
}

func build(t *testing.T, a *ideal.Arena[*big.Int], vars []string, gens ...string) *ideal.Ideal[*big.Int] {
	t.Helper()
	I := ideal.NewOwned(a)
	for _, g := range gens {
		I.Append(a.New(parse(t, vars, g)))
	}
	return I
}

func format(vars []string, I *ideal.Ideal[*big.Int]) []string {
	var out []string
	for _, p := range I.Polys() {
		out = append(out, encoding.FormatPoly[*big.Int](zz, vars, p))
	}
	return out
}

func newReducer(t *testing.T, opts ...Option) *Reducer[*big.Int] {
	t.Helper()
	r, err := New[*big.Int](zz, two, opts...)
	require.NoError(t, err)
	return r
}

func TestNewRejectsUnits(t *testing.T) {
	for _, p := range []int64{0, 1, -1} {
		_, err := New[*big.Int](zz, big.NewInt(p))
		assert.ErrorIs(t, err, ErrPrecondition, "p = %d", p)
	}
}

func TestOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { WithMaxExponent(0) })
	assert.Panics(t, func() { WithStepLimit(-1) })
	assert.NotPanics(t, func() { WithStepLimit(0) })
}

func TestPReduceDividesOutP(t *testing.T) {
	r := newReducer(t)
	g := parse(t, tx, "x + 4")
	require.NoError(t, r.PReduce(g))
	assert.Equal(t, "x + t^2", encoding.FormatPoly[*big.Int](zz, tx, g))
	assert.Equal(t, 1, r.Stats().PReductions)
}

func TestPReduceMergesSpaceMonomials(t *testing.T) {
	r := newReducer(t)
	g := parse(t, tx, "x + 3*t*x")
	require.NoError(t, r.PReduce(g))
	assert.Equal(t, "7*x", encoding.FormatPoly[*big.Int](zz, tx, g))

	// merging keeps the lower t exponent
	g = parse(t, tx, "x + t*x + 5*t^3")
	require.NoError(t, r.PReduce(g))
	assert.Equal(t, "3*x + 5*t^3", encoding.FormatPoly[*big.Int](zz, tx, g))

	g = parse(t, tx, "3*x + t^2*x")
	require.NoError(t, r.PReduce(g))
	assert.Equal(t, "7*x", encoding.FormatPoly[*big.Int](zz, tx, g))
}

func TestPReduceUniformizerVanishes(t *testing.T) {
	r := newReducer(t)
	g := parse(t, tx, "2 - t")
	require.NoError(t, r.PReduce(g))
	assert.True(t, g.IsZero())
}

func TestPReduceOverflow(t *testing.T) {
	r := newReducer(t, WithMaxExponent(3))
	g := parse(t, tx, "8*x")
	require.NoError(t, r.PReduce(g))
	assert.Equal(t, "t^3*x", encoding.FormatPoly[*big.Int](zz, tx, g))

	g = parse(t, tx, "16*x")
	err := r.PReduce(g)
	assert.ErrorIs(t, err, ErrReductionOverflow)
	assert.False(t, errors.Is(err, ErrPrecondition))
}

func TestPReduceZMod(t *testing.T) {
	z9, err := coeff.NewZMod(9)
	require.NoError(t, err)
	r, err := New[uint64](z9, 3)
	require.NoError(t, err)

	g, err := encoding.ParsePoly[uint64](z9, tx, "x + 6")
	require.NoError(t, err)
	require.NoError(t, r.PReduce(g))
	assert.Equal(t, "x + 2*t", encoding.FormatPoly[uint64](z9, tx, g))
}

func TestCancelInitial(t *testing.T) {
	r := newReducer(t)

	h, g := parse(t, txy, "x^2 + x*y"), parse(t, txy, "x + y")
	assert.Equal(t, Changed, r.CancelInitial(h, g))
	assert.True(t, h.IsZero())

	h = parse(t, txy, "y^2")
	assert.Equal(t, Unchanged, r.CancelInitial(h, g))
	assert.Equal(t, "y^2", encoding.FormatPoly[*big.Int](zz, txy, h))

	// the target is scaled, never divided
	h, g = parse(t, txy, "3*x + y"), parse(t, txy, "5*x + y")
	assert.Equal(t, Changed, r.CancelInitial(h, g))
	assert.Equal(t, "2*y", encoding.FormatPoly[*big.Int](zz, txy, h))
	assert.Equal(t, 1, r.Stats().Cancellations)

	assert.Equal(t, Unchanged, r.CancelInitial(g, g))
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "changed", Changed.String())
}

func TestSelfReducePair(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, tx, "x + 1", "x - 1")

	require.NoError(t, r.SelfReduce(I))
	assert.Equal(t, []string{"x + 1", "-t"}, format(tx, I))
	assert.Equal(t, 2, a.Live())
}

func TestSelfReduceIdempotent(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "x^2 + x*y", "x*y + y^2", "3*x^2 + 2*y^2")

	require.NoError(t, r.SelfReduce(I))
	first := format(txy, I)
	require.NoError(t, r.SelfReduce(I))
	assert.Equal(t, first, format(txy, I))
	assertSelfReduced(t, r, I)
}

func TestSelfReduceDropsDuplicates(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "x + y", "x + y", "x + y")

	require.NoError(t, r.SelfReduce(I))
	assert.Equal(t, []string{"x + y"}, format(txy, I))
	assert.Equal(t, 1, a.Live())
}

func TestInsertMatchesSelfReduce(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()

	I := build(t, a, txy, "x^2 + x*y")
	require.NoError(t, r.SelfReduce(I))
	require.NoError(t, r.Insert(I, a.New(parse(t, txy, "x*y + y^2"))))
	assert.Equal(t, 1, r.Stats().Inserts)
	require.NoError(t, r.SelfReduce(I))

	J := build(t, a, txy, "x^2 + x*y", "x*y + y^2")
	require.NoError(t, r.SelfReduce(J))

	assert.Equal(t, format(txy, J), format(txy, I))
	assert.Equal(t, []string{"x^2 - y^2", "x*y + y^2"}, format(txy, I))
}

// Test Insert followed by SelfReduce reaches the leads of SelfReduce on
// sampled strata. The generators themselves may differ by multiples of
// one another.
func TestInsertSampled(t *testing.T) {
	pr := sampling.DefaultParams()
	pr.Degrees = []int{2}
	pr.Gens = 5
	pr.Terms = 3
	leads := func(I *ideal.Ideal[*big.Int]) []poly.Monomial {
		var ms []poly.Monomial
		for _, g := range I.Polys() {
			ms = append(ms, g.LeadMono())
		}
		return ms
	}
	for seed := byte(0); seed < 40; seed++ {
		gens, err := sampling.SampleIdeal([]byte{seed}, pr)
		require.NoError(t, err)
		gens = gens[1:]

		r := newReducer(t, WithStepLimit(200_000))
		a := ideal.NewArena[*big.Int]()
		I := ideal.FromPolys(a, gens[:4]...)
		err = r.SelfReduce(I)
		if err == nil {
			err = r.Insert(I, a.New(gens[4]))
		}
		if err == nil {
			err = r.SelfReduce(I)
		}
		fresh, err2 := sampling.SampleIdeal([]byte{seed}, pr)
		require.NoError(t, err2)
		J := ideal.FromPolys(a, fresh[1:]...)
		if err == nil {
			err = r.SelfReduce(J)
		}
		if errors.Is(err, ErrStepLimit) || errors.Is(err, ErrReductionOverflow) {
			continue
		}
		require.NoError(t, err, "seed %d", seed)

		assertSelfReduced(t, r, I)
		assertSelfReduced(t, r, J)
		assert.Equal(t, leads(J), leads(I), "seed %d: leads differ", seed)
	}
}

func TestInsertIntoEmpty(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := ideal.NewOwned(a)
	require.NoError(t, r.Insert(I, a.New(parse(t, tx, "x + 4"))))
	assert.Equal(t, []string{"x + t^2"}, format(tx, I))
}

func TestInsertZeroIsDropped(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, tx, "x")
	require.NoError(t, r.Insert(I, a.New(parse(t, tx, "2 - t"))))
	assert.Equal(t, []string{"x"}, format(tx, I))
	assert.Equal(t, 1, a.Live())
}

func TestReduceAgainst(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	G := ideal.NewBorrowed(a, a.New(parse(t, txy, "x + y")))
	H := build(t, a, txy, "x^2 + x*y")
	h := H.At(0)
	before := a.Live()

	require.NoError(t, r.ReduceAgainst(H, G))
	assert.Equal(t, []string{"x^2 - y^2"}, format(txy, H))
	assert.Equal(t, h, H.At(0), "result keeps the generator's handle")
	assert.Equal(t, before, a.Live(), "intermediates are released")
	assert.Equal(t, 1, r.Stats().Inserts)
	assertCrossReduced(t, H, G)
}

func TestReduceAgainstNothingToDo(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	G := ideal.NewBorrowed(a, a.New(parse(t, txy, "x")))
	H := build(t, a, txy, "x*y + y^2")

	require.NoError(t, r.ReduceAgainst(H, G))
	assert.Equal(t, []string{"x*y + y^2"}, format(txy, H))
	assert.Zero(t, r.Stats().Inserts)
}

func TestReduce(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "2 - t", "x + y", "x^2 + x*y")

	require.NoError(t, r.Reduce(I))
	assert.Equal(t, []string{"2 - t", "x + y", "x^2 - y^2"}, format(txy, I))
	assert.Equal(t, 2, r.Stats().Strata)
	assert.Empty(t, r.Stats().Vanished)
	require.NoError(t, r.Check(I))
	assert.Equal(t, 3, a.Live())
}

func TestReduceTermLevel(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "2 - t", "x + 4*y")

	require.NoError(t, r.Reduce(I))
	assert.Equal(t, []string{"2 - t", "x + t^2*y"}, format(txy, I))
	assert.True(t, r.IsInitiallyReduced(I))
}

func TestReduceVanished(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "2 - t", "x + y", "2*x + 2*y")

	require.NoError(t, r.Reduce(I))
	assert.Equal(t, []string{"2 - t", "x + y"}, format(txy, I))
	assert.Equal(t, []int{2}, r.Stats().Vanished)
	assert.Equal(t, 2, a.Live())
}

func TestReduceVanishedIncludesEmptySlots(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "2 - t", "x + y")
	I.Append(ideal.None)
	I.Append(a.New(poly.New[*big.Int](zz)))

	require.NoError(t, r.Reduce(I))
	assert.Equal(t, []string{"2 - t", "x + y"}, format(txy, I))
	assert.Equal(t, []int{2, 3}, r.Stats().Vanished)
	assert.Equal(t, 2, a.Live())
}

func TestExtendByT(t *testing.T) {
	a := ideal.NewArena[*big.Int]()
	G := ideal.NewBorrowed(a,
		a.New(parse(t, txy, "t^2*x")),
		a.New(parse(t, txy, "y")))
	H := ideal.NewBorrowed(a,
		a.New(parse(t, txy, "x^2")),
		a.New(parse(t, txy, "t^3*x*y")),
		a.New(parse(t, txy, "t*y^2")))

	extendByT(G, H)
	assert.Equal(t, []string{"t^3*x*y", "t^2*x", "t*y^2", "y", "x^2"}, format(txy, G))
}

func TestReduceSortsStrata(t *testing.T) {
	r := newReducer(t)
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "y", "x^2", "2 - t", "x")

	require.NoError(t, r.Reduce(I))
	assert.Equal(t, []string{"x", "x^2", "2 - t", "y"}, format(txy, I))
	require.NoError(t, r.Check(I))
}

func TestReducePreconditions(t *testing.T) {
	r := newReducer(t)
	tests := []struct {
		name string
		gens []string
	}{
		{"inhomogeneous", []string{"2 - t", "x + 1"}},
		{"no uniformizer", []string{"x"}},
		{"two in degree 0", []string{"2 - t", "4 - 2*t"}},
		{"wrong uniformizer", []string{"3 - t", "x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := ideal.NewArena[*big.Int]()
			err := r.Reduce(build(t, a, tx, tc.gens...))
			assert.ErrorIs(t, err, ErrPrecondition)
			assert.False(t, errors.Is(err, ErrReductionOverflow))
		})
	}
}

func TestReduceOverflowIsFatal(t *testing.T) {
	r := newReducer(t, WithMaxExponent(2))
	a := ideal.NewArena[*big.Int]()
	I := build(t, a, txy, "2 - t", "x + 64*y")
	assert.ErrorIs(t, r.Reduce(I), ErrReductionOverflow)
}

func TestStepLimit(t *testing.T) {
	r := newReducer(t, WithStepLimit(1))
	a := ideal.NewArena[*big.Int]()
	assert.ErrorIs(t, r.SelfReduce(build(t, a, tx, "x + 1", "x - 1")), ErrStepLimit)
}

func TestCheck(t *testing.T) {
	r := newReducer(t)
	tests := []struct {
		name string
		vars []string
		gens []string
		ok   bool
	}{
		{"reduced", txy, []string{"2 - t", "x + y", "x^2 - y^2"}, true},
		{"coefficient divisible by p", tx, []string{"2 - t", "2*x"}, false},
		{"repeated space monomial", tx, []string{"2 - t", "x + t*x"}, false},
		{"equal leads", txy, []string{"2 - t", "x + y", "x"}, false},
		{"ascending leads", txy, []string{"2 - t", "y", "x"}, false},
		{"tail divisible by lower lead", txy, []string{"2 - t", "x", "x^2 + x*y"}, false},
		{"lead divisible by lower lead", txy, []string{"2 - t", "x", "x*y + y^2"}, true},
		{"bad degree 0", tx, []string{"1 + t", "x"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := ideal.NewArena[*big.Int]()
			err := r.Check(build(t, a, tc.vars, tc.gens...))
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrNotReduced)
		})
	}
}

// Test the properties of Reduce on sampled ideals
func TestReduceSampled(t *testing.T) {
	pr := sampling.DefaultParams()
	for seed := byte(0); seed < 20; seed++ {
		gens, err := sampling.SampleIdeal([]byte{seed}, pr)
		require.NoError(t, err)

		r := newReducer(t, WithStepLimit(200_000))
		a := ideal.NewArena[*big.Int]()
		I := ideal.FromPolys(a, gens...)
		if err := r.Reduce(I); err != nil {
			if errors.Is(err, ErrStepLimit) || errors.Is(err, ErrReductionOverflow) {
				t.Logf("seed %d: %v", seed, err)
				continue
			}
			t.Fatalf("seed %d: %v", seed, err)
		}
		require.NoError(t, r.Check(I), "seed %d", seed)

		first, err := encoding.Fingerprint[*big.Int](zz, I.Polys())
		require.NoError(t, err)
		require.NoError(t, r.Reduce(I), "seed %d: second run", seed)
		second, err := encoding.Fingerprint[*big.Int](zz, I.Polys())
		require.NoError(t, err)
		assert.Equal(t, first, second, "seed %d: Reduce is not a fixpoint", seed)
		assert.Equal(t, I.Len(), a.Live(), "seed %d: leaked generators", seed)
	}
}

// Test SelfReduce output on sampled strata
func TestSelfReduceSampled(t *testing.T) {
	pr := sampling.DefaultParams()
	pr.Degrees = []int{2}
	pr.Gens = 4
	for seed := byte(0); seed < 20; seed++ {
		gens, err := sampling.SampleIdeal([]byte{seed}, pr)
		require.NoError(t, err)

		r := newReducer(t, WithStepLimit(200_000))
		a := ideal.NewArena[*big.Int]()
		I := ideal.FromPolys(a, gens[1:]...)
		err = r.SelfReduce(I)
		if errors.Is(err, ErrStepLimit) || errors.Is(err, ErrReductionOverflow) {
			continue
		}
		require.NoError(t, err, "seed %d", seed)
		assertSelfReduced(t, r, I)

		before := format(txy, I)
		require.NoError(t, r.SelfReduce(I))
		assert.Equal(t, before, format(txy, I), "seed %d: not idempotent", seed)
	}
}

func assertSelfReduced(t *testing.T, r *Reducer[*big.Int], I *ideal.Ideal[*big.Int]) {
	t.Helper()
	ps := I.Polys()
	for i, g := range ps {
		require.False(t, g.IsZero())
		for j, u := range g.Terms {
			assert.False(t, zz.DivisibleBy(u.Coeff, r.P()), "generator %d: coefficient divisible by p", i)
			for _, v := range g.Terms[:j] {
				assert.False(t, v.Mono.SpaceEqual(u.Mono), "generator %d: repeated space monomial", i)
			}
		}
		if i > 0 {
			assert.Equal(t, 1, poly.Compare(ps[i-1].LeadMono(), g.LeadMono()), "leads %d and %d not descending", i-1, i)
		}
		for j, h := range ps {
			if i != j {
				assert.Negative(t, g.IndexDivisibleBy(h.LeadMono()), "generator %d divisible by lead of %d", i, j)
			}
		}
	}
}

func assertCrossReduced(t *testing.T, H, G *ideal.Ideal[*big.Int]) {
	t.Helper()
	for i, h := range H.Polys() {
		for _, u := range h.Terms[1:] {
			for _, g := range G.Polys() {
				assert.False(t, g.LeadMono().Divides(u.Mono), "trailing term of %d divisible by a lead of G", i)
			}
		}
	}
}
