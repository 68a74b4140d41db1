// Package sampling draws pseudo-random space-homogeneous ideals from a
// SHAKE-128 stream, for tests and the sample command.
package sampling

import (
	"fmt"
	"math/big"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/hash"
	"ppreduce/pkg/poly"
)

// Eta bounds the absolute value of sampled coefficients.
const Eta = 2

// Params describes the shape of a sampled ideal.
type Params struct {
	Vars    int   // number of space variables
	Degrees []int // one stratum per entry, in this order
	Gens    int   // generators per stratum
	Terms   int   // terms per generator, fewer if the degree has too few monomials
	P       int64 // uniformizer
	MaxT    int   // largest t exponent of a sampled term
}

// DefaultParams returns small parameters that reduce quickly.
func DefaultParams() Params {
	return Params{Vars: 2, Degrees: []int{1, 2}, Gens: 2, Terms: 3, P: 2, MaxT: 1}
}

// Validate checks that the parameters describe a non-empty ideal.
func (pr Params) Validate() error {
	switch {
	case pr.Vars < 1 || pr.Vars > 255:
		return fmt.Errorf("sampling: vars = %d, want 1..255", pr.Vars)
	case pr.Gens < 0 || pr.Terms < 1:
		return fmt.Errorf("sampling: gens = %d, terms = %d", pr.Gens, pr.Terms)
	case pr.P < 2:
		return fmt.Errorf("sampling: p = %d is not a non-unit", pr.P)
	case pr.MaxT < 0 || pr.MaxT > 255:
		return fmt.Errorf("sampling: max t = %d, want 0..255", pr.MaxT)
	}
	for _, d := range pr.Degrees {
		if d < 1 {
			return fmt.Errorf("sampling: degree %d, want positive", d)
		}
	}
	return nil
}

// SampleIdeal returns the uniformizer p - t followed by Gens generators of
// every degree in pr.Degrees. Generator j of stratum i is drawn from the
// stream seed||(256*i+j), so strata can be regenerated independently.
func SampleIdeal(seed []byte, pr Params) ([]*poly.Poly[*big.Int], error) {
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	var zz coeff.Integers
	out := []*poly.Poly[*big.Int]{Uniformizer(pr.Vars, pr.P)}
	xof := hash.NewStreamingXOF128Reusable()
	for i, d := range pr.Degrees {
		for j := 0; j < pr.Gens; j++ {
			xof.Reset(seed, uint16(256*i+j))
			out = append(out, SamplePoly(zz, xof, pr.Vars, d, pr.Terms, pr.MaxT))
		}
	}
	return out, nil
}

// Uniformizer returns p - t in vars space variables.
func Uniformizer(vars int, p int64) *poly.Poly[*big.Int] {
	var zz coeff.Integers
	return poly.New[*big.Int](zz,
		poly.Term[*big.Int]{Coeff: big.NewInt(p), Mono: poly.One(vars)},
		poly.Term[*big.Int]{Coeff: big.NewInt(-1), Mono: poly.One(vars).WithT(1)},
	)
}

// SamplePoly samples a polynomial homogeneous of space degree d with up to
// terms terms, coefficients in [-Eta, Eta] \ {0} and t exponents in
// [0, maxT]. Space monomials are pairwise distinct.
func SamplePoly(r coeff.Ring[*big.Int], xof *hash.StreamingXOF128, vars, d, terms, maxT int) *poly.Poly[*big.Int] {
	s := &source{xof: xof}
	seen := make(map[string]bool)
	var ts []poly.Term[*big.Int]
	for attempt := 0; len(ts) < terms && attempt < 8*terms; attempt++ {
		m := poly.One(vars)
		for k := 0; k < d; k++ {
			m[1+s.below(vars)]++
		}
		key := fmt.Sprint([]int(m[1:]))
		if seen[key] {
			continue
		}
		seen[key] = true
		m[0] = s.below(maxT + 1)
		ts = append(ts, poly.Term[*big.Int]{Coeff: big.NewInt(s.coeff()), Mono: m})
	}
	return poly.New(r, ts...)
}

// source splits the XOF output into bytes and nibbles.
type source struct {
	xof *hash.StreamingXOF128
	buf [3]byte
	n   int
}

func (s *source) next() byte {
	if s.n == 0 {
		s.buf[0], s.buf[1], s.buf[2] = s.xof.Read3()
		s.n = 3
	}
	s.n--
	return s.buf[2-s.n]
}

// below returns a uniform value in [0, n) by rejection, n <= 256.
func (s *source) below(n int) int {
	if n <= 1 {
		return 0
	}
	limit := 256 - 256%n
	for {
		if v := int(s.next()); v < limit {
			return v % n
		}
	}
}

// coeff returns a non-zero value in [-Eta, Eta], read a nibble at a time.
func (s *source) coeff() int64 {
	for {
		b := s.next()
		for _, d := range [2]byte{b & 15, b >> 4} {
			// Eta - d%5 is uniform on [-Eta, Eta] for d <= 14
			if d <= 14 && d%5 != 2 {
				return int64(Eta - int(d%5))
			}
		}
	}
}
