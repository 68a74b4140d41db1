// Package encoding converts polynomials and ideals to text and to a
// canonical byte form, and fingerprints ideals.
package encoding

import (
	"fmt"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/hash"
	"ppreduce/pkg/poly"
)

// MaxUint24 is the largest value a packed field holds.
const MaxUint24 = 1<<24 - 1

// FingerprintSize is the length of Fingerprint output in bytes.
const FingerprintSize = 32

// PackUint24 packs values into bytes (3 bytes per value, little-endian).
func PackUint24(vs []uint32) []byte {
	result := make([]byte, len(vs)*3)
	for i, c := range vs {
		result[i*3] = byte(c & 0xFF)
		result[i*3+1] = byte((c >> 8) & 0xFF)
		result[i*3+2] = byte(c >> 16)
	}
	return result
}

// UnpackUint24 unpacks bytes into values.
func UnpackUint24(bs []byte) []uint32 {
	n := len(bs) / 3
	result := make([]uint32, n)
	for i := 0; i < n; i++ {
		result[i] = uint32(bs[i*3]) | (uint32(bs[i*3+1]) << 8) | (uint32(bs[i*3+2]) << 16)
	}
	return result
}

// PackPoly packs p as its term count followed by, per term, the exponents
// of t and the space variables, the length of the decimal coefficient and
// the coefficient itself. Counts, exponents and lengths take 3 bytes each.
func PackPoly[C any](r coeff.Ring[C], p *poly.Poly[C]) ([]byte, error) {
	if p.Len() > MaxUint24 {
		return nil, fmt.Errorf("%w: %d terms", ErrRange, p.Len())
	}
	out := PackUint24([]uint32{uint32(p.Len())})
	for _, t := range p.Terms {
		es := make([]uint32, len(t.Mono))
		for i, e := range t.Mono {
			if e < 0 || e > MaxUint24 {
				return nil, fmt.Errorf("%w: %d", ErrRange, e)
			}
			es[i] = uint32(e)
		}
		c := r.String(t.Coeff)
		out = append(out, PackUint24(es)...)
		out = append(out, PackUint24([]uint32{uint32(len(c))})...)
		out = append(out, c...)
	}
	return out, nil
}

// UnpackPoly reads one polynomial in vars space variables from the front
// of bs and returns it together with the number of bytes consumed.
func UnpackPoly[C any](r coeff.Ring[C], vars int, bs []byte) (*poly.Poly[C], int, error) {
	pos := 0
	next := func(n int) ([]byte, error) {
		if pos+n > len(bs) {
			return nil, fmt.Errorf("%w: need %d bytes at offset %d", ErrTruncated, n, pos)
		}
		b := bs[pos : pos+n]
		pos += n
		return b, nil
	}
	hdr, err := next(3)
	if err != nil {
		return nil, 0, err
	}
	n := int(UnpackUint24(hdr)[0])
	ts := make([]poly.Term[C], 0, n)
	for i := 0; i < n; i++ {
		raw, err := next(3 * (vars + 1))
		if err != nil {
			return nil, 0, err
		}
		m := make(poly.Monomial, vars+1)
		for j, e := range UnpackUint24(raw) {
			m[j] = int(e)
		}
		lb, err := next(3)
		if err != nil {
			return nil, 0, err
		}
		cb, err := next(int(UnpackUint24(lb)[0]))
		if err != nil {
			return nil, 0, err
		}
		c, err := r.Parse(string(cb))
		if err != nil {
			return nil, 0, err
		}
		ts = append(ts, poly.Term[C]{Coeff: c, Mono: m})
	}
	return poly.New(r, ts...), pos, nil
}

// PackIdeal packs the generator count followed by every generator.
func PackIdeal[C any](r coeff.Ring[C], ps []*poly.Poly[C]) ([]byte, error) {
	if len(ps) > MaxUint24 {
		return nil, fmt.Errorf("%w: %d generators", ErrRange, len(ps))
	}
	out := PackUint24([]uint32{uint32(len(ps))})
	for _, p := range ps {
		b, err := PackPoly(r, p)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// Fingerprint returns the SHAKE-256 digest of PackIdeal(r, ps).
func Fingerprint[C any](r coeff.Ring[C], ps []*poly.Poly[C]) ([]byte, error) {
	b, err := PackIdeal(r, ps)
	if err != nil {
		return nil, err
	}
	return hash.H(b, FingerprintSize), nil
}
