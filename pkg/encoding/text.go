package encoding

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/poly"
)

// FormatPoly writes p as a sum of terms in the order of its term list, e.g.
// "x*y + 3*t^2*y^2". vars names the grading variable first, then the space
// variables. The zero polynomial is "0".
func FormatPoly[C any](r coeff.Ring[C], vars []string, p *poly.Poly[C]) string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	for i, t := range p.Terms {
		c := r.String(t.Coeff)
		neg := strings.HasPrefix(c, "-")
		c = strings.TrimPrefix(c, "-")
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		factors := monomialFactors(vars, t.Mono)
		if c != "1" || len(factors) == 0 {
			factors = append([]string{c}, factors...)
		}
		b.WriteString(strings.Join(factors, "*"))
	}
	return b.String()
}

func monomialFactors(vars []string, m poly.Monomial) []string {
	var fs []string
	for i, e := range m {
		switch {
		case e == 0:
		case e == 1:
			fs = append(fs, vars[i])
		default:
			fs = append(fs, vars[i]+"^"+strconv.Itoa(e))
		}
	}
	return fs
}

// ParsePoly reads a polynomial written as a sum of products of integers and
// variables with optional non-negative integer powers, as FormatPoly does.
// Terms with equal monomials are combined.
func ParsePoly[C any](r coeff.Ring[C], vars []string, s string) (*poly.Poly[C], error) {
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}
	sc := &scanner{src: s}
	var ts []poly.Term[C]
	for first := true; ; first = false {
		sc.skipSpace()
		if sc.done() {
			if first {
				return nil, fmt.Errorf("%w: empty input", ErrSyntax)
			}
			break
		}
		neg := false
		switch sc.peek() {
		case '+', '-':
			neg = sc.next() == '-'
		default:
			if !first {
				return nil, sc.errorf("expected + or -")
			}
		}
		t, err := parseTerm(r, index, len(vars), sc)
		if err != nil {
			return nil, err
		}
		if neg {
			t.Coeff = r.Neg(t.Coeff)
		}
		ts = append(ts, t)
	}
	return poly.New(r, ts...), nil
}

func parseTerm[C any](r coeff.Ring[C], index map[string]int, n int, sc *scanner) (poly.Term[C], error) {
	c := r.One()
	m := make(poly.Monomial, n)
	for {
		sc.skipSpace()
		switch ch := sc.peek(); {
		case unicode.IsDigit(ch):
			v, err := r.Parse(sc.digits())
			if err != nil {
				return poly.Term[C]{}, fmt.Errorf("%w: %v", ErrSyntax, err)
			}
			c = r.Mul(c, v)
		case isIdentStart(ch):
			name := sc.ident()
			i, ok := index[name]
			if !ok {
				return poly.Term[C]{}, sc.errorf("unknown variable %q", name)
			}
			e := 1
			sc.skipSpace()
			if sc.peek() == '^' {
				sc.next()
				sc.skipSpace()
				d := sc.digits()
				if d == "" {
					return poly.Term[C]{}, sc.errorf("expected exponent")
				}
				v, err := strconv.Atoi(d)
				if err != nil || v > MaxUint24 {
					return poly.Term[C]{}, fmt.Errorf("%w: %s^%s", ErrRange, name, d)
				}
				e = v
			}
			m[i] += e
		default:
			return poly.Term[C]{}, sc.errorf("expected number or variable")
		}
		sc.skipSpace()
		if sc.peek() != '*' {
			return poly.Term[C]{Coeff: c, Mono: m}, nil
		}
		sc.next()
	}
}

// scanner walks the input rune by rune. peek returns 0 at the end.
type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.done() {
		return 0
	}
	return rune(s.src[s.pos])
}

func (s *scanner) next() rune {
	ch := s.peek()
	s.pos++
	return ch
}

func (s *scanner) skipSpace() {
	for !s.done() && unicode.IsSpace(s.peek()) {
		s.pos++
	}
}

func (s *scanner) digits() string {
	start := s.pos
	for !s.done() && unicode.IsDigit(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) ident() string {
	start := s.pos
	for !s.done() && (isIdentStart(s.peek()) || unicode.IsDigit(s.peek())) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrSyntax, fmt.Sprintf(format, args...), s.pos, s.src)
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch < 128 && unicode.IsLetter(ch))
}
