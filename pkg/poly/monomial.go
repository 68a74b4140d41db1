package poly

// Monomial is an exponent vector. Slot 0 holds the exponent of the grading
// variable t; the remaining slots are the space variables x1, x2, ...
//
// Monomials are immutable once they are part of a term; every operation
// below returns a fresh slice.
type Monomial []int

// One returns the monomial 1 over n space variables.
func One(n int) Monomial {
	return make(Monomial, n+1)
}

// Mono builds a monomial from the t exponent followed by the space exponents.
func Mono(t int, x ...int) Monomial {
	m := make(Monomial, 1+len(x))
	m[0] = t
	copy(m[1:], x)
	return m
}

// T returns the exponent of t.
func (m Monomial) T() int { return m[0] }

// Vars returns the number of space variables.
func (m Monomial) Vars() int { return len(m) - 1 }

// SpaceDegree returns the total degree in the space variables.
func (m Monomial) SpaceDegree() int {
	d := 0
	for _, e := range m[1:] {
		d += e
	}
	return d
}

// Equal reports whether a and b are the same monomial.
func (m Monomial) Equal(o Monomial) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// SpaceEqual reports whether m and o agree on every space variable.
// The t exponents may differ.
func (m Monomial) SpaceEqual(o Monomial) bool {
	for i := 1; i < len(m); i++ {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// Divides reports whether m divides o, t included.
func (m Monomial) Divides(o Monomial) bool {
	for i := range m {
		if m[i] > o[i] {
			return false
		}
	}
	return true
}

// Mul returns m * o.
func (m Monomial) Mul(o Monomial) Monomial {
	r := make(Monomial, len(m))
	for i := range m {
		r[i] = m[i] + o[i]
	}
	return r
}

// Quo returns m / o. o must divide m.
func (m Monomial) Quo(o Monomial) Monomial {
	r := make(Monomial, len(m))
	for i := range m {
		r[i] = m[i] - o[i]
	}
	return r
}

// SpaceQuo returns the space part of m / o with a zero t exponent.
// The space part of o must divide the space part of m.
func (m Monomial) SpaceQuo(o Monomial) Monomial {
	r := make(Monomial, len(m))
	for i := 1; i < len(m); i++ {
		r[i] = m[i] - o[i]
	}
	return r
}

// WithT returns a copy of m with the t exponent replaced by e.
func (m Monomial) WithT(e int) Monomial {
	r := make(Monomial, len(m))
	copy(r, m)
	r[0] = e
	return r
}

// Compare orders monomials for the whole engine. It returns +1 if a > b,
// -1 if a < b and 0 if they are equal.
//
// The order is local in t: a smaller t exponent is larger. Ties go to the
// larger space degree, then to the lexicographically larger space part.
// The order is compatible with multiplication.
func Compare(a, b Monomial) int {
	if a[0] != b[0] {
		if a[0] < b[0] {
			return 1
		}
		return -1
	}
	da, db := a.SpaceDegree(), b.SpaceDegree()
	if da != db {
		if da > db {
			return 1
		}
		return -1
	}
	for i := 1; i < len(a); i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
