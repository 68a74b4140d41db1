// Package problem reads reduction problems from YAML files and solves them.
package problem

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ring kinds accepted in the ring field.
const (
	RingIntegers = "integers"
	RingZModPfx  = "zmod:"
)

// Problem is one input file. The first variable is the grading variable t,
// the rest are the space variables.
type Problem struct {
	Name        string   `yaml:"name,omitempty"`
	Variables   []string `yaml:"variables"`
	Ring        string   `yaml:"ring"`
	P           string   `yaml:"p"`
	MaxExponent int      `yaml:"max_exponent,omitempty"`
	StepLimit   *int     `yaml:"step_limit,omitempty"`
	Generators  []string `yaml:"generators"`
}

// Load reads and validates the problem at path. A missing name is filled in
// from the path.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem: %w", err)
	}
	pr, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if pr.Name == "" {
		pr.Name = path
	}
	return pr, nil
}

// Parse decodes and validates a problem. Unknown fields are rejected.
func Parse(data []byte) (*Problem, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	pr := &Problem{Ring: RingIntegers}
	if err := dec.Decode(pr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProblem, err)
	}
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	return pr, nil
}

// Marshal encodes the problem as YAML.
func (pr *Problem) Marshal() ([]byte, error) {
	return yaml.Marshal(pr)
}

// Validate checks the fields that can be checked without parsing
// polynomials.
func (pr *Problem) Validate() error {
	if len(pr.Variables) < 2 {
		return fmt.Errorf("%w: need the grading variable and at least one space variable, got %d variables", ErrInvalidProblem, len(pr.Variables))
	}
	seen := make(map[string]bool, len(pr.Variables))
	for _, v := range pr.Variables {
		if !isIdent(v) {
			return fmt.Errorf("%w: bad variable name %q", ErrInvalidProblem, v)
		}
		if seen[v] {
			return fmt.Errorf("%w: variable %q repeated", ErrInvalidProblem, v)
		}
		seen[v] = true
	}
	if _, err := pr.modulus(); err != nil {
		return err
	}
	if strings.TrimSpace(pr.P) == "" {
		return fmt.Errorf("%w: p is missing", ErrInvalidProblem)
	}
	if pr.MaxExponent < 0 {
		return fmt.Errorf("%w: max_exponent = %d", ErrInvalidProblem, pr.MaxExponent)
	}
	if pr.StepLimit != nil && *pr.StepLimit < 0 {
		return fmt.Errorf("%w: step_limit = %d", ErrInvalidProblem, *pr.StepLimit)
	}
	if len(pr.Generators) == 0 {
		return fmt.Errorf("%w: no generators", ErrInvalidProblem)
	}
	return nil
}

// modulus returns n for a zmod:<n> ring and 0 for the integers.
func (pr *Problem) modulus() (uint64, error) {
	switch {
	case pr.Ring == RingIntegers:
		return 0, nil
	case strings.HasPrefix(pr.Ring, RingZModPfx):
		n, err := strconv.ParseUint(strings.TrimPrefix(pr.Ring, RingZModPfx), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: ring %q: %v", ErrInvalidProblem, pr.Ring, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: unknown ring %q, want %q or %q<n>", ErrInvalidProblem, pr.Ring, RingIntegers, RingZModPfx)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		switch {
		case ch == '_', 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z':
		case i > 0 && '0' <= ch && ch <= '9':
		default:
			return false
		}
	}
	return true
}
