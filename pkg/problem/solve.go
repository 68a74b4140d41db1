package problem

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"go.uber.org/zap"

	"ppreduce/pkg/coeff"
	"ppreduce/pkg/encoding"
	"ppreduce/pkg/ideal"
	"ppreduce/pkg/reduce"
	"ppreduce/pkg/sampling"
)

// Solution is the reduced form of a problem.
type Solution struct {
	Name        string   `yaml:"name,omitempty"`
	Generators  []string `yaml:"generators"`
	Fingerprint string   `yaml:"fingerprint"`
	Vanished    []int    `yaml:"vanished,omitempty"`
	Stats       Stats    `yaml:"stats"`
}

// Stats mirrors reduce.Stats for output.
type Stats struct {
	PReductions   int `yaml:"p_reductions"`
	Cancellations int `yaml:"cancellations"`
	Inserts       int `yaml:"inserts"`
	WorklistSteps int `yaml:"worklist_steps"`
	Strata        int `yaml:"strata"`
}

// Solve parses the generators of pr in its ring and runs reduce.Reduce on
// them.
func Solve(pr *Problem, log *zap.Logger) (*Solution, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("problem", pr.Name))
	n, err := pr.modulus()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return solve[*big.Int](pr, coeff.Integers{}, log)
	}
	z, err := coeff.NewZMod(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProblem, err)
	}
	return solve[uint64](pr, z, log)
}

func solve[C any](pr *Problem, r coeff.Ring[C], log *zap.Logger) (*Solution, error) {
	p, err := r.Parse(pr.P)
	if err != nil {
		return nil, fmt.Errorf("%w: p: %v", ErrInvalidProblem, err)
	}
	opts := []reduce.Option{reduce.WithLogger(log)}
	if pr.MaxExponent > 0 {
		opts = append(opts, reduce.WithMaxExponent(pr.MaxExponent))
	}
	if pr.StepLimit != nil {
		opts = append(opts, reduce.WithStepLimit(*pr.StepLimit))
	}
	red, err := reduce.New(r, p, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProblem, err)
	}

	a := ideal.NewArena[C]()
	I := ideal.NewOwned(a)
	defer I.Drop()
	for i, s := range pr.Generators {
		g, err := encoding.ParsePoly(r, pr.Variables, s)
		if err != nil {
			return nil, fmt.Errorf("%w: generator %d: %v", ErrInvalidProblem, i, err)
		}
		I.Append(a.New(g))
	}
	log.Debug("solving",
		zap.String("ring", pr.Ring),
		zap.Int("generators", I.Len()))

	if err := red.Reduce(I); err != nil {
		return nil, err
	}

	fp, err := encoding.Fingerprint(r, I.Polys())
	if err != nil {
		return nil, err
	}
	st := red.Stats()
	sol := &Solution{
		Name:        pr.Name,
		Fingerprint: hex.EncodeToString(fp),
		Vanished:    st.Vanished,
		Stats: Stats{
			PReductions:   st.PReductions,
			Cancellations: st.Cancellations,
			Inserts:       st.Inserts,
			WorklistSteps: st.WorklistSteps,
			Strata:        st.Strata,
		},
	}
	for _, g := range I.Polys() {
		sol.Generators = append(sol.Generators, encoding.FormatPoly(r, pr.Variables, g))
	}
	log.Info("solved",
		zap.Int("generators", len(sol.Generators)),
		zap.Int("vanished", len(st.Vanished)),
		zap.String("fingerprint", sol.Fingerprint))
	return sol, nil
}

// FromSample builds an integer problem from sampling.SampleIdeal.
func FromSample(name string, seed []byte, params sampling.Params) (*Problem, error) {
	gens, err := sampling.SampleIdeal(seed, params)
	if err != nil {
		return nil, err
	}
	vars := VariableNames(params.Vars)
	pr := &Problem{
		Name:      name,
		Variables: vars,
		Ring:      RingIntegers,
		P:         strconv.FormatInt(params.P, 10),
	}
	var zz coeff.Integers
	for _, g := range gens {
		pr.Generators = append(pr.Generators, encoding.FormatPoly[*big.Int](zz, vars, g))
	}
	return pr, nil
}

// VariableNames returns t followed by x, y, z for up to three space
// variables and by x1, x2, ... otherwise.
func VariableNames(n int) []string {
	vars := []string{"t"}
	if n <= 3 {
		return append(vars, []string{"x", "y", "z"}[:n]...)
	}
	for i := 1; i <= n; i++ {
		vars = append(vars, "x"+strconv.Itoa(i))
	}
	return vars
}
