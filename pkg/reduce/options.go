package reduce

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultMaxExponent bounds every t exponent produced by PReduce.
	// It matches a signed 16-bit exponent field.
	DefaultMaxExponent = 1<<15 - 1

	// DefaultStepLimit bounds the number of cancellation and worklist steps
	// of one public call. Zero means unlimited.
	DefaultStepLimit = 1_000_000
)

type options struct {
	logger      *zap.Logger
	maxExponent int
	stepLimit   int
}

// Option configures a Reducer.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:      zap.NewNop(),
		maxExponent: DefaultMaxExponent,
		stepLimit:   DefaultStepLimit,
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithMaxExponent sets the largest t exponent PReduce may produce.
// It panics if n < 1.
func WithMaxExponent(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("reduce: WithMaxExponent(%d): must be positive", n))
	}
	return func(o *options) { o.maxExponent = n }
}

// WithStepLimit sets the step budget of one call; 0 disables the limit.
// It panics if n < 0.
func WithStepLimit(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("reduce: WithStepLimit(%d): must not be negative", n))
	}
	return func(o *options) { o.stepLimit = n }
}
