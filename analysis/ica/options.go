package ica

import "go.uber.org/zap"

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithParallel runs the voltage and capacity chains in separate goroutines.
// It overrides the Parallel field of the configuration.
func WithParallel(enabled bool) Option {
	return func(p *Pipeline) {
		p.parallel = enabled
	}
}
