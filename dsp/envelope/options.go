package envelope

import (
	"github.com/pion/logging"
)

const (
	// DefaultCFIRTaps is the default complex FIR length.
	DefaultCFIRTaps = 500
	// DefaultCFIRFFTSize is the default design-time frequency resolution.
	DefaultCFIRFFTSize = 2000
)

// Option configures estimator construction. Options that do not apply to
// an estimator are ignored by it.
type Option func(*config)

type config struct {
	smoothCutoff float64
	taps         int
	fftSize      int
	weights      []float64
	logger       logging.LeveledLogger
}

func applyOptions(opts []Option) config {
	cfg := config{
		taps:    DefaultCFIRTaps,
		fftSize: DefaultCFIRFFTSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = newDefaultLogger()
	}
	return cfg
}

// WithSmoothCutoff sets the [Rectify] smoothing lowpass cutoff in Hz. The
// default is the band width.
func WithSmoothCutoff(hz float64) Option {
	return func(c *config) {
		if hz > 0 {
			c.smoothCutoff = hz
		}
	}
}

// WithTaps sets the [CFIR] filter length.
func WithTaps(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.taps = n
		}
	}
}

// WithFFTSize sets the number of frequency bins used to design a [CFIR].
func WithFFTSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.fftSize = n
		}
	}
}

// WithWeights switches [CFIR] design to weighted least squares with one
// non-negative weight per design bin. The slice is copied.
func WithWeights(w []float64) Option {
	return func(c *config) {
		c.weights = append([]float64(nil), w...)
	}
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l logging.LeveledLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newDefaultLogger() logging.LeveledLogger {
	factory := logging.NewDefaultLoggerFactory()
	factory.DefaultLogLevel = logging.LogLevelWarn
	return factory.NewLogger("envelope")
}
