package tradeoff

import (
	"runtime"

	"github.com/hushchyn-mikhail/cfir/dsp/envelope"
	"github.com/pion/logging"
)

// Option configures a [Sweep].
type Option func(*config)

type config struct {
	workers   int
	chunkSize int
	logger    logging.LeveledLogger
	estOpts   []envelope.Option
}

func applyOptions(opts []Option) config {
	cfg := config{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		factory := logging.NewDefaultLoggerFactory()
		factory.DefaultLogLevel = logging.LogLevelWarn
		cfg.logger = factory.NewLogger("tradeoff")
	}
	return cfg
}

// WithWorkers bounds the number of configurations evaluated concurrently.
// The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithChunkSize replays the signal through each estimator in chunks of n
// samples. The default processes the whole signal in one call.
func WithChunkSize(n int) Option {
	return func(c *config) {
		c.chunkSize = n
	}
}

// WithLogger sets the sweep logger.
func WithLogger(l logging.LeveledLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEstimatorOptions passes options to every estimator the sweep builds.
func WithEstimatorOptions(opts ...envelope.Option) Option {
	return func(c *config) {
		c.estOpts = append(c.estOpts, opts...)
	}
}
