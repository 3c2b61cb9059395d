package envelope

import (
	"fmt"
	"strings"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
)

// Kind selects an estimator family.
type Kind int

const (
	KindRectify Kind = iota
	KindCFIR
	KindSlidingHilbert
)

var kindNames = [...]string{
	KindRectify:        "rectify",
	KindCFIR:           "cfir",
	KindSlidingHilbert: "hilbert",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses the name returned by [Kind.String]. "sliding-hilbert"
// is accepted as an alias for "hilbert".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectify", "rect":
		return KindRectify, nil
	case "cfir":
		return KindCFIR, nil
	case "hilbert", "sliding-hilbert":
		return KindSlidingHilbert, nil
	}
	return 0, fmt.Errorf("envelope: unknown estimator kind %q", s)
}

// Config describes one estimator. Fields that do not apply to Kind are
// ignored.
type Config struct {
	Kind       Kind
	Band       core.Band
	SampleRate float64
	Delay      int

	// BandpassTaps is the Rectify bandpass length.
	BandpassTaps int
	// SmoothCutoff is the Rectify smoothing cutoff in Hz; 0 uses the band
	// width.
	SmoothCutoff float64

	// Taps and FFTSize size the CFIR design; 0 uses the defaults.
	Taps    int
	FFTSize int

	// WindowSize is the SlidingHilbert window length.
	WindowSize int
}

// String describes the configuration in one line.
func (c Config) String() string {
	switch c.Kind {
	case KindRectify:
		return fmt.Sprintf("rectify delay=%d bandpass=%d", c.Delay, c.BandpassTaps)
	case KindCFIR:
		return fmt.Sprintf("cfir delay=%d taps=%d", c.Delay, c.taps())
	case KindSlidingHilbert:
		return fmt.Sprintf("hilbert delay=%d window=%d", c.Delay, c.WindowSize)
	}
	return c.Kind.String()
}

func (c Config) taps() int {
	if c.Taps > 0 {
		return c.Taps
	}
	return DefaultCFIRTaps
}

// New builds the envelope estimator described by cfg. Analytic estimators
// are wrapped with [NewEnvelope]. Options given here are applied after
// those derived from cfg.
func New(cfg Config, opts ...Option) (Estimator[float64], error) {
	switch cfg.Kind {
	case KindRectify:
		all := append([]Option{WithSmoothCutoff(cfg.SmoothCutoff)}, opts...)
		e, err := NewRectify(cfg.Band, cfg.SampleRate, cfg.BandpassTaps, cfg.Delay, all...)
		if err != nil {
			return nil, err
		}
		return e, nil
	case KindCFIR:
		all := append([]Option{WithTaps(cfg.Taps), WithFFTSize(cfg.FFTSize)}, opts...)
		e, err := NewCFIR(cfg.Band, cfg.SampleRate, cfg.Delay, all...)
		if err != nil {
			return nil, err
		}
		return NewEnvelope(e), nil
	case KindSlidingHilbert:
		e, err := NewSlidingHilbert(cfg.WindowSize, cfg.SampleRate, cfg.Band, cfg.Delay)
		if err != nil {
			return nil, err
		}
		return NewEnvelope(e), nil
	}
	return nil, fmt.Errorf("envelope: unknown estimator kind %v", cfg.Kind)
}

// NewAnalytic builds the analytic-signal estimator described by cfg. Only
// [KindCFIR] and [KindSlidingHilbert] produce phase.
func NewAnalytic(cfg Config, opts ...Option) (Estimator[complex128], error) {
	switch cfg.Kind {
	case KindCFIR:
		all := append([]Option{WithTaps(cfg.Taps), WithFFTSize(cfg.FFTSize)}, opts...)
		e, err := NewCFIR(cfg.Band, cfg.SampleRate, cfg.Delay, all...)
		if err != nil {
			return nil, err
		}
		return e, nil
	case KindSlidingHilbert:
		e, err := NewSlidingHilbert(cfg.WindowSize, cfg.SampleRate, cfg.Band, cfg.Delay)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("envelope: %v does not estimate phase", cfg.Kind)
}
