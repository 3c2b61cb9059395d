package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise generation.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with
// signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// GaussianNoise generates zero-mean Gaussian noise with standard deviation
// sigma. Equal seeds give equal noise.
func (g *Generator) GaussianNoise(sigma float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("noise sigma must be >= 0: %f", sigma)
	}
	out := make([]float64, samples)
	if sigma == 0 {
		return out, nil
	}
	dist := distuv.Normal{
		Mu:    0,
		Sigma: sigma,
		Src:   rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15),
	}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

// ModulatedChirp generates a narrow-band test signal inside band and its
// true envelope.
//
// The carrier sits at the band centre. Its amplitude follows
// 1 + 0.8*sin(phi(t)), where the modulation frequency sweeps linearly from
// zero to half the band width over the signal, so every spectral line stays
// within the band and the estimators see both slow and fast envelope changes.
func (g *Generator) ModulatedChirp(band core.Band, seconds float64) (x, envelope []float64, err error) {
	fs := g.cfg.SampleRate
	if err := band.Validate(fs); err != nil {
		return nil, nil, fmt.Errorf("chirp: %w", err)
	}
	samples := int(math.Round(seconds * fs))
	if samples <= 0 {
		return nil, nil, fmt.Errorf("chirp duration must be > 0: %g s", seconds)
	}

	maxMod := band.Width() / 2
	sweep := maxMod / (2 * seconds)
	carrier := 2 * math.Pi * band.Center()

	x = make([]float64, samples)
	envelope = make([]float64, samples)
	for i := range x {
		t := float64(i) / fs
		env := 1 + 0.8*math.Sin(2*math.Pi*sweep*t*t)
		envelope[i] = env
		x[i] = env * math.Cos(carrier*t)
	}
	return x, envelope, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
