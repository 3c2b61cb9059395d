package hilbert

import (
	"errors"
	"fmt"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	errEmptyInput   = errors.New("hilbert: input must not be empty")
	errInputLength  = errors.New("hilbert: input length does not match transformer length")
	errShortFFTSize = errors.New("hilbert: FFT size must be >= input length")
)

// Option configures a band Hilbert [Transformer].
type Option func(*bandConfig)

type bandConfig struct {
	fftSize int
}

// WithFFTSize zero-pads the input to n points before the transform. n must
// not be smaller than the input length; n <= 0 keeps the input length.
func WithFFTSize(n int) Option {
	return func(c *bandConfig) {
		c.fftSize = n
	}
}

// Transformer computes the non-causal band-limited analytic signal of
// fixed-length inputs. It caches the FFT plan, the band mask and scratch
// buffers, so it is not safe for concurrent use.
type Transformer struct {
	length int
	fft    *fourier.CmplxFFT
	keep   []bool
	work   []complex128
	bins   []complex128
}

// NewTransformer prepares a transformer for inputs of the given length.
func NewTransformer(length int, sampleRate float64, band core.Band, opts ...Option) (*Transformer, error) {
	if length <= 0 {
		return nil, errEmptyInput
	}
	if err := band.Validate(sampleRate); err != nil {
		return nil, fmt.Errorf("hilbert: %w", err)
	}

	cfg := bandConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	n := cfg.fftSize
	if n <= 0 {
		n = length
	}
	if n < length {
		return nil, fmt.Errorf("%w: %d < %d", errShortFFTSize, n, length)
	}

	keep := make([]bool, n)
	for k := range keep {
		keep[k] = band.Contains(binFrequency(k, n, sampleRate))
	}

	return &Transformer{
		length: length,
		fft:    fourier.NewCmplxFFT(n),
		keep:   keep,
		work:   make([]complex128, n),
		bins:   make([]complex128, n),
	}, nil
}

// Len returns the input length the transformer accepts.
func (t *Transformer) Len() int {
	return t.length
}

// FFTSize returns the transform size.
func (t *Transformer) FFTSize() int {
	return len(t.work)
}

// Transform writes the analytic narrow-band signal of x into dst and returns
// it. dst is reallocated when shorter than x.
//
// Every bin whose signed frequency lies outside [low, high] is zeroed, which
// also removes the whole negative-frequency half; the inverse transform is
// doubled to restore the analytic amplitude.
func (t *Transformer) Transform(dst []complex128, x []float64) ([]complex128, error) {
	if len(x) != t.length {
		return nil, fmt.Errorf("%w: %d != %d", errInputLength, len(x), t.length)
	}
	if cap(dst) < len(x) {
		dst = make([]complex128, len(x))
	}
	dst = dst[:len(x)]

	for i, v := range x {
		t.work[i] = complex(v, 0)
	}
	clear(t.work[len(x):])

	t.fft.Coefficients(t.bins, t.work)
	for k, keep := range t.keep {
		if !keep {
			t.bins[k] = 0
		}
	}
	t.fft.Sequence(t.work, t.bins)

	scale := complex(2/float64(len(t.work)), 0)
	for i := range dst {
		dst[i] = t.work[i] * scale
	}
	return dst, nil
}

// Band returns the non-causal band-limited analytic signal of x. It is the
// offline reference for the causal estimators: every output sample depends
// on the whole input.
func Band(x []float64, sampleRate float64, band core.Band, opts ...Option) ([]complex128, error) {
	t, err := NewTransformer(len(x), sampleRate, band, opts...)
	if err != nil {
		return nil, err
	}
	return t.Transform(nil, x)
}

// binFrequency returns the signed centre frequency of FFT bin k for an
// n-point transform: non-negative for k < (n+1)/2, negative above.
func binFrequency(k, n int, sampleRate float64) float64 {
	if k < (n+1)/2 {
		return float64(k) * sampleRate / float64(n)
	}
	return float64(k-n) * sampleRate / float64(n)
}
