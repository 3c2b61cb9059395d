package envelope

import (
	"fmt"

	"github.com/hushchyn-mikhail/cfir/dsp/buffer"
	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/hushchyn-mikhail/cfir/dsp/filter/hilbert"
)

// SlidingHilbert applies the non-causal band Hilbert transform to the last
// windowSize samples each time a sample arrives and emits the transform
// value delay samples before the window end.
type SlidingHilbert struct {
	window *buffer.Sliding[float64]
	tr     *hilbert.Transformer
	frame  []complex128
	index  int
	delay  int
}

// NewSlidingHilbert builds a sliding-window Hilbert estimator. delay is
// clamped into [0, windowSize-1] when picking the output index.
func NewSlidingHilbert(windowSize int, sampleRate float64, band core.Band, delay int, opts ...hilbert.Option) (*SlidingHilbert, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("envelope: window size must be >= 1: %d", windowSize)
	}
	tr, err := hilbert.NewTransformer(windowSize, sampleRate, band, opts...)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	return &SlidingHilbert{
		window: buffer.New[float64](windowSize),
		tr:     tr,
		frame:  make([]complex128, windowSize),
		index:  core.ClampIndex(windowSize-1-delay, windowSize),
		delay:  delay,
	}, nil
}

// Apply pushes the chunk one sample at a time, so the result is the same
// for any chunking of the stream.
func (s *SlidingHilbert) Apply(chunk []float64) []complex128 {
	out := make([]complex128, len(chunk))
	for i, x := range chunk {
		w := s.window.Push(x)
		// The window length always matches the transformer.
		s.frame, _ = s.tr.Transform(s.frame, w)
		out[i] = s.frame[s.index]
	}
	return out
}

// Reset zeroes the window.
func (s *SlidingHilbert) Reset() {
	s.window.Reset()
}

// Delay returns the requested delay in samples.
func (s *SlidingHilbert) Delay() int {
	return s.delay
}

// WindowSize returns the transform window length.
func (s *SlidingHilbert) WindowSize() int {
	return s.window.Len()
}
