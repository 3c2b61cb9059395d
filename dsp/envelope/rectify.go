package envelope

import (
	"errors"
	"fmt"
	"math"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/hushchyn-mikhail/cfir/dsp/filter/design"
	"github.com/hushchyn-mikhail/cfir/dsp/filter/fir"
)

// ErrInsufficientTaps reports a [Rectify] configuration whose delay budget
// 2*delay is smaller than the bandpass length.
var ErrInsufficientTaps = errors.New("envelope: insufficient parameters: 2*delay < bandpass taps")

// CheckRectifyParams reports whether a [Rectify] with these parameters can
// produce finite output.
func CheckRectifyParams(bandpassTaps, delay int) error {
	if 2*delay < bandpassTaps {
		return fmt.Errorf("%w (delay=%d, bandpass taps=%d)", ErrInsufficientTaps, delay, bandpassTaps)
	}
	return nil
}

// Rectify estimates the envelope by bandpass filtering, rectifying and
// smoothing. The total FIR length is 2*delay: the smoothing stage gets
// whatever the bandpass stage leaves, so the combined linear-phase group
// delay is approximately delay samples.
type Rectify struct {
	bandpass     *fir.Filter
	smooth       *fir.Filter
	bandpassTaps int
	smoothTaps   int
	delay        int
}

// NewRectify builds a rectify estimator. bandpassTaps == 0 disables the
// bandpass stage.
//
// A delay too small for the bandpass (2*delay < bandpassTaps) does not fail:
// a warning is logged and the estimator returns NaN for every sample, so the
// condition stays visible in downstream results. Use [Rectify.Feasible] or
// [CheckRectifyParams] to test for it explicitly.
func NewRectify(band core.Band, sampleRate float64, bandpassTaps, delay int, opts ...Option) (*Rectify, error) {
	if err := band.Validate(sampleRate); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	if bandpassTaps < 0 {
		return nil, fmt.Errorf("envelope: bandpass taps must be >= 0: %d", bandpassTaps)
	}
	cfg := applyOptions(opts)

	b, err := design.Bandpass(band, sampleRate, bandpassTaps)
	if err != nil {
		return nil, fmt.Errorf("envelope: bandpass design: %w", err)
	}

	cutoff := cfg.smoothCutoff
	if cutoff == 0 {
		cutoff = band.Width()
	}

	smoothTaps := 2*delay - bandpassTaps
	var s []float64
	switch {
	case smoothTaps > 0:
		s, err = design.Lowpass(cutoff, sampleRate, smoothTaps)
		if err != nil {
			return nil, fmt.Errorf("envelope: smoothing design: %w", err)
		}
	case smoothTaps == 0:
		s = design.Identity()
	default:
		cfg.logger.Warnf("%v; rectify output will be NaN", CheckRectifyParams(bandpassTaps, delay))
		s = design.NaNFilter()
	}

	return &Rectify{
		bandpass:     fir.New(b),
		smooth:       fir.New(s),
		bandpassTaps: bandpassTaps,
		smoothTaps:   smoothTaps,
		delay:        delay,
	}, nil
}

// Apply filters chunk through bandpass, rectification and smoothing.
func (r *Rectify) Apply(chunk []float64) []float64 {
	out := make([]float64, len(chunk))
	r.bandpass.ProcessBlockTo(out, chunk)
	for i, v := range out {
		out[i] = math.Abs(v)
	}
	r.smooth.ProcessBlock(out)
	return out
}

// Reset clears both delay lines.
func (r *Rectify) Reset() {
	r.bandpass.Reset()
	r.smooth.Reset()
}

// Delay returns the requested delay in samples.
func (r *Rectify) Delay() int {
	return r.delay
}

// Taps returns the requested stage lengths. smooth is negative for an
// infeasible configuration.
func (r *Rectify) Taps() (bandpass, smooth int) {
	return r.bandpassTaps, r.smoothTaps
}

// TotalTaps returns the FIR length budget 2*delay.
func (r *Rectify) TotalTaps() int {
	return 2 * r.delay
}

// Feasible reports whether the estimator produces finite output.
func (r *Rectify) Feasible() bool {
	return r.smoothTaps >= 0
}
