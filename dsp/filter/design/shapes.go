package design

import (
	"fmt"
	"math"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
)

// Identity returns the pass-through filter [1, 0].
func Identity() []float64 {
	return []float64{1, 0}
}

// NaNFilter returns [NaN, 0]. Every output sample of a FIR filter with these
// coefficients is NaN regardless of its input.
func NaNFilter() []float64 {
	return []float64{math.NaN(), 0}
}

// Bandpass designs a numTaps FIR bandpass with unity gain inside band and
// zero gain outside, with ideal edges at band.Low and band.High. numTaps <= 0
// returns [Identity].
func Bandpass(band core.Band, sampleRate float64, numTaps int, opts ...Option) ([]float64, error) {
	if numTaps <= 0 {
		return Identity(), nil
	}
	if err := band.Validate(sampleRate); err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	nyq := sampleRate / 2
	freq := []float64{0, band.Low, band.Low, band.High, band.High, nyq}
	gain := []float64{0, 0, 1, 1, 0, 0}
	return FIRWin2(numTaps, freq, gain, sampleRate, opts...)
}

// Lowpass designs a numTaps FIR lowpass with unity gain up to cutoff and zero
// gain above. numTaps <= 0 returns [Identity].
func Lowpass(cutoff, sampleRate float64, numTaps int, opts ...Option) ([]float64, error) {
	if numTaps <= 0 {
		return Identity(), nil
	}
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	nyq := sampleRate / 2
	if !(cutoff > 0 && cutoff < nyq) {
		return nil, fmt.Errorf("design: lowpass cutoff must be in (0, %g): %g", nyq, cutoff)
	}
	freq := []float64{0, cutoff, cutoff, nyq}
	gain := []float64{1, 1, 0, 0}
	return FIRWin2(numTaps, freq, gain, sampleRate, opts...)
}
