package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("sample rate must be finite and > 0")
	// ErrInvalidBand is returned when a band violates 0 < low < high < nyquist.
	ErrInvalidBand = errors.New("band must satisfy 0 < low < high < sampleRate/2")
)

// Band is a frequency interval [Low, High] in Hz.
type Band struct {
	Low  float64
	High float64
}

// Width returns High - Low.
func (b Band) Width() float64 {
	return b.High - b.Low
}

// Center returns the arithmetic centre frequency.
func (b Band) Center() float64 {
	return (b.Low + b.High) / 2
}

// Contains reports whether freqHz lies inside the closed band.
func (b Band) Contains(freqHz float64) bool {
	return freqHz >= b.Low && freqHz <= b.High
}

// String formats the band as "[low, high] Hz".
func (b Band) String() string {
	return fmt.Sprintf("[%g, %g] Hz", b.Low, b.High)
}

// Validate checks the band against the Nyquist limit of sampleRate.
func (b Band) Validate(sampleRate float64) error {
	if err := ValidateSampleRate(sampleRate); err != nil {
		return err
	}
	if !IsFinite(b.Low) || !IsFinite(b.High) || b.Low <= 0 || b.Low >= b.High || b.High >= sampleRate/2 {
		return fmt.Errorf("%w: %s at %g Hz", ErrInvalidBand, b, sampleRate)
	}
	return nil
}

// ValidateSampleRate checks that sampleRate is usable.
func ValidateSampleRate(sampleRate float64) error {
	if !IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}
