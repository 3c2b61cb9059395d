package design

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/window"
)

var (
	errTooFewTaps         = errors.New("design: number of taps must be >= 1")
	errLengthMismatch     = errors.New("design: freq and gain must have the same length")
	errTooFewPoints       = errors.New("design: at least two control points are required")
	errFreqEndpoints      = errors.New("design: freq must start at 0 and end at sampleRate/2")
	errFreqOrder          = errors.New("design: freq must be non-decreasing")
	errFreqTriple         = errors.New("design: a frequency may not occur more than twice")
	errFreqEdgeDuplicate  = errors.New("design: 0 Hz and Nyquist may not be duplicated")
	errNyquistGainEvenTap = errors.New("design: an even number of taps requires zero gain at Nyquist")
)

// Option configures [FIRWin2].
type Option func(*config)

type config struct {
	window func(int) []float64
}

func defaultConfig() config {
	return config{window: window.Hamming}
}

// WithWindow replaces the default symmetric Hamming window. fn must return a
// slice of the requested length.
func WithWindow(fn func(int) []float64) Option {
	return func(c *config) {
		if fn != nil {
			c.window = fn
		}
	}
}

// FIRWin2 designs a linear-phase FIR filter with numTaps coefficients by
// frequency sampling.
//
// freq and gain describe the desired amplitude response as control points
// in Hz; freq must start at 0, end at sampleRate/2 and be non-decreasing. A
// frequency listed twice marks a discontinuity in the gain. The response is
// interpolated on 1+2^ceil(log2(numTaps)) uniformly spaced points, delayed
// by (numTaps-1)/2 samples, inverse-transformed and multiplied by the
// window.
func FIRWin2(numTaps int, freq, gain []float64, sampleRate float64, opts ...Option) ([]float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	nyq := sampleRate / 2
	pts, err := controlPoints(numTaps, freq, gain, nyq)
	if err != nil {
		return nil, err
	}

	nFreqs := 1 + nextPowerOf2(numTaps)
	fftSize := 2 * (nFreqs - 1)

	spectrum := make([]complex128, fftSize)
	for k := range nFreqs {
		x := nyq * float64(k) / float64(nFreqs-1)
		g := interp(x, pts, gain)
		phase := -float64(numTaps-1) / 2 * math.Pi * x / nyq
		spectrum[k] = complex(g, 0) * cmplx.Exp(complex(0, phase))
	}
	// Inverse real FFT: DC and Nyquist bins are real, the upper half mirrors
	// the lower half.
	spectrum[0] = complex(real(spectrum[0]), 0)
	spectrum[nFreqs-1] = complex(real(spectrum[nFreqs-1]), 0)
	for k := 1; k < nFreqs-1; k++ {
		spectrum[fftSize-k] = cmplx.Conj(spectrum[k])
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("design: failed to create FFT plan: %w", err)
	}
	impulse := make([]complex128, fftSize)
	if err := plan.Inverse(impulse, spectrum); err != nil {
		return nil, fmt.Errorf("design: inverse FFT failed: %w", err)
	}

	coeffs := make([]float64, numTaps)
	for i := range coeffs {
		coeffs[i] = real(impulse[i])
	}

	if numTaps == 1 {
		return coeffs, nil
	}
	win := cfg.window(numTaps)
	if len(win) != numTaps {
		return nil, fmt.Errorf("design: window returned %d values, want %d", len(win), numTaps)
	}
	vecmath.MulBlockInPlace(coeffs, win)

	return coeffs, nil
}

// controlPoints validates the control points and splits duplicated
// frequencies by ±eps*nyq so that interpolation sees a steep ramp.
func controlPoints(numTaps int, freq, gain []float64, nyq float64) ([]float64, error) {
	if numTaps < 1 {
		return nil, fmt.Errorf("%w: %d", errTooFewTaps, numTaps)
	}
	if len(freq) != len(gain) {
		return nil, fmt.Errorf("%w: %d vs %d", errLengthMismatch, len(freq), len(gain))
	}
	n := len(freq)
	if n < 2 {
		return nil, errTooFewPoints
	}
	if freq[0] != 0 || freq[n-1] != nyq {
		return nil, errFreqEndpoints
	}
	for i := 1; i < n; i++ {
		if freq[i] < freq[i-1] {
			return nil, errFreqOrder
		}
		if i >= 2 && freq[i] == freq[i-2] {
			return nil, errFreqTriple
		}
	}
	if freq[1] == 0 || freq[n-2] == nyq {
		return nil, errFreqEdgeDuplicate
	}
	if numTaps%2 == 0 && gain[n-1] != 0 {
		return nil, errNyquistGainEvenTap
	}

	pts := make([]float64, n)
	copy(pts, freq)
	eps := 2.220446049250313e-16 * nyq
	for k := 0; k < n-1; k++ {
		if pts[k] == pts[k+1] {
			pts[k] -= eps
			pts[k+1] += eps
		}
	}
	return pts, nil
}

// interp evaluates the piecewise-linear curve through (xp, fp) at x. xp is
// non-decreasing and spans [0, nyq].
func interp(x float64, xp, fp []float64) float64 {
	if x <= xp[0] {
		return fp[0]
	}
	last := len(xp) - 1
	if x >= xp[last] {
		return fp[last]
	}
	for j := range last {
		if x <= xp[j+1] {
			span := xp[j+1] - xp[j]
			if span <= 0 {
				return fp[j+1]
			}
			t := (x - xp[j]) / span
			return fp[j] + t*(fp[j+1]-fp[j])
		}
	}
	return fp[last]
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
