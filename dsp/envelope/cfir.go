package envelope

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/hushchyn-mikhail/cfir/dsp/filter/fir"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

var (
	errCFIRTaps    = errors.New("envelope: CFIR taps must be >= 1")
	errCFIRFFTSize = errors.New("envelope: CFIR FFT size must be >= taps")
	errCFIRWeights = errors.New("envelope: CFIR weights must be non-negative, one per FFT bin")
	errCFIRRank    = errors.New("envelope: CFIR weighted design is underdetermined")
)

// CFIR estimates the analytic signal of a band with a single complex FIR.
// Its magnitude is the envelope and its argument the phase.
type CFIR struct {
	filter *fir.ComplexFilter
	delay  int
}

// NewCFIR designs a complex FIR whose frequency response approximates
// 2*exp(-2*pi*i*f*delay/fs) inside band and zero elsewhere.
//
// By default the taps are the first [DefaultCFIRTaps] samples of the
// inverse DFT of that response on a [DefaultCFIRFFTSize]-point grid. With
// [WithWeights] the taps instead minimize the weighted squared response
// error on the same grid.
func NewCFIR(band core.Band, sampleRate float64, delay int, opts ...Option) (*CFIR, error) {
	cfg := applyOptions(opts)
	coeffs, err := DesignCFIR(band, sampleRate, delay, cfg.taps, cfg.fftSize, cfg.weights)
	if err != nil {
		return nil, err
	}
	return &CFIR{filter: fir.NewComplex(coeffs), delay: delay}, nil
}

// DesignCFIR returns the taps of a CFIR. weights may be nil for the
// unweighted design.
func DesignCFIR(band core.Band, sampleRate float64, delay, taps, fftSize int, weights []float64) ([]complex128, error) {
	if err := band.Validate(sampleRate); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	if taps < 1 {
		return nil, fmt.Errorf("%w: %d", errCFIRTaps, taps)
	}
	if fftSize < taps {
		return nil, fmt.Errorf("%w: %d < %d", errCFIRFFTSize, fftSize, taps)
	}

	target := idealResponse(band, sampleRate, delay, fftSize)
	if weights != nil {
		return weightedDesign(target, taps, weights)
	}

	fft := fourier.NewCmplxFFT(fftSize)
	seq := fft.Sequence(nil, target)
	coeffs := make([]complex128, taps)
	scale := complex(1/float64(fftSize), 0)
	for i := range coeffs {
		coeffs[i] = seq[i] * scale
	}
	return coeffs, nil
}

// idealResponse samples the delayed analytic band response at bins
// k*fs/n for k in [0, n).
func idealResponse(band core.Band, sampleRate float64, delay, n int) []complex128 {
	h := make([]complex128, n)
	for k := range h {
		if !band.Contains(float64(k) * sampleRate / float64(n)) {
			continue
		}
		h[k] = 2 * cmplx.Exp(complex(0, -2*math.Pi*float64(k)*float64(delay)/float64(n)))
	}
	return h
}

// weightedDesign solves min sum_k w[k] |(F b)[k] - target[k]|^2 over the
// first taps columns of the DFT matrix F. The complex problem is split into
// real and imaginary parts so that it can be handed to a real QR solver.
func weightedDesign(target []complex128, taps int, weights []float64) ([]complex128, error) {
	n := len(target)
	if len(weights) != n {
		return nil, fmt.Errorf("%w: got %d weights for %d bins", errCFIRWeights, len(weights), n)
	}
	var rows int
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("%w: %g", errCFIRWeights, w)
		}
		if w > 0 {
			rows += 2
		}
	}
	if rows < 2*taps {
		return nil, fmt.Errorf("%w: %d weighted bins for %d taps", errCFIRRank, rows/2, taps)
	}

	a := mat.NewDense(rows, 2*taps, nil)
	rhs := mat.NewVecDense(rows, nil)
	r := 0
	for k, w := range weights {
		if w == 0 {
			continue
		}
		sw := math.Sqrt(w)
		for j := range taps {
			sin, cos := math.Sincos(2 * math.Pi * float64(k*j%n) / float64(n))
			a.Set(r, j, sw*cos)
			a.Set(r, taps+j, sw*sin)
			a.Set(r+1, j, -sw*sin)
			a.Set(r+1, taps+j, sw*cos)
		}
		rhs.SetVec(r, sw*real(target[k]))
		rhs.SetVec(r+1, sw*imag(target[k]))
		r += 2
	}

	var x mat.VecDense
	if err := x.SolveVec(a, rhs); err != nil {
		return nil, fmt.Errorf("envelope: CFIR weighted design: %w", err)
	}
	coeffs := make([]complex128, taps)
	for j := range coeffs {
		coeffs[j] = complex(x.AtVec(j), x.AtVec(taps+j))
	}
	return coeffs, nil
}

// Apply filters chunk and returns the complex estimate.
func (c *CFIR) Apply(chunk []float64) []complex128 {
	out := make([]complex128, len(chunk))
	c.filter.ProcessBlockTo(out, chunk)
	return out
}

// Reset clears the delay line.
func (c *CFIR) Reset() {
	c.filter.Reset()
}

// Delay returns the design delay in samples.
func (c *CFIR) Delay() int {
	return c.delay
}

// Coefficients returns a copy of the filter taps.
func (c *CFIR) Coefficients() []complex128 {
	return c.filter.Coefficients()
}
