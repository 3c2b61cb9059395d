package fir

import (
	"math"
	"math/cmplx"
)

// ComplexFilter is a FIR filter with complex coefficients driven by a real
// input stream. Its output is complex.
type ComplexFilter struct {
	coeffs []complex128
	delay  []float64
	pos    int
}

// NewComplex creates a complex-coefficient FIR filter. The coefficients are
// copied.
func NewComplex(coeffs []complex128) *ComplexFilter {
	c := make([]complex128, len(coeffs))
	copy(c, coeffs)
	return &ComplexFilter{
		coeffs: c,
		delay:  make([]float64, len(coeffs)),
	}
}

// ProcessSample filters one real sample and returns the complex output.
func (f *ComplexFilter) ProcessSample(x float64) complex128 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}
	f.delay[f.pos] = x
	var re, im float64
	p := f.pos
	for k := range n {
		d := f.delay[p]
		re += real(f.coeffs[k]) * d
		im += imag(f.coeffs[k]) * d
		p--
		if p < 0 {
			p = n - 1
		}
	}
	f.pos++
	if f.pos >= n {
		f.pos = 0
	}
	return complex(re, im)
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
func (f *ComplexFilter) ProcessBlockTo(dst []complex128, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (f *ComplexFilter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Len returns the number of taps.
func (f *ComplexFilter) Len() int {
	return len(f.coeffs)
}

// Coefficients returns a copy of the filter coefficients.
func (f *ComplexFilter) Coefficients() []complex128 {
	c := make([]complex128, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response at freqHz. Unlike a real
// filter the response is not conjugate-symmetric, so negative frequencies
// are meaningful.
func (f *ComplexFilter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += c * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}
