package envelope

import (
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// Sample is the output element type of an [Estimator].
type Sample interface {
	~float64 | ~complex128
}

// Estimator is a stateful causal band estimator.
type Estimator[T Sample] interface {
	// Apply processes the next chunk of the stream and returns one output
	// per input sample. State carries over to the next call.
	Apply(chunk []float64) []T
	// Reset clears all internal state so a new stream can be processed.
	Reset()
	// Delay returns the nominal delay of the output in samples.
	Delay() int
}

// Magnitude returns |v| for each value.
func Magnitude(values []complex128) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	re := make([]float64, len(values))
	im := make([]float64, len(values))
	for i, v := range values {
		re[i], im[i] = real(v), imag(v)
	}
	out := make([]float64, len(values))
	vecmath.Magnitude(out, re, im)
	return out
}

// Phase returns arg(v) in radians for each value.
func Phase(values []complex128) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = cmplx.Phase(v)
	}
	return out
}

// NewEnvelope adapts an analytic-signal estimator into an envelope
// estimator that returns the magnitude of each output.
func NewEnvelope(e Estimator[complex128]) Estimator[float64] {
	return &magnitudeEstimator{inner: e}
}

type magnitudeEstimator struct {
	inner Estimator[complex128]
}

func (m *magnitudeEstimator) Apply(chunk []float64) []float64 {
	return Magnitude(m.inner.Apply(chunk))
}

func (m *magnitudeEstimator) Reset() {
	m.inner.Reset()
}

func (m *magnitudeEstimator) Delay() int {
	return m.inner.Delay()
}
