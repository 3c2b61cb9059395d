// Package fir provides direct-form FIR filter runtimes with persistent
// delay-line state.
//
// A [Filter] applies real coefficients to a real stream; a [ComplexFilter]
// applies complex coefficients to a real stream and yields a complex
// (analytic) stream. Both keep their delay line across calls, so feeding a
// signal in chunks of any size produces the same output as a single call on
// the whole signal.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package fir
