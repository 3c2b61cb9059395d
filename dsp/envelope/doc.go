// Package envelope provides causal estimators of the amplitude envelope and
// instantaneous phase of a narrow frequency band.
//
// Three estimators trade delay against accuracy in different ways:
//
//   - [Rectify]: bandpass FIR, full-wave rectification, smoothing FIR. The
//     two filters share a length budget of 2*delay taps.
//   - [CFIR]: one complex FIR whose response approximates the delayed
//     analytic bandpass directly; its output carries phase as well.
//   - [SlidingHilbert]: recomputes a non-causal band Hilbert transform over
//     a trailing window for every sample and reads it delay samples before
//     the window end. Costly, but simple.
//
// All estimators implement [Estimator]: Apply may be called repeatedly with
// consecutive chunks of one stream, and the concatenated output does not
// depend on how the stream was chunked. An estimator is not safe for
// concurrent use; independent estimators share no state.
//
// [New] builds any of them from a [Config], so parameter sweeps can treat
// the estimator kind as data.
package envelope
