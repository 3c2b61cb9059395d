// Package design provides FIR coefficient designers for envelope estimation.
//
// [FIRWin2] is a frequency-sampling designer: the desired gain is given as a
// piecewise-linear curve over control points from 0 Hz to Nyquist, sampled
// on a power-of-two grid, inverse-transformed and windowed. [Bandpass] and
// [Lowpass] are the two shapes the envelope estimators need; both treat a
// zero or negative tap count as "no filtering" and return [Identity].
// [NaNFilter] returns coefficients that turn every output sample into NaN,
// which estimators use to signal an infeasible configuration.
package design
