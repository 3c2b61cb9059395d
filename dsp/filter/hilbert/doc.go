// Package hilbert computes the non-causal band-limited analytic signal of a
// finite record in the frequency domain.
//
// [Band] zeroes every FFT bin outside [low, high], including the whole
// negative-frequency half, and doubles the inverse transform. The magnitude
// of the result is the band envelope and its argument the band phase. Every
// output sample depends on the whole input, so the transform serves as the
// offline reference for the causal estimators in package envelope and as the
// per-window kernel of the sliding-window estimator.
//
// [Transformer] caches the FFT plan and band mask for repeated transforms of
// equal-length inputs.
package hilbert
