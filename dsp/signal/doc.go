// Package signal generates deterministic test signals for envelope
// estimation: tones, Gaussian noise and amplitude-modulated carriers with a
// known envelope.
package signal
