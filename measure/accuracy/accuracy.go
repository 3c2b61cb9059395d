// Package accuracy scores a delayed envelope estimate against the true
// envelope.
//
// Every estimator output lags the signal by its nominal delay. The
// functions here shift the estimate back by a given delay before
// comparing, so scores at different delays can be plotted as a
// delay/accuracy curve.
package accuracy

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrLengthMismatch is returned when estimate and truth differ in length.
	ErrLengthMismatch = errors.New("accuracy: estimate and truth lengths differ")
	// ErrDelayTooLarge is returned when |delay| leaves no overlapping samples.
	ErrDelayTooLarge = errors.New("accuracy: delay must be smaller than the signal length")
)

// Align returns the overlapping parts of estimate and truth after shifting
// the estimate back by delay samples: for delay >= 0, estimate[delay:] and
// truth[:len-delay]; for delay < 0, estimate[:len+delay] and truth[-delay:].
// The returned slices alias the inputs.
func Align[T any](estimate, truth []T, delay int) ([]T, []T, error) {
	n := len(estimate)
	if n != len(truth) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, n, len(truth))
	}
	if delay >= n || -delay >= n {
		return nil, nil, fmt.Errorf("%w: |%d| >= %d", ErrDelayTooLarge, delay, n)
	}
	if delay >= 0 {
		return estimate[delay:], truth[:n-delay], nil
	}
	return estimate[:n+delay], truth[-delay:], nil
}

// Score returns the Pearson correlation between the aligned estimate and
// truth. An undefined correlation (constant or non-finite input) scores 0.
func Score(estimate, truth []float64, delay int) (float64, error) {
	e, tr, err := Align(estimate, truth, delay)
	if err != nil {
		return 0, err
	}
	if len(e) < 2 {
		return 0, nil
	}
	r := stat.Correlation(e, tr, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, nil
	}
	return r, nil
}

// SNR returns, in dB, the ratio of the truth variance to the variance of
// the residual after the best affine fit truth ~ a + b*estimate. Degenerate
// inputs give 0; a perfect fit gives +Inf.
func SNR(estimate, truth []float64, delay int) (float64, error) {
	e, tr, err := Align(estimate, truth, delay)
	if err != nil {
		return 0, err
	}
	if len(e) < 2 {
		return 0, nil
	}
	varTruth := stat.Variance(tr, nil)
	varEst := stat.Variance(e, nil)
	if !(varTruth > 0) || !(varEst > 0) || math.IsInf(varTruth, 0) || math.IsInf(varEst, 0) {
		return 0, nil
	}

	_, slope := stat.LinearRegression(e, tr, nil, false)
	// The intercept does not change the residual variance.
	residual := make([]float64, len(e))
	vecmath.ScaleBlock(residual, e, -slope)
	vecmath.AddBlockInPlace(residual, tr)

	varRes := stat.Variance(residual, nil)
	if varRes <= varTruth*1e-24 {
		return math.Inf(1), nil
	}
	return core.LinearPowerToDB(varTruth / varRes), nil
}

// DelayScore is the accuracy of an estimate at one delay.
type DelayScore struct {
	Delay int
	Score float64
}

// Curve scores estimate against truth at each delay.
func Curve(estimate, truth []float64, delays []int) ([]DelayScore, error) {
	out := make([]DelayScore, 0, len(delays))
	for _, d := range delays {
		s, err := Score(estimate, truth, d)
		if err != nil {
			return nil, err
		}
		out = append(out, DelayScore{Delay: d, Score: s})
	}
	return out, nil
}

// Best returns the highest-scoring entry of curve, preferring the smaller
// delay on ties. ok is false for an empty curve.
func Best(curve []DelayScore) (best DelayScore, ok bool) {
	for i, ds := range curve {
		if i == 0 || ds.Score > best.Score || (ds.Score == best.Score && ds.Delay < best.Delay) {
			best = ds
		}
	}
	return best, len(curve) > 0
}
