// Package tradeoff sweeps envelope estimator configurations over a signal
// with a known envelope and summarises how accuracy grows with the allowed
// delay.
package tradeoff

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/hushchyn-mikhail/cfir/dsp/envelope"
	"github.com/hushchyn-mikhail/cfir/dsp/realtime"
	"github.com/hushchyn-mikhail/cfir/measure/accuracy"
	"gonum.org/v1/gonum/floats"
)

var errLengthMismatch = errors.New("tradeoff: signal and envelope lengths differ")

// Result is the accuracy of one configuration at its own delay.
type Result struct {
	Config envelope.Config
	// Score is the correlation between the delay-aligned estimate and the
	// true envelope; infeasible configurations score 0.
	Score float64
	// SNR is the affine-fit signal-to-noise ratio in dB.
	SNR float64
}

// Sweep evaluates every configuration on x against the true envelope truth.
// Each configuration gets a fresh estimator, so the sweep has no side
// effects on its inputs. Results are returned in the order of configs.
func Sweep(x, truth []float64, configs []envelope.Config, opts ...Option) ([]Result, error) {
	if len(x) != len(truth) {
		return nil, fmt.Errorf("%w: %d != %d", errLengthMismatch, len(x), len(truth))
	}
	cfg := applyOptions(opts)
	chunk := cfg.chunkSize
	if chunk <= 0 {
		chunk = max(len(x), 1)
	}

	results := make([]Result, len(configs))
	errs := make([]error, len(configs))
	jobs := make(chan int, len(configs))
	for i := range configs {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range min(cfg.workers, len(configs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = evaluate(x, truth, configs[i], chunk, cfg)
			}
		}()
	}
	wg.Wait()
	cfg.logger.Infof("evaluated %d configurations on %d samples", len(configs), len(x))

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("tradeoff: %v: %w", configs[i], err)
		}
	}
	return results, nil
}

func evaluate(x, truth []float64, c envelope.Config, chunk int, cfg config) (Result, error) {
	est, err := envelope.New(c, cfg.estOpts...)
	if err != nil {
		return Result{}, err
	}
	y, err := realtime.Emulate(est, x, chunk)
	if err != nil {
		return Result{}, err
	}
	res := Result{Config: c}
	if res.Score, err = accuracy.Score(y, truth, c.Delay); err != nil {
		return Result{}, err
	}
	if res.SNR, err = accuracy.SNR(y, truth, c.Delay); err != nil {
		return Result{}, err
	}
	cfg.logger.Debugf("%v: score %.4f snr %.2f dB", c, res.Score, res.SNR)
	return res, nil
}

// RectifyGrid returns every rectify split of the 2*delay tap budget into an
// even bandpass length 2k and a smoothing length 2*delay-2k, k = 1..delay-1.
func RectifyGrid(band core.Band, sampleRate float64, delays []int) []envelope.Config {
	var out []envelope.Config
	for _, d := range delays {
		for k := 1; k < d; k++ {
			out = append(out, envelope.Config{
				Kind:         envelope.KindRectify,
				Band:         band,
				SampleRate:   sampleRate,
				Delay:        d,
				BandpassTaps: 2 * k,
			})
		}
	}
	return out
}

// CFIRGrid returns one CFIR configuration per delay.
func CFIRGrid(band core.Band, sampleRate float64, delays []int, taps, fftSize int) []envelope.Config {
	out := make([]envelope.Config, 0, len(delays))
	for _, d := range delays {
		out = append(out, envelope.Config{
			Kind:       envelope.KindCFIR,
			Band:       band,
			SampleRate: sampleRate,
			Delay:      d,
			Taps:       taps,
			FFTSize:    fftSize,
		})
	}
	return out
}

// SlidingHilbertGrid returns one sliding-window Hilbert configuration per
// delay.
func SlidingHilbertGrid(band core.Band, sampleRate float64, delays []int, windowSize int) []envelope.Config {
	out := make([]envelope.Config, 0, len(delays))
	for _, d := range delays {
		out = append(out, envelope.Config{
			Kind:       envelope.KindSlidingHilbert,
			Band:       band,
			SampleRate: sampleRate,
			Delay:      d,
			WindowSize: windowSize,
		})
	}
	return out
}

// Frontier keeps the best-scoring result for each (kind, delay) pair,
// sorted by kind and then delay. Ties keep the earlier result.
func Frontier(results []Result) []Result {
	type key struct {
		kind  envelope.Kind
		delay int
	}
	best := make(map[key]int)
	for i, r := range results {
		k := key{r.Config.Kind, r.Config.Delay}
		if j, ok := best[k]; !ok || r.Score > results[j].Score {
			best[k] = i
		}
	}
	out := make([]Result, 0, len(best))
	for _, i := range best {
		out = append(out, results[i])
	}
	slices.SortFunc(out, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(a.Config.Kind, b.Config.Kind),
			cmp.Compare(a.Config.Delay, b.Config.Delay),
		)
	})
	return out
}

// MeanRunningMax summarises a score-versus-delay curve, ordered by
// increasing delay, as the mean of max(scores[:k]) for k = 1..len-1. Higher
// values mean good accuracy is reached at smaller delays. Fewer than two
// scores give NaN.
func MeanRunningMax(scores []float64) float64 {
	if len(scores) < 2 {
		return math.NaN()
	}
	var sum float64
	for k := 1; k < len(scores); k++ {
		sum += floats.Max(scores[:k])
	}
	return sum / float64(len(scores)-1)
}

// Summarize applies [MeanRunningMax] to the frontier of each estimator kind.
func Summarize(results []Result) map[envelope.Kind]float64 {
	byKind := make(map[envelope.Kind][]float64)
	for _, r := range Frontier(results) {
		byKind[r.Config.Kind] = append(byKind[r.Config.Kind], r.Score)
	}
	out := make(map[envelope.Kind]float64, len(byKind))
	for k, scores := range byKind {
		out[k] = MeanRunningMax(scores)
	}
	return out
}
