// Package bandsnr adapts a nominal frequency band to an individual
// recording by maximising the band-to-flank magnitude ratio of its
// spectrum.
package bandsnr

import (
	"errors"
	"fmt"
	"math"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/mjibson/go-dsp/spectral"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/stat"
)

var errShortSignal = errors.New("bandsnr: signal shorter than one Welch segment")

// Option configures [IndividualBand].
type Option func(*config)

type config struct {
	halfWidth  float64
	flankWidth float64
	segment    int
}

// WithHalfWidth sets the half width of candidate bands in Hz. The default
// is half the initial band width.
func WithHalfWidth(hz float64) Option {
	return func(c *config) {
		if hz > 0 {
			c.halfWidth = hz
		}
	}
}

// WithFlankWidth sets the width in Hz of each flank used as the noise
// reference. The default is half the initial band width.
func WithFlankWidth(hz float64) Option {
	return func(c *config) {
		if hz > 0 {
			c.flankWidth = hz
		}
	}
}

// WithSegment sets the Welch segment length in samples. Odd values are
// rounded up. The default is two seconds of signal.
func WithSegment(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.segment = n + n%2
		}
	}
}

// IndividualBand searches every spectral bin inside initial for the band
// centre whose band [f-hw, f+hw] maximises
// (band mean - flank mean) / flank mean of the Welch magnitude spectrum,
// where the flanks are [f-hw-fw, f-hw] and [f+hw, f+hw+fw]. It returns the
// best band and its ratio. If no candidate has a positive ratio, initial is
// returned with ratio 0.
func IndividualBand(x []float64, sampleRate float64, initial core.Band, opts ...Option) (core.Band, float64, error) {
	if err := initial.Validate(sampleRate); err != nil {
		return core.Band{}, 0, fmt.Errorf("bandsnr: %w", err)
	}
	cfg := config{
		halfWidth:  initial.Width() / 2,
		flankWidth: initial.Width() / 2,
		segment:    2 * int(math.Round(sampleRate)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(x) < cfg.segment {
		return core.Band{}, 0, fmt.Errorf("%w: %d < %d", errShortSignal, len(x), cfg.segment)
	}

	freqs, mag := magnitudeSpectrum(x, sampleRate, cfg.segment)

	best, bestSNR := initial, 0.0
	for _, f := range freqs {
		if !initial.Contains(f) {
			continue
		}
		band := core.Band{Low: f - cfg.halfWidth, High: f + cfg.halfWidth}
		if band.Validate(sampleRate) != nil {
			continue
		}
		inBand := mean(freqs, mag, func(v float64) bool { return band.Contains(v) })
		flanks := mean(freqs, mag, func(v float64) bool {
			return (v >= band.Low-cfg.flankWidth && v <= band.Low) ||
				(v >= band.High && v <= band.High+cfg.flankWidth)
		})
		if !(flanks > 0) {
			continue
		}
		if snr := (inBand - flanks) / flanks; snr > bestSNR {
			best, bestSNR = band, snr
		}
	}
	return best, bestSNR, nil
}

// magnitudeSpectrum returns the one-sided Welch magnitude spectrum with 90%
// segment overlap and a Hann window.
func magnitudeSpectrum(x []float64, sampleRate float64, segment int) (freqs, mag []float64) {
	pxx, freqs := spectral.Pwelch(x, sampleRate, &spectral.PwelchOptions{
		NFFT:     segment,
		Window:   window.Hann,
		Noverlap: segment * 9 / 10,
	})
	mag = make([]float64, len(pxx))
	for i, p := range pxx {
		mag[i] = math.Sqrt(p)
	}
	return freqs, mag
}

func mean(freqs, values []float64, keep func(float64) bool) float64 {
	var sel []float64
	for i, f := range freqs {
		if keep(f) {
			sel = append(sel, values[i])
		}
	}
	if len(sel) == 0 {
		return math.NaN()
	}
	return stat.Mean(sel, nil)
}
