// Command envtradeoff compares causal envelope estimators on a synthetic
// band-limited signal and prints their delay/accuracy frontier.
//
// Usage:
//
//	envtradeoff [flags]
//
// Examples:
//
//	envtradeoff
//	envtradeoff -delays 20,60,100,140 -kinds rectify,cfir
//	envtradeoff -low 9 -high 13 -noise 0.5 -chunk 1
//	envtradeoff -individual -v
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/hushchyn-mikhail/cfir/dsp/envelope"
	"github.com/hushchyn-mikhail/cfir/dsp/signal"
	"github.com/hushchyn-mikhail/cfir/measure/bandsnr"
	"github.com/hushchyn-mikhail/cfir/measure/tradeoff"
	"github.com/pion/logging"
)

type options struct {
	sampleRate float64
	band       core.Band
	seconds    float64
	noise      float64
	seed       uint64
	delays     []int
	kinds      []envelope.Kind
	cfirTaps   int
	cfirFFT    int
	window     int
	chunk      int
	workers    int
	individual bool
	verbose    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	factory := logging.NewDefaultLoggerFactory()
	factory.Writer = stderr
	factory.DefaultLogLevel = logging.LogLevelWarn
	if opts.verbose {
		factory.DefaultLogLevel = logging.LogLevelDebug
	}
	log := factory.NewLogger("envtradeoff")

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(opts.sampleRate)},
		signal.WithSeed(opts.seed),
	)
	x, truth, err := gen.ModulatedChirp(opts.band, opts.seconds)
	if err != nil {
		return err
	}
	noise, err := gen.GaussianNoise(opts.noise, len(x))
	if err != nil {
		return err
	}
	for i := range x {
		x[i] += noise[i]
	}

	band := opts.band
	if opts.individual {
		b, snr, err := bandsnr.IndividualBand(x, opts.sampleRate, band)
		if err != nil {
			return err
		}
		log.Infof("individual band %v (snr %.2f)", b, snr)
		band = b
	}

	var configs []envelope.Config
	for _, k := range opts.kinds {
		switch k {
		case envelope.KindRectify:
			configs = append(configs, tradeoff.RectifyGrid(band, opts.sampleRate, opts.delays)...)
		case envelope.KindCFIR:
			configs = append(configs, tradeoff.CFIRGrid(band, opts.sampleRate, opts.delays, opts.cfirTaps, opts.cfirFFT)...)
		case envelope.KindSlidingHilbert:
			configs = append(configs, tradeoff.SlidingHilbertGrid(band, opts.sampleRate, opts.delays, opts.window)...)
		}
	}
	log.Debugf("sweeping %d configurations", len(configs))

	results, err := tradeoff.Sweep(x, truth, configs,
		tradeoff.WithWorkers(opts.workers),
		tradeoff.WithChunkSize(opts.chunk),
		tradeoff.WithLogger(factory.NewLogger("tradeoff")),
		tradeoff.WithEstimatorOptions(envelope.WithLogger(factory.NewLogger("envelope"))),
	)
	if err != nil {
		return err
	}

	printFrontier(stdout, band, tradeoff.Frontier(results), tradeoff.Summarize(results), opts.kinds)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("envtradeoff", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.Float64Var(&o.sampleRate, "fs", 500, "sample rate in Hz")
	fs.Float64Var(&o.band.Low, "low", 8, "band lower edge in Hz")
	fs.Float64Var(&o.band.High, "high", 12, "band upper edge in Hz")
	fs.Float64Var(&o.seconds, "seconds", 20, "signal duration in seconds")
	fs.Float64Var(&o.noise, "noise", 0.2, "Gaussian noise standard deviation")
	fs.Uint64Var(&o.seed, "seed", 1, "noise seed")
	delays := fs.String("delays", "20,120,220", "comma-separated delays in samples")
	kinds := fs.String("kinds", "rectify,cfir,hilbert", "comma-separated estimator kinds")
	fs.IntVar(&o.cfirTaps, "cfir-taps", envelope.DefaultCFIRTaps, "CFIR filter length")
	fs.IntVar(&o.cfirFFT, "cfir-fft", envelope.DefaultCFIRFFTSize, "CFIR design FFT size")
	fs.IntVar(&o.window, "window", 250, "sliding Hilbert window length")
	fs.IntVar(&o.chunk, "chunk", 0, "replay chunk size (0 = whole signal)")
	fs.IntVar(&o.workers, "workers", 0, "concurrent configurations (0 = GOMAXPROCS)")
	fs.BoolVar(&o.individual, "individual", false, "adapt the band to the signal spectrum first")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: envtradeoff [flags]\n\n")
		fmt.Fprintf(stderr, "Compares causal envelope estimators on a synthetic signal.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	var err error
	if o.delays, err = parseDelays(*delays); err != nil {
		return options{}, err
	}
	if o.kinds, err = parseKinds(*kinds); err != nil {
		return options{}, err
	}
	return o, nil
}

func parseDelays(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid delay %q: %w", f, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("delay must be >= 0: %d", d)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no delays given")
	}
	return out, nil
}

func parseKinds(s string) ([]envelope.Kind, error) {
	var out []envelope.Kind
	seen := make(map[envelope.Kind]bool)
	for _, f := range strings.Split(s, ",") {
		if strings.TrimSpace(f) == "" {
			continue
		}
		k, err := envelope.ParseKind(f)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no estimator kinds given")
	}
	return out, nil
}

func printFrontier(w io.Writer, band core.Band, frontier []tradeoff.Result, summary map[envelope.Kind]float64, kinds []envelope.Kind) {
	fmt.Fprintf(w, "band %v\n\n", band)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tDELAY\tCONFIG\tCORR\tSNR dB")
	for _, r := range frontier {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.4f\t%.2f\n", r.Config.Kind, r.Config.Delay, r.Config, r.Score, r.SNR)
	}
	tw.Flush()

	fmt.Fprintln(w)
	for _, k := range kinds {
		if s, ok := summary[k]; ok {
			fmt.Fprintf(w, "%-8s mean running max %.4f\n", k, s)
		}
	}
}
