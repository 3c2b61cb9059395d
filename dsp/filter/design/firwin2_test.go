package design

import (
	"errors"
	"math"
	"testing"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/hushchyn-mikhail/cfir/dsp/filter/fir"
)

func TestFIRWin2_LinearPhaseSymmetry(t *testing.T) {
	for _, taps := range []int{1, 2, 31, 80, 81} {
		h, err := FIRWin2(taps, []float64{0, 40, 40, 250}, []float64{1, 1, 0, 0}, 500)
		if err != nil {
			t.Fatalf("taps=%d: %v", taps, err)
		}
		if len(h) != taps {
			t.Fatalf("taps=%d: len = %d", taps, len(h))
		}
		for k := range h {
			if d := math.Abs(h[k] - h[taps-1-k]); d > 1e-12 {
				t.Fatalf("taps=%d: h[%d]=%v, h[%d]=%v", taps, k, h[k], taps-1-k, h[taps-1-k])
			}
		}
	}
}

func TestFIRWin2_SingleTapIsDCGain(t *testing.T) {
	// One tap can only realise a gain: the grid is {0, nyq} and the Hamming
	// window of length 1 is 1.
	h, err := FIRWin2(1, []float64{0, 250}, []float64{1, 0}, 500)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(h[0]-0.5) > 1e-12 {
		t.Fatalf("h = %v, want [0.5]", h)
	}
}

func TestFIRWin2_Errors(t *testing.T) {
	tests := []struct {
		name string
		taps int
		freq []float64
		gain []float64
		want error
	}{
		{"no taps", 0, []float64{0, 250}, []float64{1, 0}, errTooFewTaps},
		{"length mismatch", 5, []float64{0, 250}, []float64{1}, errLengthMismatch},
		{"single point", 5, []float64{0}, []float64{1}, errTooFewPoints},
		{"bad start", 5, []float64{1, 250}, []float64{1, 0}, errFreqEndpoints},
		{"bad end", 5, []float64{0, 200}, []float64{1, 0}, errFreqEndpoints},
		{"decreasing", 5, []float64{0, 50, 40, 250}, []float64{1, 1, 0, 0}, errFreqOrder},
		{"triple", 5, []float64{0, 50, 50, 50, 250}, []float64{1, 1, 0, 0, 0}, errFreqTriple},
		{"dup zero", 5, []float64{0, 0, 250}, []float64{1, 0, 0}, errFreqEdgeDuplicate},
		{"even taps nyquist gain", 4, []float64{0, 250}, []float64{1, 1}, errNyquistGainEvenTap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FIRWin2(tt.taps, tt.freq, tt.gain, 500)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFIRWin2_CustomWindow(t *testing.T) {
	rect := func(n int) []float64 {
		w := make([]float64, n)
		for i := range w {
			w[i] = 1
		}
		return w
	}
	hamming, err := FIRWin2(21, []float64{0, 50, 50, 250}, []float64{1, 1, 0, 0}, 500)
	if err != nil {
		t.Fatal(err)
	}
	boxcar, err := FIRWin2(21, []float64{0, 50, 50, 250}, []float64{1, 1, 0, 0}, 500, WithWindow(rect))
	if err != nil {
		t.Fatal(err)
	}
	// The window only rescales taps; the centre tap has Hamming weight 1.
	if math.Abs(hamming[10]-boxcar[10]) > 1e-12 {
		t.Fatalf("centre taps differ: %v vs %v", hamming[10], boxcar[10])
	}
	if math.Abs(hamming[0]) >= math.Abs(boxcar[0]) && boxcar[0] != 0 {
		t.Fatalf("edge tap not attenuated by Hamming window: %v vs %v", hamming[0], boxcar[0])
	}

	short := func(n int) []float64 { return make([]float64, n-1) }
	if _, err := FIRWin2(21, []float64{0, 250}, []float64{1, 0}, 500, WithWindow(short)); err == nil {
		t.Fatal("expected error for window of wrong length")
	}
}

func TestBandpass_Response(t *testing.T) {
	const fs = 500.0
	h, err := Bandpass(core.Band{Low: 50, High: 100}, fs, 201)
	if err != nil {
		t.Fatal(err)
	}
	f := fir.New(h)

	if g := math.Pow(10, f.MagnitudeDB(75, fs)/20); math.Abs(g-1) > 0.01 {
		t.Errorf("passband gain at 75 Hz = %v, want ~1", g)
	}
	for _, freq := range []float64{0, 10, 150, 200, 240} {
		if db := f.MagnitudeDB(freq, fs); db > -40 {
			t.Errorf("stopband at %v Hz = %.1f dB, want < -40 dB", freq, db)
		}
	}
}

func TestBandpass_IdentityForNoTaps(t *testing.T) {
	for _, taps := range []int{0, -3} {
		h, err := Bandpass(core.Band{Low: 8, High: 12}, 500, taps)
		if err != nil {
			t.Fatal(err)
		}
		if len(h) != 2 || h[0] != 1 || h[1] != 0 {
			t.Fatalf("taps=%d: got %v, want identity", taps, h)
		}
	}
}

func TestBandpass_InvalidBand(t *testing.T) {
	_, err := Bandpass(core.Band{Low: 12, High: 8}, 500, 80)
	if !errors.Is(err, core.ErrInvalidBand) {
		t.Fatalf("err = %v, want ErrInvalidBand", err)
	}
}

func TestLowpass_Response(t *testing.T) {
	const fs = 500.0
	h, err := Lowpass(20, fs, 201)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for _, c := range h {
		sum += c
	}
	if math.Abs(sum-1) > 0.01 {
		t.Errorf("DC gain = %v, want ~1", sum)
	}
	f := fir.New(h)
	if db := f.MagnitudeDB(100, fs); db > -40 {
		t.Errorf("stopband at 100 Hz = %.1f dB, want < -40 dB", db)
	}
}

func TestLowpass_Errors(t *testing.T) {
	if _, err := Lowpass(0, 500, 11); err == nil {
		t.Error("expected error for zero cutoff")
	}
	if _, err := Lowpass(250, 500, 11); err == nil {
		t.Error("expected error for cutoff at Nyquist")
	}
	if _, err := Lowpass(10, -1, 11); !errors.Is(err, core.ErrInvalidSampleRate) {
		t.Errorf("err = %v, want ErrInvalidSampleRate", err)
	}
	h, err := Lowpass(10, 500, 0)
	if err != nil || len(h) != 2 || h[0] != 1 {
		t.Errorf("Lowpass with 0 taps = %v, %v; want identity", h, err)
	}
}

func TestNaNFilter(t *testing.T) {
	h := NaNFilter()
	if len(h) != 2 || !math.IsNaN(h[0]) || h[1] != 0 {
		t.Fatalf("NaNFilter() = %v", h)
	}
}

func TestInterp(t *testing.T) {
	xp := []float64{0, 1, 1, 3}
	fp := []float64{0, 2, 4, 0}
	tests := []struct{ x, want float64 }{
		{-1, 0}, {0.5, 1}, {2, 2}, {3, 0}, {5, 0},
	}
	for _, tt := range tests {
		if got := interp(tt.x, xp, fp); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("interp(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
