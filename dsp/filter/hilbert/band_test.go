package hilbert

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
	"github.com/hushchyn-mikhail/cfir/internal/testutil"
)

var alpha = core.Band{Low: 8, High: 12}

func TestBinFrequency(t *testing.T) {
	// Matches the fftfreq convention for even and odd sizes.
	tests := []struct {
		n    int
		want []float64
	}{
		{n: 4, want: []float64{0, 1, -2, -1}},
		{n: 5, want: []float64{0, 1, 2, -2, -1}},
	}
	for _, tt := range tests {
		for k, want := range tt.want {
			if got := binFrequency(k, tt.n, float64(tt.n)); got != want {
				t.Errorf("n=%d k=%d: got %v, want %v", tt.n, k, got, want)
			}
		}
	}
}

func TestBand_RejectsOutOfBandSine(t *testing.T) {
	const fs = 500.0
	for _, freq := range []float64{3, 25, 60} {
		// Integer number of periods keeps the tone on an FFT bin.
		x := testutil.DeterministicSine(freq, fs, 1, 1000)
		y, err := Band(x, fs, alpha)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range y {
			if cmplx.Abs(v) > 1e-9 {
				t.Fatalf("freq=%v sample %d: |y| = %v, want ~0", freq, i, cmplx.Abs(v))
			}
		}
	}
}

func TestBand_InBandSineIsAnalytic(t *testing.T) {
	const (
		fs   = 500.0
		freq = 10.0
		amp  = 1.5
	)
	x := testutil.DeterministicSine(freq, fs, amp, 1000)
	y, err := Band(x, fs, alpha)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y {
		if d := math.Abs(cmplx.Abs(v) - amp); d > 1e-9 {
			t.Fatalf("sample %d: envelope %v, want %v", i, cmplx.Abs(v), amp)
		}
		if d := math.Abs(real(v) - x[i]); d > 1e-9 {
			t.Fatalf("sample %d: real part %v, want input %v", i, real(v), x[i])
		}
	}
	// sin leads -cos by a quarter period: imag(y) = -cos(wt).
	w := 2 * math.Pi * freq / fs
	for _, i := range []int{0, 17, 333} {
		if d := math.Abs(imag(y[i]) + amp*math.Cos(w*float64(i))); d > 1e-9 {
			t.Fatalf("sample %d: imag %v, want %v", i, imag(y[i]), -amp*math.Cos(w*float64(i)))
		}
	}
}

func TestBand_FFTSizePadding(t *testing.T) {
	x := testutil.DeterministicSine(10, 500, 1, 300)
	y, err := Band(x, 500, alpha, WithFFTSize(1024))
	if err != nil {
		t.Fatal(err)
	}
	if len(y) != len(x) {
		t.Fatalf("len = %d, want %d", len(y), len(x))
	}
	if _, err := Band(x, 500, alpha, WithFFTSize(100)); !errors.Is(err, errShortFFTSize) {
		t.Fatalf("err = %v, want errShortFFTSize", err)
	}
}

func TestTransformer_ReuseAndErrors(t *testing.T) {
	tr, err := NewTransformer(250, 500, alpha)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 250 || tr.FFTSize() != 250 {
		t.Fatalf("Len=%d FFTSize=%d", tr.Len(), tr.FFTSize())
	}

	a := testutil.DeterministicNoise(1, 1, 250)
	b := testutil.DeterministicNoise(2, 1, 250)
	ya, err := tr.Transform(nil, a)
	if err != nil {
		t.Fatal(err)
	}
	first := append([]complex128(nil), ya...)
	if _, err := tr.Transform(ya, b); err != nil {
		t.Fatal(err)
	}
	again, err := tr.Transform(nil, a)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireComplexNearlyEqual(t, again, first, 1e-12)

	if _, err := tr.Transform(nil, a[:10]); !errors.Is(err, errInputLength) {
		t.Fatalf("err = %v, want errInputLength", err)
	}
	if _, err := NewTransformer(0, 500, alpha); !errors.Is(err, errEmptyInput) {
		t.Fatalf("err = %v, want errEmptyInput", err)
	}
	if _, err := NewTransformer(10, 500, core.Band{Low: 12, High: 8}); !errors.Is(err, core.ErrInvalidBand) {
		t.Fatalf("err = %v, want ErrInvalidBand", err)
	}
}
