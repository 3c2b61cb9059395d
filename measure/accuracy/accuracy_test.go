package accuracy

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hushchyn-mikhail/cfir/internal/testutil"
)

func TestAlign(t *testing.T) {
	est := []int{0, 1, 2, 3, 4}
	truth := []int{10, 11, 12, 13, 14}
	tests := []struct {
		delay     int
		wantEst   []int
		wantTruth []int
	}{
		{delay: 0, wantEst: est, wantTruth: truth},
		{delay: 2, wantEst: []int{2, 3, 4}, wantTruth: []int{10, 11, 12}},
		{delay: -1, wantEst: []int{0, 1, 2, 3}, wantTruth: []int{11, 12, 13, 14}},
		{delay: 4, wantEst: []int{4}, wantTruth: []int{10}},
	}
	for _, tt := range tests {
		e, tr, err := Align(est, truth, tt.delay)
		if err != nil {
			t.Fatalf("delay %d: %v", tt.delay, err)
		}
		if diff := cmp.Diff(tt.wantEst, e); diff != "" {
			t.Errorf("delay %d estimate (-want +got):\n%s", tt.delay, diff)
		}
		if diff := cmp.Diff(tt.wantTruth, tr); diff != "" {
			t.Errorf("delay %d truth (-want +got):\n%s", tt.delay, diff)
		}
	}
}

func TestAlign_Errors(t *testing.T) {
	if _, _, err := Align([]float64{1, 2}, []float64{1}, 0); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
	for _, d := range []int{3, -3, 10} {
		if _, _, err := Align([]float64{1, 2, 3}, []float64{1, 2, 3}, d); !errors.Is(err, ErrDelayTooLarge) {
			t.Errorf("delay %d: got %v, want ErrDelayTooLarge", d, err)
		}
	}
}

func TestScore(t *testing.T) {
	x := testutil.DeterministicNoise(1, 1, 500)

	if s, err := Score(x, x, 0); err != nil || math.Abs(s-1) > 1e-12 {
		t.Errorf("Score(x, x, 0) = %v, %v; want 1", s, err)
	}

	neg := make([]float64, len(x))
	for i, v := range x {
		neg[i] = -3*v + 2
	}
	if s, _ := Score(neg, x, 0); math.Abs(s+1) > 1e-12 {
		t.Errorf("Score(affine negative) = %v, want -1", s)
	}

	if s, err := Score(testutil.DC(1, 500), x, 0); err != nil || s != 0 {
		t.Errorf("constant estimate: got %v, %v; want 0", s, err)
	}

	nan := testutil.DC(math.NaN(), 500)
	if s, err := Score(nan, x, 0); err != nil || s != 0 {
		t.Errorf("NaN estimate: got %v, %v; want 0", s, err)
	}

	if _, err := Score(x, x[:10], 0); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
}

func TestScore_RecoversDelay(t *testing.T) {
	truth := testutil.DeterministicNoise(4, 1, 400)
	const lag = 7
	est := make([]float64, len(truth))
	copy(est[lag:], truth)

	curve, err := Curve(est, truth, []int{0, 3, 5, 7, 9, -2})
	if err != nil {
		t.Fatal(err)
	}
	best, ok := Best(curve)
	if !ok {
		t.Fatal("empty curve")
	}
	if best.Delay != lag || math.Abs(best.Score-1) > 1e-12 {
		t.Errorf("Best = %+v, want delay %d with score 1", best, lag)
	}
}

func TestSNR(t *testing.T) {
	truth := testutil.DeterministicSine(3, 100, 1, 400)
	noise := testutil.GaussianNoise(8, 0.1, 400)

	perfect := make([]float64, len(truth))
	for i, v := range truth {
		perfect[i] = 0.5*v + 4
	}
	if s, err := SNR(perfect, truth, 0); err != nil || !math.IsInf(s, 1) {
		t.Errorf("affine estimate: got %v, %v; want +Inf", s, err)
	}

	noisy := testutil.Add(truth, noise)
	s, err := SNR(noisy, truth, 0)
	if err != nil {
		t.Fatal(err)
	}
	// var(sine) = 0.5, var(noise) = 0.01: about 17 dB before the fit.
	if s < 14 || s > 20 {
		t.Errorf("SNR = %v dB, want about 17", s)
	}

	if s, _ := SNR(testutil.DC(2, 400), truth, 0); s != 0 {
		t.Errorf("constant estimate: got %v, want 0", s)
	}
	if _, err := SNR(noisy, truth, 400); !errors.Is(err, ErrDelayTooLarge) {
		t.Errorf("got %v, want ErrDelayTooLarge", err)
	}
}

func TestCurve_PropagatesErrors(t *testing.T) {
	x := []float64{1, 2, 3}
	if _, err := Curve(x, x, []int{0, 5}); !errors.Is(err, ErrDelayTooLarge) {
		t.Errorf("got %v, want ErrDelayTooLarge", err)
	}
}

func TestBest(t *testing.T) {
	if _, ok := Best(nil); ok {
		t.Error("Best(nil) ok = true")
	}
	curve := []DelayScore{{Delay: 10, Score: 0.5}, {Delay: 4, Score: 0.8}, {Delay: 2, Score: 0.8}, {Delay: 6, Score: 0.1}}
	got, _ := Best(curve)
	want := DelayScore{Delay: 2, Score: 0.8}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Best mismatch (-want +got):\n%s", diff)
	}
}
