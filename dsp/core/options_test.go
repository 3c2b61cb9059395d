package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(1000), WithBlockSize(7))
	if cfg.SampleRate != 1000 {
		t.Fatalf("sample rate = %v, want 1000", cfg.SampleRate)
	}
	if cfg.BlockSize != 7 {
		t.Fatalf("block size = %d, want 7", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
