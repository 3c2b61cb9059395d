// Package realtime replays a recorded signal through a causal processor in
// fixed-size chunks, the way samples would arrive from an acquisition
// device.
package realtime

import (
	"errors"
	"fmt"

	"github.com/hushchyn-mikhail/cfir/dsp/core"
)

var (
	// ErrInvalidChunkSize is returned for chunk sizes below 1.
	ErrInvalidChunkSize = errors.New("realtime: chunk size must be >= 1")
	// ErrOutputLength is returned when a processor does not return exactly
	// one output per input sample.
	ErrOutputLength = errors.New("realtime: processor output length differs from input chunk")
)

// Processor is a stateful chunk processor. Every envelope estimator
// satisfies it.
type Processor[T any] interface {
	Apply(chunk []float64) []T
}

// Emulate feeds x to p in consecutive chunks of chunkSize samples (the last
// chunk may be shorter) and concatenates the outputs. p keeps its state
// between chunks and is not reset before or after the run.
func Emulate[T any](p Processor[T], x []float64, chunkSize int) ([]T, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}
	out := make([]T, 0, len(x))
	for start := 0; start < len(x); start += chunkSize {
		end := min(start+chunkSize, len(x))
		y := p.Apply(x[start:end])
		if len(y) != end-start {
			return nil, fmt.Errorf("%w: chunk at %d: got %d, want %d", ErrOutputLength, start, len(y), end-start)
		}
		out = append(out, y...)
	}
	return out, nil
}

// Run is Emulate with the chunk size taken from the processor options. The
// default block size of 1 replays the signal sample by sample.
func Run[T any](p Processor[T], x []float64, opts ...core.ProcessorOption) ([]T, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	return Emulate(p, x, cfg.BlockSize)
}

// ProcessorFunc adapts a plain function to [Processor].
type ProcessorFunc[T any] func(chunk []float64) []T

// Apply calls f(chunk).
func (f ProcessorFunc[T]) Apply(chunk []float64) []T {
	return f(chunk)
}
