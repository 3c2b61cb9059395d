package buffer

// Sample is the element type a [Sliding] window can hold.
type Sample interface {
	~float64 | ~complex128
}

// Sliding holds the last n samples of a stream. Index 0 is the oldest
// sample, index n-1 the most recently appended one. Before n samples have
// been pushed the leading slots are zero.
type Sliding[T Sample] struct {
	samples []T
}

// New returns a zero-filled window of length n. Negative n is treated as 0.
func New[T Sample](n int) *Sliding[T] {
	if n < 0 {
		n = 0
	}
	return &Sliding[T]{samples: make([]T, n)}
}

// Update pushes chunk into the window and returns the current contents.
//
// A chunk shorter than the window shifts the existing samples left by
// len(chunk) and appends the chunk. A chunk at least as long as the window
// replaces the contents with the chunk's tail. The returned slice aliases
// the window and is only valid until the next call.
func (s *Sliding[T]) Update(chunk []T) []T {
	n := len(s.samples)
	m := len(chunk)
	switch {
	case m == 0 || n == 0:
	case m < n:
		copy(s.samples, s.samples[m:])
		copy(s.samples[n-m:], chunk)
	default:
		copy(s.samples, chunk[m-n:])
	}
	return s.samples
}

// Push appends a single sample; it is equivalent to Update with a
// one-element chunk without the slice header.
func (s *Sliding[T]) Push(x T) []T {
	n := len(s.samples)
	if n == 0 {
		return s.samples
	}
	copy(s.samples, s.samples[1:])
	s.samples[n-1] = x
	return s.samples
}

// Samples returns the window contents, oldest first. The slice aliases the
// window.
func (s *Sliding[T]) Samples() []T {
	return s.samples
}

// Len returns the window length.
func (s *Sliding[T]) Len() int {
	return len(s.samples)
}

// Reset clears the window to zero.
func (s *Sliding[T]) Reset() {
	clear(s.samples)
}
