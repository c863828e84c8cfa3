package argutil

import (
	"errors"
	"fmt"
	"unsafe"
)

const (
	// InlineLen is the number of elements a Scratch holds without allocating.
	InlineLen = 50

	// MaxInlineBytes is the largest request, in bytes, served inline.
	MaxInlineBytes = InlineLen * unsafe.Sizeof(uintptr(0))

	// MaxHeapBytes caps a single heap request made by HeapAllocator.
	MaxHeapBytes = 1 << 30
)

// ErrNoMemory is returned by an Allocator that cannot satisfy a request.
var ErrNoMemory = errors.New("cannot allocate memory")

// Allocator provides heap storage to a Scratch.
type Allocator[T any] interface {
	// Alloc returns n elements, cleared if zeroed is set.
	Alloc(n int, zeroed bool) ([]T, error)
	// Free releases storage returned by Alloc.
	Free([]T)
}

// HeapAllocator allocates from the Go heap and refuses requests above
// MaxHeapBytes.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Alloc(n int, zeroed bool) ([]T, error) {
	var zero T
	if uint64(n)*uint64(unsafe.Sizeof(zero)) > MaxHeapBytes {
		return nil, ErrNoMemory
	}
	return make([]T, n), nil
}

func (HeapAllocator[T]) Free([]T) {}

// Scratch is a temporary buffer that lives inline for small requests and on
// the heap for large ones. Declare it as a local and release it with a
// deferred End:
//
//	var scratch argutil.Scratch[int]
//	buf, err := scratch.Start(n)
//	if err != nil {
//		return argutil.ExecutionFailure
//	}
//	defer scratch.End()
//
// A Scratch holds one buffer at a time.
//
// An inline buffer only stays off the heap while it is used locally. Passing
// it to an interface method, such as io.Reader.Read, makes the compiler move
// the whole Scratch to the heap.
type Scratch[T any] struct {
	// Reporter receives the warning when the heap allocation fails. Defaults
	// to Discard.
	Reporter Reporter
	// Allocator defaults to HeapAllocator.
	Allocator Allocator[T]

	inline  [InlineLen]T
	heap    []T
	started bool
}

// Start acquires n elements with unspecified contents.
func (s *Scratch[T]) Start(n int) ([]T, error) {
	return s.start(n, false)
}

// StartZeroed acquires n cleared elements.
func (s *Scratch[T]) StartZeroed(n int) ([]T, error) {
	return s.start(n, true)
}

func (s *Scratch[T]) start(n int, zeroed bool) ([]T, error) {
	if s.started {
		panic("argutil: Scratch started twice")
	}
	if n < 0 {
		panic("argutil: negative Scratch length")
	}

	var zero T
	size := unsafe.Sizeof(zero)
	if n <= InlineLen && uintptr(n)*size <= MaxInlineBytes {
		buf := s.inline[:n]
		if zeroed {
			for i := range buf {
				buf[i] = zero
			}
		}
		s.started = true
		return buf, nil
	}

	buf, err := s.allocator().Alloc(n, zeroed)
	if err != nil {
		fn := "malloc"
		if zeroed {
			fn = "calloc"
		}
		s.reporter().Warnf("%s %d failed", fn, uint64(n)*uint64(size))
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailure, err)
	}
	s.heap = buf
	s.started = true
	return buf, nil
}

// End releases the buffer. It is a no-op if nothing is held.
func (s *Scratch[T]) End() {
	if s.heap != nil {
		s.allocator().Free(s.heap)
		s.heap = nil
	}
	s.started = false
}

// OnHeap reports whether the current buffer came from the Allocator.
func (s *Scratch[T]) OnHeap() bool {
	return s.heap != nil
}

func (s *Scratch[T]) allocator() Allocator[T] {
	if s.Allocator == nil {
		return HeapAllocator[T]{}
	}
	return s.Allocator
}

func (s *Scratch[T]) reporter() Reporter {
	if s.Reporter == nil {
		return Discard
	}
	return s.Reporter
}
