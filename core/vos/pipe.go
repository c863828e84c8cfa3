package vos

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// PipeBufSize is the capacity of a pipe created by FileTable.Pipe.
const PipeBufSize = 64 * 1024

var (
	// ErrWouldBlock is returned when reading an empty pipe that still has a
	// writer, or writing to a full one. Builtins run on the shell's goroutine
	// so pipes never block.
	ErrWouldBlock = errors.New("resource temporarily unavailable")

	ErrBrokenPipe = errors.New("broken pipe")
)

type pipe struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	rclosed bool
	wclosed bool
}

type pipeReader struct{ p *pipe }

type pipeWriter struct{ p *pipe }

func newPipe() (File, File) {
	p := &pipe{}
	return pipeReader{p}, pipeWriter{p}
}

func (r pipeReader) Read(b []byte) (int, error) {
	p := r.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.buf.Len() == 0 {
		if p.wclosed {
			return 0, io.EOF
		}
		return 0, ErrWouldBlock
	}
	return p.buf.Read(b)
}

func (pipeReader) Write([]byte) (int, error) { return 0, ErrBadFD }

func (r pipeReader) Close() error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	r.p.rclosed = true
	r.p.buf.Reset()
	return nil
}

func (pipeWriter) Read([]byte) (int, error) { return 0, ErrBadFD }

func (w pipeWriter) Write(b []byte) (int, error) {
	p := w.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rclosed {
		return 0, ErrBrokenPipe
	}

	room := PipeBufSize - p.buf.Len()
	if len(b) > room {
		n, _ := p.buf.Write(b[:room])
		return n, ErrWouldBlock
	}
	return p.buf.Write(b)
}

func (w pipeWriter) Close() error {
	w.p.mu.Lock()
	defer w.p.mu.Unlock()
	w.p.wclosed = true
	return nil
}
