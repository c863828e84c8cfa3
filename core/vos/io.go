package vos

import (
	"io"
	"os"
)

// fdReader reads from whatever descriptor fd refers to at the time of the
// call so redirections made with Dup2 are honored.
type fdReader struct {
	table *FileTable
	fd    int
}

var _ io.ReadCloser = fdReader{}

func (r fdReader) Read(b []byte) (int, error) {
	f, err := r.table.Get(r.fd)
	if err != nil {
		return 0, err
	}
	return f.Read(b)
}

func (fdReader) Close() error { return nil }

// fdWriter is the writing counterpart of fdReader.
type fdWriter struct {
	table *FileTable
	fd    int
}

var _ io.WriteCloser = fdWriter{}

func (w fdWriter) Write(b []byte) (int, error) {
	f, err := w.table.Get(w.fd)
	if err != nil {
		return 0, err
	}
	return f.Write(b)
}

func (fdWriter) Close() error { return nil }

// readOnly adapts a reader to a File that rejects writes.
type readOnly struct {
	io.ReadCloser
}

func (readOnly) Write([]byte) (int, error) { return 0, ErrBadFD }

// writeOnly adapts a writer to a File that rejects reads.
type writeOnly struct {
	io.WriteCloser
}

func (writeOnly) Read([]byte) (int, error) { return 0, ErrBadFD }

func toWriteCloserOrDiscard(w io.Writer) io.WriteCloser {
	if w == nil {
		return &devNull{}
	}
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}

	return nopWriteCloser{w}
}

func toReadCloserOrDiscard(r io.Reader) io.ReadCloser {
	if r == nil {
		return &devNull{}
	}
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}

	return io.NopCloser(r)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// devNull implemnets io.Reader and io.Writer, always closing for reads and
// discarding writes.
type devNull struct{}

var _ io.ReadCloser = (*devNull)(nil)
var _ io.WriteCloser = (*devNull)(nil)

func (*devNull) Read([]byte) (int, error) {
	return 0, os.ErrClosed
}

func (*devNull) Close() error {
	return nil
}

func (*devNull) Write(b []byte) (int, error) {
	return len(b), nil
}
