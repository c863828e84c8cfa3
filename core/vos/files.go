package vos

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/spf13/afero"
)

// MaxFDs bounds descriptor numbers, like RLIMIT_NOFILE.
const MaxFDs = 1024

var (
	ErrBadFD        = errors.New("bad file descriptor")
	ErrTooManyFiles = errors.New("too many open files")
)

// File is the object behind a descriptor.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

type openFile struct {
	File
	name string
	refs int
	// owned is false for the host's standard streams, which outlive the
	// table.
	owned bool
}

// FileTable maps descriptor numbers to open files. Descriptors created with
// Dup2 share the underlying file, which is closed when its last descriptor
// is.
type FileTable struct {
	mu    sync.Mutex
	files map[int]*openFile
}

// NewFileTable creates a table with 0, 1 and 2 bound to the given streams.
// Nil streams behave like /dev/null.
func NewFileTable(stdin io.Reader, stdout, stderr io.Writer) *FileTable {
	return &FileTable{
		files: map[int]*openFile{
			0: {File: readOnly{toReadCloserOrDiscard(stdin)}, name: "stdin", refs: 1},
			1: {File: writeOnly{toWriteCloserOrDiscard(stdout)}, name: "stdout", refs: 1},
			2: {File: writeOnly{toWriteCloserOrDiscard(stderr)}, name: "stderr", refs: 1},
		},
	}
}

func validFD(fd int) bool {
	return fd >= 0 && fd < MaxFDs
}

// Get returns the file behind fd.
func (t *FileTable) Get(fd int) (File, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	of, ok := t.files[fd]
	if !ok {
		return nil, ErrBadFD
	}
	return of.File, nil
}

// Name returns the description of the file behind fd.
func (t *FileTable) Name(fd int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	of, ok := t.files[fd]
	if !ok {
		return "", ErrBadFD
	}
	return of.name, nil
}

// Install binds f to fd, closing whatever fd referred to before.
func (t *FileTable) Install(fd int, f File, name string) error {
	if !validFD(fd) {
		return ErrBadFD
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	err := t.releaseLocked(fd)
	t.files[fd] = &openFile{File: f, name: name, refs: 1, owned: true}
	return err
}

// Add binds f to the lowest free descriptor.
func (t *FileTable) Add(f File, name string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd, err := t.lowestFreeLocked()
	if err != nil {
		return -1, err
	}
	t.files[fd] = &openFile{File: f, name: name, refs: 1, owned: true}
	return fd, nil
}

// Dup2 makes newfd refer to the same file as oldfd, closing newfd first.
func (t *FileTable) Dup2(oldfd, newfd int) error {
	if !validFD(newfd) {
		return ErrBadFD
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	of, ok := t.files[oldfd]
	if !ok {
		return ErrBadFD
	}
	if oldfd == newfd {
		return nil
	}

	// Errors closing the displaced file are ignored, as dup2(2) does.
	_ = t.releaseLocked(newfd)
	of.refs++
	t.files[newfd] = of
	return nil
}

// Close removes fd from the table.
func (t *FileTable) Close(fd int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.files[fd]; !ok {
		return ErrBadFD
	}
	return t.releaseLocked(fd)
}

// Pipe creates a pipe and returns its read and write descriptors.
func (t *FileTable) Pipe() (r, w int, err error) {
	pr, pw := newPipe()

	t.mu.Lock()
	defer t.mu.Unlock()

	if r, err = t.lowestFreeLocked(); err != nil {
		return -1, -1, err
	}
	t.files[r] = &openFile{File: pr, name: "pipe:r", refs: 1, owned: true}

	if w, err = t.lowestFreeLocked(); err != nil {
		_ = t.releaseLocked(r)
		return -1, -1, err
	}
	t.files[w] = &openFile{File: pw, name: "pipe:w", refs: 1, owned: true}

	return r, w, nil
}

// Open opens name on fs and binds it to the lowest free descriptor.
func (t *FileTable) Open(fs afero.Fs, name string, flag int, perm os.FileMode) (int, error) {
	f, err := fs.OpenFile(name, flag, perm)
	if err != nil {
		return -1, err
	}

	fd, err := t.Add(f, name)
	if err != nil {
		f.Close()
		return -1, err
	}
	return fd, nil
}

// OpenAt opens name on fs and binds it to fd.
func (t *FileTable) OpenAt(fd int, fs afero.Fs, name string, flag int, perm os.FileMode) error {
	if !validFD(fd) {
		return ErrBadFD
	}

	f, err := fs.OpenFile(name, flag, perm)
	if err != nil {
		return err
	}
	return t.Install(fd, f, name)
}

// Len returns the number of open descriptors.
func (t *FileTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.files)
}

// ReadFDs copies open descriptors into dst in ascending order and returns
// how many were copied.
func (t *FileTable) ReadFDs(dst []int) int {
	t.mu.Lock()
	fds := make([]int, 0, len(t.files))
	for fd := range t.files {
		fds = append(fds, fd)
	}
	t.mu.Unlock()

	sort.Ints(fds)
	return copy(dst, fds)
}

// CloseAll closes every descriptor.
func (t *FileTable) CloseAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var lastErr error
	for fd := range t.files {
		if err := t.releaseLocked(fd); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (t *FileTable) lowestFreeLocked() (int, error) {
	for fd := 0; fd < MaxFDs; fd++ {
		if _, ok := t.files[fd]; !ok {
			return fd, nil
		}
	}
	return -1, ErrTooManyFiles
}

func (t *FileTable) releaseLocked(fd int) error {
	of, ok := t.files[fd]
	if !ok {
		return nil
	}
	delete(t.files, fd)

	of.refs--
	if of.refs > 0 || !of.owned {
		return nil
	}
	if err := of.Close(); err != nil {
		return fmt.Errorf("close %s: %w", of.name, err)
	}
	return nil
}
