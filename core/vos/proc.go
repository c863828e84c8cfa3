package vos

import (
	"fmt"
	"io"
	"path"
	"runtime/debug"

	"github.com/spf13/afero"
)

// ProcAttr holds the attributes of a new process.
type ProcAttr struct {
	// Args holds the command line, starting with the command name.
	Args []string
	Pid  int
	// Env is shared with the process. If nil the process gets an empty
	// environment.
	Env VEnv
	// Files is shared with the process. If nil a new table is created from
	// Stdin, Stdout and Stderr.
	Files  *FileTable
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// FS defaults to an empty in-memory filesystem.
	FS  afero.Fs
	PTY PTY

	// OnInvalidInvocation, if set, receives invalid invocations.
	OnInvalidInvocation func(args []string, err error)
	// OnPanic, if set, receives the stack of a panicking builtin.
	OnPanic func(args []string, context string)
}

// Process implements VOS for a single builtin invocation.
type Process struct {
	VEnv

	attr  ProcAttr
	files *FileTable
	fs    afero.Fs
}

var _ VOS = (*Process)(nil)

// NewProcess creates a process from attr.
func NewProcess(attr *ProcAttr) *Process {
	p := &Process{
		VEnv:  attr.Env,
		attr:  *attr,
		files: attr.Files,
		fs:    attr.FS,
	}

	if p.VEnv == nil {
		p.VEnv = NewMapEnv()
	}
	if p.files == nil {
		p.files = NewFileTable(attr.Stdin, attr.Stdout, attr.Stderr)
	}
	if p.fs == nil {
		p.fs = afero.NewMemMapFs()
	}

	return p
}

func (p *Process) Args() []string {
	return p.attr.Args
}

func (p *Process) Getpid() int {
	return p.attr.Pid
}

func (p *Process) LogInvalidInvocation(err error) {
	if p.attr.OnInvalidInvocation != nil {
		p.attr.OnInvalidInvocation(p.attr.Args, err)
	}
}

func (p *Process) Stdin() io.ReadCloser {
	return fdReader{p.files, 0}
}

func (p *Process) Stdout() io.WriteCloser {
	return fdWriter{p.files, 1}
}

func (p *Process) Stderr() io.WriteCloser {
	return fdWriter{p.files, 2}
}

func (p *Process) FDs() *FileTable {
	return p.files
}

func (p *Process) FS() afero.Fs {
	return p.fs
}

func (p *Process) GetPTY() PTY {
	return p.attr.PTY
}

// Name returns the base name of the command.
func (p *Process) Name() string {
	if len(p.attr.Args) == 0 {
		return ""
	}
	return path.Base(p.attr.Args[0])
}

// Run calls fn and returns its exit status. A panic in fn is reported on the
// process's standard error and results in status 1.
func (p *Process) Run(fn ProcessFunc) (status int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(p.Stderr(), "%s: panic: %v\n", p.Name(), r)
			if p.attr.OnPanic != nil {
				p.attr.OnPanic(p.attr.Args, fmt.Sprintf("%v\n%s", r, debug.Stack()))
			}
			status = 1
		}
	}()

	return fn(p)
}
