// Package vos provides the virtual process a builtin runs in: its arguments,
// environment, standard streams, descriptor table and filesystem.
package vos

import (
	"io"

	"github.com/spf13/afero"
)

// VIO holds a process's standard streams.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// VProc describes the running process.
type VProc interface {
	// Args holds the command line, starting with the command name.
	Args() []string
	Getpid() int
	// LogInvalidInvocation records that the process was called incorrectly.
	LogInvalidInvocation(err error)
}

// VFiles gives access to open descriptors and the filesystem.
type VFiles interface {
	FDs() *FileTable
	FS() afero.Fs
}

type PTY struct {
	Width  int
	Height int
	Term   string
	IsPTY  bool
}

// VOS provides a virtual OS interface.
type VOS interface {
	VEnv
	VIO
	VProc
	VFiles

	GetPTY() PTY
}

// ProcessFunc is the entry point of a builtin, it returns the exit status.
type ProcessFunc func(VOS) int
