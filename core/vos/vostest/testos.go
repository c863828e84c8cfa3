// Package vostest runs builtins in a deterministic virtual process.
package vostest

import (
	"bytes"
	"io"

	"github.com/josephlewis42/loadables/core/vos"
	"github.com/spf13/afero"
)

// Pid is the process ID every test process gets.
const Pid = 4242

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string
	// If Env is non-empty, it gives the environment variables for the
	// new process.
	Env []string
	// FS is shared across runs of the command.
	FS afero.Fs
	// Files, if set, is used instead of a fresh descriptor table built from
	// Stdin, Stdout and Stderr.
	Files *vos.FileTable

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int

	// InvalidInvocations collects what the process logged as invalid.
	InvalidInvocations []error

	Setup func(vos.VOS) error
}

func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
		FS:      afero.NewMemMapFs(),
	}
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	// stdout, stderr
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Output runs the command and returns its standard output.
func (c *Cmd) Output() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the comand and waits for it to complete.
func (c *Cmd) Run() error {
	c.InvalidInvocations = nil

	proc := vos.NewProcess(&vos.ProcAttr{
		Args:   c.Argv,
		Pid:    Pid,
		Env:    vos.NewMapEnvFromEnvList(c.Env),
		Files:  c.Files,
		Stdin:  c.Stdin,
		Stdout: c.Stdout,
		Stderr: c.Stderr,
		FS:     c.FS,
		OnInvalidInvocation: func(_ []string, err error) {
			c.InvalidInvocations = append(c.InvalidInvocations, err)
		},
	})

	if c.Setup != nil {
		if err := c.Setup(proc); err != nil {
			return err
		}
	}

	c.ExitStatus = proc.Run(c.Process)
	return nil
}
