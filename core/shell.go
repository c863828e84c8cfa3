package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/loadables/commands"
	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/config"
	"github.com/josephlewis42/loadables/core/logger"
	"github.com/josephlewis42/loadables/core/vos"
)

const (
	EnvHome     = "HOME"
	EnvPWD      = "PWD"
	EnvHostname = "HOSTNAME"

	DefaultPrompt = `\h:\w\$ `
)

// Statuses the shell itself produces.
const (
	StatusNotExecutable = 126
	StatusNotFound      = 127
)

var (
	envRegex = regexp.MustCompile(`(\$\$|\$\?|\$\w+)`)
)

// LineReader supplies input lines, it is satisfied by *readline.Instance.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

var _ LineReader = (*readline.Instance)(nil)

// Shell reads command lines and runs builtins in a single virtual process.
// Every builtin shares the shell's descriptor table so redirections made by
// one are seen by the next.
type Shell struct {
	VirtualOS *vos.Process
	Readline  LineReader

	config *config.Configuration
	log    *logger.SessionLogger

	lastStatus int
	exited     bool
	nextPid    int
}

// NewShell creates a shell from the configuration. attr supplies the I/O,
// filesystem, terminal and PID; its Args and Env are replaced.
func NewShell(cfg *config.Configuration, attr vos.ProcAttr, lines LineReader, log *logger.SessionLogger) *Shell {
	if attr.Pid == 0 {
		attr.Pid = 1
	}
	attr.Args = []string{"sh"}
	attr.Env = vos.NewMapEnvFromEnvList(cfg.Environ())

	shell := &Shell{
		Readline: lines,
		config:   cfg,
		log:      log,
		nextPid:  attr.Pid,
	}

	attr.OnInvalidInvocation = shell.logInvalidInvocation
	attr.OnPanic = shell.logPanic
	shell.VirtualOS = vos.NewProcess(&attr)
	shell.Init()

	return shell
}

// Init sets up the environment similar to login.
func (s *Shell) Init() {
	s.VirtualOS.Setenv(EnvHostname, s.config.Hostname)
	if s.VirtualOS.Getenv(EnvHome) == "" {
		s.VirtualOS.Setenv(EnvHome, "/")
	}
	if s.VirtualOS.Getenv(EnvPWD) == "" {
		s.VirtualOS.Setenv(EnvPWD, s.VirtualOS.Getenv(EnvHome))
	}
}

func (s *Shell) Prompt() string {
	prompt := s.config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	prompt = strings.ReplaceAll(prompt, `\h`, s.VirtualOS.Getenv(EnvHostname))

	pwd := s.VirtualOS.Getenv(EnvPWD)
	home := s.VirtualOS.Getenv(EnvHome)
	if home != "/" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)
	prompt = strings.ReplaceAll(prompt, `\$`, "$")

	return prompt
}

// LastStatus returns the exit status of the most recent command.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

// Exited reports whether the exit builtin ran.
func (s *Shell) Exited() bool {
	return s.exited
}

// Run reads and executes lines until input ends or exit is called. It
// returns the shell's exit status.
func (s *Shell) Run() int {
	if err := s.log.SessionStart(s.config.Hostname, s.VirtualOS.GetPTY().IsPTY); err != nil {
		log.Printf("Error logging: %v", err)
	}

	for !s.exited {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case errors.Is(err, io.EOF):
			return s.lastStatus // Input closed, quit.

		case errors.Is(err, readline.ErrInterrupt):
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			return s.lastStatus

		default:
			s.RunLine(line)
		}
	}

	return s.lastStatus
}

// RunLine tokenizes, expands and runs a single line. Blank lines and
// comments leave the last status untouched.
func (s *Shell) RunLine(line string) int {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		fmt.Fprintln(s.VirtualOS.Stderr(), "sh: syntax error: unexpected end of file")
		s.lastStatus = argutil.ExUsage
		return s.lastStatus
	}
	if len(tokens) == 0 {
		return s.lastStatus
	}

	for i, tok := range tokens {
		tokens[i] = s.expand(tok)
	}

	s.lastStatus = s.RunCommand(tokens)
	return s.lastStatus
}

func (s *Shell) expand(tok string) string {
	return envRegex.ReplaceAllStringFunc(tok, func(match string) string {
		switch match {
		case "$$":
			return strconv.Itoa(s.VirtualOS.Getpid())
		case "$?":
			return strconv.Itoa(s.lastStatus)
		default:
			return s.VirtualOS.Getenv(match[1:])
		}
	})
}

// RunCommand runs argv as a shell builtin or a registered loadable builtin
// and returns its exit status.
func (s *Shell) RunCommand(argv []string) int {
	name := argv[0]

	if builtin, ok := AllBuiltins[name]; ok {
		return s.process(argv).Run(func(virtOS vos.VOS) int {
			return builtin.Main(s, virtOS)
		})
	}

	if s.config.IsDisabled(name) {
		fmt.Fprintf(s.VirtualOS.Stderr(), "%s: builtin disabled\n", name)
		s.logUnknownCommand(argv, "disabled")
		return StatusNotExecutable
	}

	cmd, ok := commands.Lookup(name)
	if !ok {
		fmt.Fprintf(s.VirtualOS.Stderr(), "%s: command not found\n", name)
		s.logUnknownCommand(argv, "not found")
		return StatusNotFound
	}

	status := s.process(argv).Run(cmd)
	if err := s.log.RunBuiltin(argv, status); err != nil {
		log.Printf("Error logging: %v", err)
	}
	return status
}

// process creates the virtual process a command runs in. It shares the
// shell's descriptors and filesystem and gets a copy of the environment.
func (s *Shell) process(argv []string) *vos.Process {
	s.nextPid++
	return vos.NewProcess(&vos.ProcAttr{
		Args:                argv,
		Pid:                 s.nextPid,
		Env:                 vos.NewMapEnvFromEnvList(s.VirtualOS.Environ()),
		Files:               s.VirtualOS.FDs(),
		FS:                  s.VirtualOS.FS(),
		PTY:                 s.VirtualOS.GetPTY(),
		OnInvalidInvocation: s.logInvalidInvocation,
		OnPanic:             s.logPanic,
	})
}

// resolve makes p absolute against the working directory.
func (s *Shell) resolve(p string) string {
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(s.VirtualOS.Getenv(EnvPWD), p)
}

func (s *Shell) logInvalidInvocation(args []string, err error) {
	if logErr := s.log.InvalidInvocation(args, err); logErr != nil {
		log.Printf("Error logging: %v", logErr)
	}
}

func (s *Shell) logPanic(args []string, context string) {
	if err := s.log.Panic(args, context); err != nil {
		log.Printf("Error logging: %v", err)
	}
}

func (s *Shell) logUnknownCommand(args []string, reason string) {
	if err := s.log.UnknownCommand(args, reason); err != nil {
		log.Printf("Error logging: %v", err)
	}
}

// Close releases every descriptor the shell holds.
func (s *Shell) Close() error {
	return s.VirtualOS.FDs().CloseAll()
}
