package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephlewis42/loadables/commands"
	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
	"github.com/spf13/afero"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command that needs access to the shell's own state.
type ShellBuiltin interface {
	Main(s *Shell, virtOS vos.VOS) int
}

type ShellBuiltinFunc func(s *Shell, virtOS vos.VOS) int

func (f ShellBuiltinFunc) Main(s *Shell, virtOS vos.VOS) int {
	return f(s, virtOS)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Exit quits the shell with the given status, or the last one.
func Exit(s *Shell, virtOS vos.VOS) int {
	cmd := &commands.Builtin{
		Use:       "exit [N]",
		Short:     "Exit the shell with a status of N. If N is omitted the status is that of the last command.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [1]string
		n, err := argutil.ToArgvOpt(cmd, args, 0, argv[:])
		if err != nil {
			return argutil.Status(err)
		}

		status := s.lastStatus
		if n == 1 {
			if err := argutil.IntVar(argv[0], &status); err != nil {
				cmd.WarnNum(err)
				status = argutil.ExUsage
			}
		}

		s.exited = true
		return status & 0xff
	})
}

// Cd changes the working directory.
func Cd(s *Shell, virtOS vos.VOS) int {
	cmd := &commands.Builtin{
		Use:       "cd [DIR]",
		Short:     "Change the current directory to DIR, HOME by default.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [1]string
		n, err := argutil.ToArgvOpt(cmd, args, 0, argv[:])
		if err != nil {
			return argutil.Status(err)
		}

		target := s.VirtualOS.Getenv(EnvHome)
		if n == 1 {
			target = argv[0]
		}
		dir := s.resolve(target)

		if ok, err := afero.DirExists(s.VirtualOS.FS(), dir); err != nil || !ok {
			cmd.Warnf("%s: No such file or directory", target)
			return argutil.ExecutionFailure
		}

		s.VirtualOS.Setenv(EnvPWD, dir)
		return argutil.ExecutionSuccess
	})
}

// Export sets shell variables that are passed to later commands.
func Export(s *Shell, virtOS vos.VOS) int {
	cmd := &commands.Builtin{
		Use:       "export [NAME=VALUE ...]",
		Short:     "Set environment variables for subsequent commands, or list them.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		if len(args) == 0 {
			for _, kv := range s.VirtualOS.Environ() {
				fmt.Fprintf(virtOS.Stdout(), "export %s\n", kv)
			}
			return argutil.ExecutionSuccess
		}

		status := argutil.ExecutionSuccess
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok || key == "" {
				cmd.Warnf("`%s': not a valid identifier", arg)
				status = argutil.ExecutionFailure
				continue
			}
			s.VirtualOS.Setenv(key, value)
		}
		return status
	})
}

// Unset removes shell variables.
func Unset(s *Shell, virtOS vos.VOS) int {
	cmd := &commands.Builtin{
		Use:       "unset [NAME ...]",
		Short:     "Remove each NAME from the environment.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		for _, arg := range args {
			s.VirtualOS.Unsetenv(arg)
		}
		return argutil.ExecutionSuccess
	})
}

// Help lists the available commands or shows help for one.
func Help(s *Shell, virtOS vos.VOS) int {
	cmd := &commands.Builtin{
		Use:       "help [NAME]",
		Short:     "Display information about builtin commands.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [1]string
		n, err := argutil.ToArgvOpt(cmd, args, 0, argv[:])
		if err != nil {
			return argutil.Status(err)
		}

		if n == 1 {
			return s.RunCommand([]string{argv[0], "--help"})
		}

		w := virtOS.Stdout()
		fmt.Fprintln(w, "These shell commands are defined internally.  Type `help' to see this list.")
		fmt.Fprintln(w, "Type `help name' to find out more about the function `name'.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Shell builtins:")
		fmt.Fprintln(w, strings.Join(listShellBuiltins(), "\n"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Loadable builtins:")
		for _, name := range commands.ListBuiltins() {
			if s.config.IsDisabled(name) {
				continue
			}
			fmt.Fprintln(w, name)
		}

		return argutil.ExecutionSuccess
	})
}

func listShellBuiltins() []string {
	var builtins []string
	for k := range AllBuiltins {
		builtins = append(builtins, k)
	}
	sort.Strings(builtins)
	return builtins
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["export"] = ShellBuiltinFunc(Export)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
	AllBuiltins["unset"] = ShellBuiltinFunc(Unset)
}
