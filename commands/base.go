package commands

import (
	"errors"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/fatih/color"
	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
	getopt "github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered builtins.
var AllBuiltins = make(map[string]vos.ProcessFunc)

// addBuiltin registers a builtin under its name.
func addBuiltin(name string, cmd vos.ProcessFunc) {
	if _, ok := AllBuiltins[name]; ok {
		panic("duplicate builtin: " + name)
	}
	AllBuiltins[name] = cmd
}

// ListBuiltins returns the sorted names of all registered builtins.
func ListBuiltins() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup finds a builtin by name.
func Lookup(name string) (vos.ProcessFunc, bool) {
	cmd, ok := AllBuiltins[name]
	return cmd, ok
}

var ColorBoldRed = color.New(color.FgRed, color.Bold)

// Builtin holds the shared plumbing of a builtin: option parsing, help and
// diagnostics. It implements argutil.Reporter, writing to the process's
// standard error.
type Builtin struct {
	// Name is the command name used as diagnostic prefix.
	Name string
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// NoOptions rejects every option with argutil.CheckNoOptions instead of
	// parsing Flags.
	NoOptions bool

	flags   *getopt.Set
	virtOS  vos.VOS
	help    *bool
	colored bool
}

var _ argutil.Reporter = (*Builtin)(nil)

// Flags gets the command's flag set.
func (b *Builtin) Flags() *getopt.Set {
	if b.flags == nil {
		b.flags = getopt.New()
	}

	return b.flags
}

// PrintHelp writes help for the command to the given writer.
func (b *Builtin) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "%s: %s\n", b.Name, b.Use)
	fmt.Fprintf(w, "    %s\n", b.Short)
	if !b.NoOptions {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		b.Flags().PrintOptions(w)
	}
}

// Usage implements argutil.Reporter.
func (b *Builtin) Usage() {
	fmt.Fprintf(b.virtOS.Stderr(), "%s usage: %s\n", b.prefix(), b.Use)
	b.virtOS.LogInvalidInvocation(argutil.ErrUsage)
}

// Warnf implements argutil.Reporter.
func (b *Builtin) Warnf(format string, a ...interface{}) {
	fmt.Fprintf(b.virtOS.Stderr(), "%s %s\n", b.prefix(), fmt.Sprintf(format, a...))
}

func (b *Builtin) prefix() string {
	if b.colored {
		return ColorBoldRed.Sprint(b.Name + ":")
	}
	return b.Name + ":"
}

// WarnNum reports a failed numeric conversion as "NUM: reason".
func (b *Builtin) WarnNum(err error) {
	var numErr *argutil.NumError
	if errors.As(err, &numErr) {
		b.Warnf("%s: %v", numErr.Num, numErr.Err)
		return
	}
	b.Warnf("%v", err)
}

// Run parses the command's options and, if that succeeds, calls the callback
// with the remaining arguments. The exit status of the callback is returned.
func (b *Builtin) Run(virtOS vos.VOS, callback func(args argutil.Words) int) int {
	b.virtOS = virtOS
	b.colored = virtOS.GetPTY().IsPTY
	argv := virtOS.Args()
	if len(argv) == 0 {
		argv = []string{b.Name}
	}
	if b.Name == "" {
		b.Name = path.Base(argv[0])
	}

	args := argutil.Words(argv[1:])

	if b.NoOptions {
		switch err := argutil.CheckNoOptions(b, &args); {
		case errors.Is(err, argutil.ErrHelp):
			b.PrintHelp(virtOS.Stdout())
			return argutil.ExecutionSuccess
		case err != nil:
			return argutil.Status(err)
		}
		return callback(args)
	}

	opts := b.Flags()
	if b.help == nil {
		b.help = opts.BoolLong("help", 0, "show this help and exit")
	}

	if err := opts.Getopt(argv, nil); err != nil {
		b.Warnf("%v", err)
		b.Usage()
		return argutil.ExUsage
	}

	if *b.help {
		b.PrintHelp(virtOS.Stdout())
		return argutil.ExecutionSuccess
	}

	return callback(opts.Args())
}
