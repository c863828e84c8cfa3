package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/loadables/commands"
	"github.com/josephlewis42/loadables/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// runBuiltin runs a single builtin and returns its exit status.
func runBuiltin(process vos.ProcessFunc, argv []string, attr vos.ProcAttr, stderr io.Writer) int {
	attr.Args = argv
	attr.OnPanic = func(args []string, context string) {
		fmt.Fprintln(stderr, context)
	}

	proc := vos.NewProcess(&attr)
	defer proc.FDs().CloseAll()

	return proc.Run(process)
}

var runCmd = &cobra.Command{
	Use:   "run NAME [ARG...]",
	Short: "Run a single builtin over the real standard streams.",
	Long: `Run a single builtin with this process's standard streams, environment
and filesystem, then exit with the builtin's status.`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		process, ok := commands.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown builtin %q, see the builtins command", args[0])
		}

		status := runBuiltin(process, args, vos.ProcAttr{
			Pid:    os.Getpid(),
			Env:    vos.NewMapEnvFromEnvList(os.Environ()),
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
			FS:     afero.NewOsFs(),
			PTY: vos.PTY{
				Term:  os.Getenv("TERM"),
				IsPTY: colorEnabled("auto", os.Stderr),
			},
		}, os.Stderr)

		os.Exit(status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
