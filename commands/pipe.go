package commands

import (
	"fmt"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Pipe creates a pipe and prints its read and write descriptors.
func Pipe(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "pipe",
		Short:     "Create a pipe and print its read and write descriptors.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		if err := argutil.ToArgv(cmd, args, nil); err != nil {
			return argutil.Status(err)
		}

		r, w, err := virtOS.FDs().Pipe()
		if err != nil {
			cmd.Warnf("%v", err)
			return argutil.ExecutionFailure
		}

		fmt.Fprintf(virtOS.Stdout(), "%d %d\n", r, w)
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Pipe

func init() {
	addBuiltin("pipe", Pipe)
}
