package commands

import (
	"fmt"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Getpid prints the process ID.
func Getpid(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "getpid",
		Short:     "Print the process ID.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		if err := argutil.ToArgv(cmd, args, nil); err != nil {
			return argutil.Status(err)
		}

		fmt.Fprintln(virtOS.Stdout(), virtOS.Getpid())
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Getpid

func init() {
	addBuiltin("getpid", Getpid)
}
