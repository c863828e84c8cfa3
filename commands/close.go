package commands

import (
	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Close closes a descriptor.
func Close(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "close FD",
		Short:     "Close the file descriptor FD.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [1]string
		if err := argutil.ToArgv(cmd, args, argv[:]); err != nil {
			return argutil.Status(err)
		}

		var fd int
		if err := argutil.FDVar(cmd, argv[0], &fd); err != nil {
			return argutil.Status(err)
		}

		if err := virtOS.FDs().Close(fd); err != nil {
			cmd.Warnf("close %d: %v", fd, err)
			return argutil.ExecutionFailure
		}
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Close

func init() {
	addBuiltin("close", Close)
}
