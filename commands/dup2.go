package commands

import (
	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Dup2 duplicates one descriptor onto another.
func Dup2(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "dup2 OLDFD NEWFD",
		Short:     "Make NEWFD a copy of OLDFD, closing NEWFD first if necessary.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [2]string
		if err := argutil.ToArgv(cmd, args, argv[:]); err != nil {
			return argutil.Status(err)
		}

		var oldfd, newfd int
		if err := argutil.FDVar(cmd, argv[0], &oldfd); err != nil {
			return argutil.Status(err)
		}
		if err := argutil.FDVar(cmd, argv[1], &newfd); err != nil {
			return argutil.Status(err)
		}

		if err := virtOS.FDs().Dup2(oldfd, newfd); err != nil {
			cmd.Warnf("dup2 %d %d: %v", oldfd, newfd, err)
			return argutil.ExecutionFailure
		}
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Dup2

func init() {
	addBuiltin("dup2", Dup2)
}
