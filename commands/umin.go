package commands

import (
	"fmt"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Umin prints the smaller of two unsigned integers.
func Umin(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "umin A B",
		Short:     "Print the smaller of the unsigned integers A and B.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [2]string
		if err := argutil.ToArgv(cmd, args, argv[:]); err != nil {
			return argutil.Status(err)
		}

		var a, b uint
		for _, v := range []struct {
			arg string
			out *uint
		}{{argv[0], &a}, {argv[1], &b}} {
			if err := argutil.UintVar(v.arg, v.out); err != nil {
				cmd.WarnNum(err)
				return argutil.ExecutionFailure
			}
		}

		fmt.Fprintln(virtOS.Stdout(), argutil.MinUnsigned(uint64(a), uint64(b)))
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Umin

func init() {
	addBuiltin("umin", Umin)
}
