package commands

import (
	"bufio"
	"strconv"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Seq prints a sequence of integers.
func Seq(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "seq [FIRST [INCREMENT]] LAST",
		Short:     "Print integers from FIRST to LAST in steps of INCREMENT.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [3]string
		nopt, err := argutil.ToArgvOpt(cmd, args, 1, argv[:])
		if err != nil {
			return argutil.Status(err)
		}

		var values [3]int
		for i, arg := range argv[:1+nopt] {
			if err := argutil.IntVar(arg, &values[i]); err != nil {
				cmd.WarnNum(err)
				return argutil.ExecutionFailure
			}
		}

		first, incr, last := int64(1), int64(1), int64(0)
		switch nopt {
		case 0:
			last = int64(values[0])
		case 1:
			first, last = int64(values[0]), int64(values[1])
		case 2:
			first, incr, last = int64(values[0]), int64(values[1]), int64(values[2])
		}

		if incr == 0 {
			cmd.Warnf("invalid zero increment value: %q", argv[1])
			return argutil.ExecutionFailure
		}

		w := bufio.NewWriter(virtOS.Stdout())
		defer w.Flush()

		for i := first; (incr > 0 && i <= last) || (incr < 0 && i >= last); i += incr {
			w.WriteString(strconv.FormatInt(i, 10))
			w.WriteByte('\n')
		}
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Seq

func init() {
	addBuiltin("seq", Seq)
}
