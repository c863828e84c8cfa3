package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Fdlist prints the open descriptors and what they refer to.
func Fdlist(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "fdlist",
		Short:     "List open file descriptors.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		if err := argutil.ToArgv(cmd, args, nil); err != nil {
			return argutil.Status(err)
		}

		table := virtOS.FDs()
		scratch := argutil.Scratch[int]{Reporter: cmd}
		fds, err := scratch.StartZeroed(table.Len())
		if err != nil {
			return argutil.Status(err)
		}
		defer scratch.End()

		fds = fds[:table.ReadFDs(fds)]

		tw := tabwriter.NewWriter(virtOS.Stdout(), 0, 8, 1, ' ', 0)
		defer tw.Flush()

		for _, fd := range fds {
			name, err := table.Name(fd)
			if err != nil {
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\n", fd, name)
		}
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Fdlist

func init() {
	addBuiltin("fdlist", Fdlist)
}
