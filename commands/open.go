package commands

import (
	"os"
	"path"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Open opens a file onto a chosen descriptor.
func Open(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:   "open [-w | -a] FD PATH",
		Short: "Open PATH for reading, or writing with -w or -a, as descriptor FD.",
	}

	opts := cmd.Flags()
	write := opts.Bool('w', "open for writing, truncating the file")
	appendMode := opts.Bool('a', "open for writing, appending to the file")

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [2]string
		if err := argutil.ToArgv(cmd, args, argv[:]); err != nil {
			return argutil.Status(err)
		}

		var fd int
		if err := argutil.FDVar(cmd, argv[0], &fd); err != nil {
			return argutil.Status(err)
		}

		flag := os.O_RDONLY
		switch {
		case *write && *appendMode:
			cmd.Warnf("-w and -a are mutually exclusive")
			cmd.Usage()
			return argutil.ExUsage
		case *write:
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		case *appendMode:
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		}

		name := argv[1]
		if !path.IsAbs(name) {
			name = path.Join(workingDir(virtOS), name)
		}

		if err := virtOS.FDs().OpenAt(fd, virtOS.FS(), name, flag, 0644); err != nil {
			cmd.Warnf("%s: %v", argv[1], err)
			return argutil.ExecutionFailure
		}
		return argutil.ExecutionSuccess
	})
}

func workingDir(virtOS vos.VOS) string {
	if pwd := virtOS.Getenv("PWD"); pwd != "" {
		return pwd
	}
	return "/"
}

var _ vos.ProcessFunc = Open

func init() {
	addBuiltin("open", Open)
}
