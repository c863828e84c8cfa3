package commands

import (
	"errors"
	"io"
	"math"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

// Readn copies up to COUNT bytes from a descriptor to standard output.
func Readn(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:       "readn FD COUNT",
		Short:     "Read at most COUNT bytes from FD and write them to standard output.",
		NoOptions: true,
	}

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [2]string
		if err := argutil.ToArgv(cmd, args, argv[:]); err != nil {
			return argutil.Status(err)
		}

		var fd int
		if err := argutil.FDVar(cmd, argv[0], &fd); err != nil {
			return argutil.Status(err)
		}

		var count uint32
		if err := argutil.Uint32Var(argv[1], &count); err != nil {
			cmd.WarnNum(err)
			return argutil.ExecutionFailure
		}
		if uint64(count) > math.MaxInt {
			cmd.Warnf("%s: %v", argv[1], argutil.ErrOutOfRange)
			return argutil.ExecutionFailure
		}

		f, err := virtOS.FDs().Get(fd)
		if err != nil {
			cmd.Warnf("%d: %v", fd, err)
			return argutil.ExecutionFailure
		}

		scratch := argutil.Scratch[byte]{Reporter: cmd}
		buf, err := scratch.Start(int(count))
		if err != nil {
			return argutil.Status(err)
		}
		defer scratch.End()

		n, err := io.ReadFull(f, buf)
		switch {
		case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		case errors.Is(err, vos.ErrWouldBlock) && n > 0:
		default:
			cmd.Warnf("%d: %v", fd, err)
			return argutil.ExecutionFailure
		}

		if _, err := virtOS.Stdout().Write(buf[:n]); err != nil {
			cmd.Warnf("write error: %v", err)
			return argutil.ExecutionFailure
		}
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Readn

func init() {
	addBuiltin("readn", Readn)
}
