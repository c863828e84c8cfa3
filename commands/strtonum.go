package commands

import (
	"fmt"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

const (
	numTypeInt    = "int"
	numTypeUint   = "uint"
	numTypeUint32 = "uint32"
	numTypePint   = "pint"
	numTypeFD     = "fd"
)

// Strtonum checks that a string converts to a number of the given type and
// prints the converted value.
func Strtonum(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:   "strtonum [-t int|uint|uint32|pint|fd] STRING",
		Short: "Convert STRING to a number of the given type and print it.",
	}

	numType := cmd.Flags().EnumLong(
		"type",
		't',
		[]string{numTypeInt, numTypeUint, numTypeUint32, numTypePint, numTypeFD},
		numTypeInt,
		"conversion to apply (int|uint|uint32|pint|fd)")

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [1]string
		if err := argutil.ToArgv(cmd, args, argv[:]); err != nil {
			return argutil.Status(err)
		}
		s := argv[0]

		var value interface{}
		var err error
		switch *numType {
		case numTypeUint:
			value, err = argutil.ParseUint(s)
		case numTypeUint32:
			value, err = argutil.ParseUint32(s)
		case numTypePint:
			value, err = argutil.ParsePositiveInt(s)
		case numTypeFD:
			// Reports its own errors.
			fd, err := argutil.ParseFD(cmd, s)
			if err != nil {
				return argutil.Status(err)
			}
			value = fd
		default:
			value, err = argutil.ParseInt(s)
		}

		if err != nil {
			cmd.WarnNum(err)
			return argutil.ExecutionFailure
		}

		fmt.Fprintln(virtOS.Stdout(), value)
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Strtonum

func init() {
	addBuiltin("strtonum", Strtonum)
}
