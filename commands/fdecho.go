package commands

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-7][0-7]?[0-7]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\b`, "\b", // backspace
		`\a`, "\a", // alert
		`\f`, "\f", // form feed
		`\v`, "\v", // vertical tab
	)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	return s
}

// Fdecho writes a line of text to a descriptor.
func Fdecho(virtOS vos.VOS) int {
	cmd := &Builtin{
		Use:   "fdecho [-en] FD [STRING]",
		Short: "Write STRING and a newline to the file descriptor FD.",
	}

	opts := cmd.Flags()
	escaped := opts.Bool('e', "interpret backslash escapes")
	noNewline := opts.Bool('n', "do not output the trailing newline")

	return cmd.Run(virtOS, func(args argutil.Words) int {
		var argv [2]string
		nopt, err := argutil.ToArgvOpt(cmd, args, 1, argv[:])
		if err != nil {
			return argutil.Status(err)
		}

		var fd int
		if err := argutil.FDVar(cmd, argv[0], &fd); err != nil {
			return argutil.Status(err)
		}

		var text string
		if nopt == 1 {
			text = argv[1]
		}
		if *escaped {
			text = unescape(text)
		}
		if !*noNewline {
			text += "\n"
		}

		f, err := virtOS.FDs().Get(fd)
		if err != nil {
			cmd.Warnf("%d: %v", fd, err)
			return argutil.ExecutionFailure
		}
		if _, err := io.WriteString(f, text); err != nil {
			cmd.Warnf("write error: %v", err)
			return argutil.ExecutionFailure
		}
		return argutil.ExecutionSuccess
	})
}

var _ vos.ProcessFunc = Fdecho

func init() {
	addBuiltin("fdecho", Fdecho)
}
