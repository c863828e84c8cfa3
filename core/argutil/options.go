package argutil

import (
	"errors"

	"github.com/pborman/getopt/v2"
)

var (
	ErrOptionsNotAllowed = errors.New("options not allowed")

	// ErrHelp is returned by CheckNoOptions when the only option is --help.
	// Nothing is reported; the caller is expected to show its help.
	ErrHelp = errors.New("help requested")
)

// CheckNoOptions verifies l starts with no options.
//
// Every call parses with a fresh option set so no parser state carries over
// from a previous builtin. When no option is present l is advanced past a
// leading "--". Any option shows the usage message and fails.
func CheckNoOptions(r Reporter, l *Words) error {
	if len(*l) > 0 && (*l)[0] == "--help" {
		return ErrHelp
	}

	opts := getopt.New()
	// Getopt expects the command name in front.
	args := append([]string{""}, (*l)...)
	if err := opts.Getopt(args, nil); err != nil {
		r.Warnf("%v", err)
		return usage(r, ErrOptionsNotAllowed)
	}

	*l = opts.Args()
	return nil
}
