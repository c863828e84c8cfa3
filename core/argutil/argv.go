package argutil

import (
	"errors"
)

var (
	ErrTooFewArgs  = errors.New("not enough arguments")
	ErrTooManyArgs = errors.New("too many arguments")
)

// Words is the list of arguments handed to a builtin, without the command
// name. Consuming a word re-slices the list.
type Words []string

// ReadArgs moves words from the front of l into argv until either argv is
// full or l is empty, and returns the number moved.
func ReadArgs(l *Words, argv []string) int {
	i := 0
	for ; i != len(argv) && len(*l) != 0; i++ {
		argv[i] = (*l)[0]
		*l = (*l)[1:]
	}
	return i
}

// ToArgvOpt fills argv from l. The first argc entries are required, the rest
// of argv holds optional arguments. It returns the number of optional
// arguments read.
//
// Missing required arguments and arguments left over after argv is full both
// show the usage message and fail with an error matching ErrUsage.
func ToArgvOpt(r Reporter, l Words, argc int, argv []string) (int, error) {
	if argc > len(argv) {
		panic("argutil: argc larger than argv")
	}

	if ReadArgs(&l, argv[:argc]) < argc {
		return 0, usage(r, ErrTooFewArgs)
	}

	n := ReadArgs(&l, argv[argc:])
	if len(l) != 0 {
		return 0, usage(r, ErrTooManyArgs)
	}
	return n, nil
}

// ToArgv fills argv from l, requiring exactly len(argv) words.
func ToArgv(r Reporter, l Words, argv []string) error {
	_, err := ToArgvOpt(r, l, len(argv), argv)
	return err
}
