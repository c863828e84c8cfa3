// Package argutil converts the textual arguments of a shell builtin into
// validated numbers, file descriptors and fixed-size argument vectors.
//
// Nothing in this package writes to a terminal on its own. Functions that
// need to show a usage message or a warning do it through the Reporter the
// caller passes in; the plain numeric parsers never report at all and leave
// that to the caller.
package argutil
