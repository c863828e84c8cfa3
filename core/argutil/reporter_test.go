package argutil

import "fmt"

// recorder is a Reporter that remembers what it was asked to show.
type recorder struct {
	usages   int
	warnings []string
}

func (r *recorder) Usage() {
	r.usages++
}

func (r *recorder) Warnf(format string, a ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, a...))
}
