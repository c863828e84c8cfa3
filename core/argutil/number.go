package argutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds of the C integer types builtins exchange with the shell.
const (
	MaxInt    = math.MaxInt32
	MinInt    = math.MinInt32
	MaxUint   = math.MaxUint32
	MaxUint32 = math.MaxUint32
)

var (
	// ErrNotNumber indicates the text is not a decimal integer.
	ErrNotNumber = errors.New("invalid number")

	// ErrOutOfRange indicates the text is a number that does not fit the
	// target type.
	ErrOutOfRange = errors.New("value out of range")

	// ErrNegative is returned by the parsers that only accept non-negative
	// values. It matches ErrOutOfRange.
	ErrNegative = fmt.Errorf("%w: negative", ErrOutOfRange)
)

// NumError records a failed conversion.
type NumError struct {
	Func string // the failing function (ParseInt, ParseFD, ...)
	Num  string // the input
	Err  error  // ErrNotNumber, ErrOutOfRange or ErrNegative
}

func (e *NumError) Error() string {
	return "argutil." + e.Func + ": parsing " + strconv.Quote(e.Num) + ": " + e.Err.Error()
}

func (e *NumError) Unwrap() error {
	return e.Err
}

// LegalNumber reports whether s is a decimal integer and returns its value.
//
// Leading white space and trailing blanks are ignored, a single sign is
// allowed. Values that overflow 64 bits are not legal numbers.
func LegalNumber(s string) (int64, bool) {
	trimmed := strings.TrimLeft(s, " \t\n\v\f\r")
	trimmed = strings.TrimRight(trimmed, " \t")
	if trimmed == "" {
		return 0, false
	}

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseRange(fn, s string, min int64, max uint64) (int64, error) {
	value, ok := LegalNumber(s)
	switch {
	case !ok:
		return 0, &NumError{Func: fn, Num: s, Err: ErrNotNumber}
	case value < 0 && min == 0:
		return 0, &NumError{Func: fn, Num: s, Err: ErrNegative}
	case value < min, value >= 0 && uint64(value) > max:
		return 0, &NumError{Func: fn, Num: s, Err: ErrOutOfRange}
	}
	return value, nil
}

// ParseInt converts s to an integer in [MinInt, MaxInt].
func ParseInt(s string) (int, error) {
	value, err := parseRange("ParseInt", s, MinInt, MaxInt)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

// IntVar is ParseInt storing into p. p is untouched on failure.
func IntVar(s string, p *int) error {
	value, err := ParseInt(s)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// ParseUint converts s to an integer in [0, MaxUint], the range of a C
// unsigned int.
func ParseUint(s string) (uint, error) {
	value, err := parseRange("ParseUint", s, 0, MaxUint)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

// UintVar is ParseUint storing into p. p is untouched on failure.
func UintVar(s string, p *uint) error {
	value, err := ParseUint(s)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// ParseUint32 converts s to an integer in [0, MaxUint32].
func ParseUint32(s string) (uint32, error) {
	value, err := parseRange("ParseUint32", s, 0, MaxUint32)
	if err != nil {
		return 0, err
	}
	return uint32(value), nil
}

// Uint32Var is ParseUint32 storing into p. p is untouched on failure.
func Uint32Var(s string, p *uint32) error {
	value, err := ParseUint32(s)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// ParsePositiveInt converts s to an integer in [0, MaxInt]. Negative input
// fails with ErrNegative.
func ParsePositiveInt(s string) (int, error) {
	value, err := ParseInt(s)
	if err != nil {
		err.(*NumError).Func = "ParsePositiveInt"
		return 0, err
	}
	if value < 0 {
		return 0, &NumError{Func: "ParsePositiveInt", Num: s, Err: ErrNegative}
	}
	return value, nil
}

// PositiveIntVar is ParsePositiveInt storing into p. p is untouched on
// failure.
func PositiveIntVar(s string, p *int) error {
	value, err := ParsePositiveInt(s)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// ParseFD converts s to a file descriptor.
//
// Unlike the other parsers it reports its own failures: text that is not a
// number shows the usage message and the returned error matches ErrUsage,
// numbers outside [0, MaxInt] produce a warning.
func ParseFD(r Reporter, s string) (int, error) {
	fd, err := ParsePositiveInt(s)
	if err == nil {
		return fd, nil
	}

	err.(*NumError).Func = "ParseFD"
	switch {
	case errors.Is(err, ErrNotNumber):
		return 0, usage(r, err)
	case errors.Is(err, ErrNegative):
		r.Warnf("Input fd negative!")
	default:
		r.Warnf("Input fd too large!")
	}
	return 0, err
}

// FDVar is ParseFD storing into p. p is untouched on failure.
func FDVar(r Reporter, s string, p *int) error {
	fd, err := ParseFD(r, s)
	if err != nil {
		return err
	}
	*p = fd
	return nil
}

// MinUnsigned returns the smaller of x and y.
func MinUnsigned(x, y uint64) uint64 {
	if x > y {
		return y
	}
	return x
}
