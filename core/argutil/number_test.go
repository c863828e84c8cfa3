package argutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleParseInt() {
	fmt.Println(ParseInt("  -42"))
	_, err := ParseInt("12x")
	fmt.Println(err)
	_, err = ParseInt("99999999999")
	fmt.Println(err)

	// Output: -42 <nil>
	// argutil.ParseInt: parsing "12x": invalid number
	// argutil.ParseInt: parsing "99999999999": value out of range
}

func TestLegalNumber(t *testing.T) {
	cases := []struct {
		in    string
		value int64
		ok    bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"+42", 42, true},
		{"-42", -42, true},
		{" \t\n42", 42, true},
		{"42 \t", 42, true},
		{"007", 7, true},
		{"9223372036854775807", math.MaxInt64, true},
		{"-9223372036854775808", math.MinInt64, true},

		{"", 0, false},
		{" ", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
		{"1 2", 0, false},
		{"42\n", 0, false},
		{"+", 0, false},
		{"-", 0, false},
		{"0x10", 0, false},
		{"1_000", 0, false},
		{"9223372036854775808", 0, false},
	}

	for _, tc := range cases {
		t.Run(strconv.Quote(tc.in), func(t *testing.T) {
			value, ok := LegalNumber(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestIntVar(t *testing.T) {
	cases := []struct {
		in       string
		expected int
		err      error
	}{
		{"0", 0, nil},
		{"5", 5, nil},
		{"-5", -5, nil},
		{"2147483647", math.MaxInt32, nil},
		{"-2147483648", math.MinInt32, nil},
		{"2147483648", 0, ErrOutOfRange},
		{"-2147483649", 0, ErrOutOfRange},
		{"99999999999", 0, ErrOutOfRange},
		{"abc", 0, ErrNotNumber},
		{"12x", 0, ErrNotNumber},
		{"", 0, ErrNotNumber},
	}

	for _, tc := range cases {
		t.Run(strconv.Quote(tc.in), func(t *testing.T) {
			const sentinel = 1234
			out := sentinel
			err := IntVar(tc.in, &out)

			if tc.err == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, out)
				return
			}

			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, sentinel, out, "output must be untouched on failure")

			var numErr *NumError
			require.True(t, errors.As(err, &numErr))
			assert.Equal(t, "ParseInt", numErr.Func)
			assert.Equal(t, tc.in, numErr.Num)
		})
	}
}

func TestIntVar_fullRange(t *testing.T) {
	for _, v := range []int64{math.MinInt32, -65536, -1, 0, 1, 255, 65536, math.MaxInt32} {
		var out int
		require.NoError(t, IntVar(strconv.FormatInt(v, 10), &out))
		assert.Equal(t, int(v), out)
	}
}

func TestUint32Var(t *testing.T) {
	var out uint32 = 7

	assert.ErrorIs(t, Uint32Var("99999999999", &out), ErrOutOfRange)
	assert.EqualValues(t, 7, out)

	assert.ErrorIs(t, Uint32Var("4294967296", &out), ErrOutOfRange)
	assert.ErrorIs(t, Uint32Var("-1", &out), ErrNegative)
	assert.ErrorIs(t, Uint32Var("-1", &out), ErrOutOfRange)
	assert.ErrorIs(t, Uint32Var("one", &out), ErrNotNumber)
	assert.EqualValues(t, 7, out)

	require.NoError(t, Uint32Var("4294967295", &out))
	assert.EqualValues(t, uint32(math.MaxUint32), out)
}

func TestUintVar(t *testing.T) {
	var out uint = 7

	assert.ErrorIs(t, UintVar("-3", &out), ErrNegative)
	assert.ErrorIs(t, UintVar("3.0", &out), ErrNotNumber)
	assert.ErrorIs(t, UintVar("4294967296", &out), ErrOutOfRange)
	assert.ErrorIs(t, UintVar("9223372036854775807", &out), ErrOutOfRange)
	assert.EqualValues(t, 7, out)

	require.NoError(t, UintVar("4294967295", &out))
	assert.EqualValues(t, 4294967295, out)
}

func TestPositiveIntVar(t *testing.T) {
	v := 99

	err := PositiveIntVar("-5", &v)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, err, ErrNegative)
	assert.Equal(t, 99, v)

	assert.ErrorIs(t, PositiveIntVar("2147483648", &v), ErrOutOfRange)
	assert.ErrorIs(t, PositiveIntVar("five", &v), ErrNotNumber)
	assert.Equal(t, 99, v)

	require.NoError(t, PositiveIntVar("5", &v))
	assert.Equal(t, 5, v)

	require.NoError(t, PositiveIntVar("0", &v))
	assert.Equal(t, 0, v)
}

func TestFDVar(t *testing.T) {
	cases := map[string]struct {
		in       string
		expected int
		usages   int
		warnings []string
		usageErr bool
	}{
		"valid":     {in: "3", expected: 3},
		"stdin":     {in: "0", expected: 0},
		"malformed": {in: "x", usages: 1, usageErr: true},
		"empty":     {in: "", usages: 1, usageErr: true},
		"too-large": {in: "2147483648", warnings: []string{"Input fd too large!"}},
		"negative":  {in: "-1", warnings: []string{"Input fd negative!"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			r := &recorder{}
			fd := -100
			err := FDVar(r, tc.in, &fd)

			assert.Equal(t, tc.usages, r.usages)
			assert.Equal(t, tc.warnings, r.warnings)

			if tc.usages == 0 && tc.warnings == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, fd)
				return
			}

			require.Error(t, err)
			assert.Equal(t, -100, fd)
			assert.Equal(t, tc.usageErr, errors.Is(err, ErrUsage))
		})
	}
}

func TestStatus(t *testing.T) {
	r := &recorder{}

	_, fdErr := ParseFD(r, "big")
	_, rangeErr := ParseFD(r, "4294967296")

	assert.Equal(t, ExecutionSuccess, Status(nil))
	assert.Equal(t, ExUsage, Status(fdErr))
	assert.Equal(t, ExecutionFailure, Status(rangeErr))
	assert.Equal(t, ExUsage, Status(ErrHelp))
	assert.Equal(t, ExecutionFailure, Status(ErrExecutionFailure))
}

func TestMinUnsigned(t *testing.T) {
	assert.EqualValues(t, 1, MinUnsigned(1, 2))
	assert.EqualValues(t, 1, MinUnsigned(2, 1))
	assert.EqualValues(t, 0, MinUnsigned(0, math.MaxUint64))
	assert.EqualValues(t, 3, MinUnsigned(3, 3))
}
