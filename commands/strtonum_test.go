package commands

import (
	"testing"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos/vostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrtonum(t *testing.T) {
	cases := goldenTestSuite{
		"int":             {[]string{"strtonum", "42"}, argutil.ExecutionSuccess},
		"int-negative":    {[]string{"strtonum", "--", "-42"}, argutil.ExecutionSuccess},
		"int-overflow":    {[]string{"strtonum", "2147483648"}, argutil.ExecutionFailure},
		"uint":            {[]string{"strtonum", "-t", "uint", "7"}, argutil.ExecutionSuccess},
		"uint-overflow":   {[]string{"strtonum", "-t", "uint", "4294967296"}, argutil.ExecutionFailure},
		"uint32":          {[]string{"strtonum", "-t", "uint32", "4294967295"}, argutil.ExecutionSuccess},
		"uint32-overflow": {[]string{"strtonum", "-t", "uint32", "99999999999"}, argutil.ExecutionFailure},
		"pint-negative":   {[]string{"strtonum", "-t", "pint", "--", "-5"}, argutil.ExecutionFailure},
		"malformed":       {[]string{"strtonum", "abc"}, argutil.ExecutionFailure},
		"fd-malformed":    {[]string{"strtonum", "-t", "fd", "abc"}, argutil.ExUsage},
		"fd-too-large":    {[]string{"strtonum", "-t", "fd", "2147483648"}, argutil.ExecutionFailure},
	}

	cases.Run(t, Strtonum)
}

func TestStrtonum_badType(t *testing.T) {
	cmd := vostest.Command(Strtonum, "strtonum", "-t", "float", "1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err)

	assert.Equal(t, argutil.ExUsage, cmd.ExitStatus)
	assert.Contains(t, string(out), "strtonum: usage: ")
}

func TestUmin(t *testing.T) {
	cases := []struct {
		args     []string
		status   int
		expected string
	}{
		{[]string{"3", "10"}, argutil.ExecutionSuccess, "3\n"},
		{[]string{"10", "3"}, argutil.ExecutionSuccess, "3\n"},
		{[]string{"0", "4294967295"}, argutil.ExecutionSuccess, "0\n"},
		{[]string{"4294967295", "4294967294"}, argutil.ExecutionSuccess, "4294967294\n"},
		{[]string{"4294967296", "5"}, argutil.ExecutionFailure, "umin: 4294967296: value out of range\n"},
		{[]string{"--", "-1", "2"}, argutil.ExecutionFailure, "umin: -1: value out of range: negative\n"},
		{[]string{"1", "b"}, argutil.ExecutionFailure, "umin: b: invalid number\n"},
		{[]string{"1"}, argutil.ExUsage, "umin: usage: umin A B\n"},
	}

	for _, tc := range cases {
		cmd := vostest.Command(Umin, "umin", tc.args...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err)
		assert.Equal(t, tc.status, cmd.ExitStatus, "%q", tc.args)
		assert.Equal(t, tc.expected, string(out), "%q", tc.args)
	}
}
