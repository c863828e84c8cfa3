package argutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckNoOptions(t *testing.T) {
	cases := map[string]struct {
		words    Words
		expected Words
	}{
		"empty":            {Words{}, Words{}},
		"plain":            {Words{"a", "b"}, Words{"a", "b"}},
		"terminator":       {Words{"--", "a"}, Words{"a"}},
		"terminator-only":  {Words{"--"}, Words{}},
		"dash-is-argument": {Words{"-", "a"}, Words{"-", "a"}},
		"option-after-arg": {Words{"a", "-x"}, Words{"a", "-x"}},
		"after-terminator": {Words{"--", "-x"}, Words{"-x"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			r := &recorder{}
			l := tc.words

			require.NoError(t, CheckNoOptions(r, &l))
			assert.ElementsMatch(t, tc.expected, l)
			assert.Equal(t, 0, r.usages)
			assert.Empty(t, r.warnings)
		})
	}
}

func TestCheckNoOptions_rejects(t *testing.T) {
	for _, words := range []Words{
		{"-x"},
		{"-x", "a"},
		{"--long"},
		{"-5"},
	} {
		t.Run(words[0], func(t *testing.T) {
			r := &recorder{}
			l := words

			err := CheckNoOptions(r, &l)
			assert.ErrorIs(t, err, ErrOptionsNotAllowed)
			assert.ErrorIs(t, err, ErrUsage)
			assert.Equal(t, 1, r.usages)
			assert.Len(t, r.warnings, 1)
			assert.Equal(t, words, l, "list must not advance on failure")
		})
	}
}

func TestCheckNoOptions_help(t *testing.T) {
	r := &recorder{}
	l := Words{"--help"}

	assert.ErrorIs(t, CheckNoOptions(r, &l), ErrHelp)
	assert.Equal(t, 0, r.usages)
}

func TestCheckNoOptions_fresh(t *testing.T) {
	// A failed parse must not leave state behind for the next caller.
	bad := Words{"-x"}
	assert.Error(t, CheckNoOptions(Discard, &bad))

	good := Words{"a"}
	assert.NoError(t, CheckNoOptions(Discard, &good))
	assert.Equal(t, Words{"a"}, good)
}
