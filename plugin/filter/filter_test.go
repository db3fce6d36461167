package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFields() map[string]any {
	return map[string]any{
		"name":       "Free Speech",
		"difficulty": int64(4),
		"incidence":  "high",
		"confidence": int64(2),
		"studied":    true,
		"topic":      "Fundamental Rights",
		"discipline": "Constitutional Law",
	}
}

func TestParseAndMatch(t *testing.T) {
	env, err := Env()
	require.NoError(t, err)

	tests := []struct {
		expression string
		want       bool
	}{
		{`difficulty >= 4`, true},
		{`difficulty > 4`, false},
		{`incidence == "high"`, true},
		{`incidence == "low"`, false},
		{`studied && confidence <= 2`, true},
		{`!studied`, false},
		{`name.contains("Speech")`, true},
		{`discipline == "Constitutional Law" && difficulty >= 3`, true},
	}
	for _, tt := range tests {
		f, err := Parse(env, tt.expression)
		require.NoError(t, err, tt.expression)
		got, err := f.Match(testFields())
		require.NoError(t, err, tt.expression)
		assert.Equal(t, tt.want, got, tt.expression)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	env, err := Env()
	require.NoError(t, err)

	for _, expression := range []string{
		"",
		`difficulty >`,
		`unknown_field == 1`,
		`difficulty + 1`, // not boolean
	} {
		_, err := Parse(env, expression)
		assert.Error(t, err, expression)
	}
}
