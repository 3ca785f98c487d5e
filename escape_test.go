package vogon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"plain_string", "hello", "'hello'"},
		{"embedded_quote", "O'Brien", "'O``Brien'"},
		{"wildcard_passthrough", "*", "*"},
		{"bool_true", true, "TRUE"},
		{"bool_false", false, "FALSE"},
		{"int", 42, "42"},
		{"negative_int", -7, "-7"},
		{"int64", int64(9000000000), "9000000000"},
		{"float", 1.5, "1.5"},
		{"string_slice", []string{"a", "b"}, "'a', 'b'"},
		{"mixed_slice", []interface{}{"a", 1, true}, "'a', 1, TRUE"},
		{"nested_wildcard_in_slice", []string{"*", "x"}, "*, 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Escape(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported_type", func(t *testing.T) {
		_, err := Escape(map[string]string{"a": "b"})
		var typeErr *UnknownTypeError
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestApplyParameters(t *testing.T) {
	t.Run("no_parameters", func(t *testing.T) {
		got, err := ApplyParameters("SELECT * FROM t", nil)
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM t", got)
	})

	t.Run("named_substitution", func(t *testing.T) {
		got, err := ApplyParameters(
			"SELECT * FROM t WHERE name = %(name)s AND active = %(active)s AND n > %(n)s",
			map[string]interface{}{"name": "O'Brien", "active": true, "n": 10},
		)
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM t WHERE name = 'O``Brien' AND active = TRUE AND n > 10", got)
	})

	t.Run("repeated_placeholder", func(t *testing.T) {
		got, err := ApplyParameters(
			"SELECT %(ts)s, %(ts)s",
			map[string]interface{}{"ts": "2021071600"},
		)
		require.NoError(t, err)
		assert.Equal(t, "SELECT '2021071600', '2021071600'", got)
	})

	t.Run("list_parameter", func(t *testing.T) {
		got, err := ApplyParameters(
			"SELECT * FROM t WHERE id IN (%(ids)s)",
			map[string]interface{}{"ids": []string{"a", "b"}},
		)
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM t WHERE id IN ('a', 'b')", got)
	})

	t.Run("bad_parameter_value", func(t *testing.T) {
		_, err := ApplyParameters("SELECT %(x)s", map[string]interface{}{"x": struct{}{}})
		require.Error(t, err)
	})
}

func TestReplaceQuotes(t *testing.T) {
	assert.Equal(t, "SELECT `col` FROM `t`", ReplaceQuotes(`SELECT "col" FROM "t"`))
	assert.Equal(t, "SELECT 1", ReplaceQuotes("SELECT 1"))
}
