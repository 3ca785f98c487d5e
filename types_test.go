package vogon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  TypeCode
	}{
		{"string", "x", TypeString},
		{"nil_is_string", nil, TypeString},
		{"bool", true, TypeBoolean},
		{"int", 1, TypeNumber},
		{"float64", 1.5, TypeNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inferType(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := inferType([]byte("blob"))
		var typeErr *UnknownTypeError
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestDescriptionFromRow(t *testing.T) {
	t.Run("nullability_follows_type", func(t *testing.T) {
		desc, err := descriptionFromRow(
			[]string{"name", "score", "active", "note"},
			[]interface{}{"x", 1.0, true, nil},
		)
		require.NoError(t, err)
		require.Len(t, desc, 4)

		assert.Equal(t, Column{Name: "name", Type: TypeString, Nullable: true}, desc[0])
		assert.Equal(t, Column{Name: "score", Type: TypeNumber, Nullable: false}, desc[1])
		assert.Equal(t, Column{Name: "active", Type: TypeBoolean, Nullable: false}, desc[2])
		// Nulls are reported as nullable strings.
		assert.Equal(t, Column{Name: "note", Type: TypeString, Nullable: true}, desc[3])
	})

	t.Run("unknown_type_propagates", func(t *testing.T) {
		_, err := descriptionFromRow([]string{"a"}, []interface{}{[]byte("blob")})
		var typeErr *UnknownTypeError
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestTypeCode_String(t *testing.T) {
	assert.Equal(t, "STRING", TypeString.String())
	assert.Equal(t, "NUMBER", TypeNumber.String())
	assert.Equal(t, "BOOLEAN", TypeBoolean.String())
	assert.Equal(t, "UNKNOWN", TypeCode(0).String())
}

func TestJobStatus_Active(t *testing.T) {
	for _, s := range []JobStatus{StatusSubmitted, StatusQueued, StatusRunning, StatusUnknown} {
		assert.True(t, s.Active(), string(s))
		assert.False(t, s.Terminal(), string(s))
	}
	for _, s := range []JobStatus{StatusSucceeded, StatusFailed, StatusTimeout, StatusCancelled, JobStatus("GARBAGE")} {
		assert.False(t, s.Active(), string(s))
		assert.True(t, s.Terminal(), string(s))
	}
}
