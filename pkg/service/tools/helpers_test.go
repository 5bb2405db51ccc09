package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

func TestExtractStringParam(t *testing.T) {
	args := map[string]any{"name": "value", "number": 42, "empty": ""}

	value, err := ExtractStringParam(args, "name")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	_, err = ExtractStringParam(args, "absent")
	assert.True(t, errors.HasCode(err, errors.CodeMissingParameter))

	_, err = ExtractStringParam(args, "number")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidParameter))

	_, err = ExtractStringParam(args, "empty")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidParameter))
}

func TestExtractOptionalStringParam(t *testing.T) {
	args := map[string]any{"set": "yes", "wrong": 1}

	assert.Equal(t, "yes", ExtractOptionalStringParam(args, "set", "default"))
	assert.Equal(t, "default", ExtractOptionalStringParam(args, "absent", "default"))
	assert.Equal(t, "default", ExtractOptionalStringParam(args, "wrong", "default"))
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{"float64 whole", float64(7), 7, false},
		{"float64 fractional", 7.5, 0, true},
		{"int", int(3), 3, false},
		{"int64", int64(9), 9, false},
		{"string", "7", 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toInt64(tt.value, "limit")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.CodeInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractStringArrayParam(t *testing.T) {
	labels, err := ExtractStringArrayParam(map[string]any{"labels": []any{"bug", "urgent"}}, "labels")
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "urgent"}, labels)

	labels, err = ExtractStringArrayParam(map[string]any{}, "labels")
	require.NoError(t, err)
	assert.Nil(t, labels)

	_, err = ExtractStringArrayParam(map[string]any{"labels": []any{"bug", 2}}, "labels")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidParameter))

	_, err = ExtractStringArrayParam(map[string]any{"labels": "bug"}, "labels")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidParameter))
}
