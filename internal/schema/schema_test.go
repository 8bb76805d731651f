package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pointSchema = &Schema{
	Name: "test-point",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"x", "y"},
		"properties": map[string]any{
			"x": map[string]any{"type": "number"},
			"y": map[string]any{"type": "number", "minimum": 0},
		},
	},
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func TestDecode_JSONAndYAML(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json", `{"x": 1.5, "y": 2}`},
		{"yaml", "x: 1.5\ny: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p point
			require.NoError(t, Decode(pointSchema, []byte(tt.raw), &p))
			assert.Equal(t, point{X: 1.5, Y: 2}, p)
		})
	}
}

func TestDecode_SchemaViolation(t *testing.T) {
	var p point
	err := Decode(pointSchema, []byte(`{"x": 1, "y": -3}`), &p)
	require.Error(t, err)

	var ide *ErrInvalidDocument
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, "test-point", ide.Schema)
}

func TestDecode_MissingField(t *testing.T) {
	var p point
	err := Decode(pointSchema, []byte("x: 1\n"), &p)
	require.Error(t, err)
}

func TestDecodeFile_RecordsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "point.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: 1\ny: -1\n"), 0o644))

	var p point
	err := DecodeFile(pointSchema, path, &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestDecodeFile_Missing(t *testing.T) {
	var p point
	err := DecodeFile(pointSchema, filepath.Join(t.TempDir(), "nope.json"), &p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
