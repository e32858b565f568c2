package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The shape mirrors the unit alias overlay, the main consumer of this
// validator: a map of alias strings plus per-ingredient suggestion lists.
const overlaySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"aliases": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"suggestions": {
			"type": "object",
			"additionalProperties": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1
			}
		}
	},
	"required": ["aliases"]
}`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(overlaySchema), 0600))
	return path
}

func TestValidateBytes(t *testing.T) {
	schemaPath := writeSchema(t)
	v := NewSchemaValidator()

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid overlay",
			data: `{"aliases": {"ltr": "liters"}, "suggestions": {"ghee": ["tablespoon", "grams"]}}`,
		},
		{
			name: "aliases only",
			data: `{"aliases": {}}`,
		},
		{
			name:    "missing required section",
			data:    `{"suggestions": {"ghee": ["grams"]}}`,
			wantErr: "required",
		},
		{
			name:    "alias maps to a number",
			data:    `{"aliases": {"ltr": 5}}`,
			wantErr: "aliases",
		},
		{
			name:    "empty suggestion list",
			data:    `{"aliases": {}, "suggestions": {"ghee": []}}`,
			wantErr: "suggestions",
		},
		{
			name:    "not JSON at all",
			data:    `{"aliases": }`,
			wantErr: "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFileMissingData(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateFile(filepath.Join(t.TempDir(), "absent.json"), writeSchema(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestValidateBytesMissingSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), filepath.Join(t.TempDir(), "absent.schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestCompiledSchemasAreCached(t *testing.T) {
	schemaPath := writeSchema(t)
	v := NewSchemaValidator().(*validator)

	data := []byte(`{"aliases": {"gm": "grams"}}`)
	require.NoError(t, v.ValidateBytes(data, schemaPath))
	require.Len(t, v.schemas, 1)

	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1, "repeat validations reuse the compiled schema")
}
