package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overlayFixture struct {
	Aliases     map[string]string   `json:"aliases"`
	Suggestions map[string][]string `json:"suggestions"`
}

func TestLoadJSON(t *testing.T) {
	t.Run("reads into the target struct", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overlay.json")
		content := `{"aliases": {"ltr": "liters"}, "suggestions": {"ghee": ["tablespoon"]}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		var got overlayFixture
		require.NoError(t, LoadJSON(path, &got))
		assert.Equal(t, "liters", got.Aliases["ltr"])
		assert.Equal(t, []string{"tablespoon"}, got.Suggestions["ghee"])
	})

	t.Run("missing file", func(t *testing.T) {
		var got overlayFixture
		err := LoadJSON(filepath.Join(t.TempDir(), "absent.json"), &got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"aliases":`), 0600))

		var got overlayFixture
		err := LoadJSON(path, &got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal JSON")
	})
}

func TestSaveJSON(t *testing.T) {
	t.Run("round-trips indented JSON with restricted permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overlay.json")
		original := overlayFixture{
			Aliases:     map[string]string{"gm": "grams", "kilo": "kilograms"},
			Suggestions: map[string][]string{"dal": {"grams", "cup"}},
		}

		require.NoError(t, SaveJSON(path, original))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "\n", "output is indented for hand editing")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		var loaded overlayFixture
		require.NoError(t, LoadJSON(path, &loaded))
		assert.Equal(t, original, loaded)
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		err := SaveJSON(filepath.Join(t.TempDir(), "bad.json"), map[string]any{"ch": make(chan int)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal data")
	})
}
