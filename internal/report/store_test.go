package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	personData := map[string]interface{}{
		"name":          "Jane Doe",
		"location":      "Pune",
		"short_summary": "Test.",
	}

	filePath, err := store.Save("Jane Doe", personData)
	require.NoError(t, err)

	t.Run("filename format", func(t *testing.T) {
		base := filepath.Base(filePath)
		assert.Regexp(t, regexp.MustCompile(`^Jane_Doe_report_\d{8}_\d{6}\.json$`), base)
	})

	t.Run("content round-trips", func(t *testing.T) {
		data, err := os.ReadFile(filePath)
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Jane Doe", got["name"])
		assert.Equal(t, "Pune", got["location"])
	})
}

func TestStore_Save_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	store := NewStore(dir)

	filePath, err := store.Save("John Smith", map[string]interface{}{"name": "John Smith"})
	require.NoError(t, err)
	assert.FileExists(t, filePath)
}

func TestStore_Save_EmptyName(t *testing.T) {
	store := NewStore(t.TempDir())

	filePath, err := store.Save("  ", map[string]interface{}{})
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(filePath), "unknown_report_")
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	filePath, err := store.Save("Jane Doe", map[string]interface{}{"name": "Jane Doe"})
	require.NoError(t, err)

	t.Run("reads saved file", func(t *testing.T) {
		data, err := store.Load(filePath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Jane Doe")
	})

	t.Run("rejects path outside dir", func(t *testing.T) {
		_, err := store.Load("/etc/passwd")
		assert.Error(t, err)
	})
}
