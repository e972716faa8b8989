package learning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "categories.json")
}

func TestFileStoreRoundtrip(t *testing.T) {
	path := tempStorePath(t)
	fs := NewFileStore(path)

	require.NoError(t, fs.Upsert(GlobalScope, "капучино", "Еда и напитки"))
	require.NoError(t, fs.Upsert(UserScope(1), "кириешки", "Еда и напитки"))

	cat, ok, err := fs.Get(GlobalScope, "капучино")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Еда и напитки", cat)

	_, ok, err = fs.Get(UserScope(2), "кириешки")
	require.NoError(t, err)
	assert.False(t, ok)

	terms, err := fs.Terms(UserScope(1))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"кириешки": "Еда и напитки"}, terms)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := tempStorePath(t)

	fs := NewFileStore(path)
	require.NoError(t, fs.Upsert(GlobalScope, "квас", "Еда и напитки"))

	reopened := NewFileStore(path)
	cat, ok, err := reopened.Get(GlobalScope, "квас")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Еда и напитки", cat)
}

func TestFileStoreCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "categories.json")
	fs := NewFileStore(path)

	_, ok, err := fs.Get(GlobalScope, "нет")
	require.NoError(t, err)
	assert.False(t, ok)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestFileStoreHealsCorruptFile(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	fs := NewFileStore(path)
	_, ok, err := fs.Get(GlobalScope, "капучино")
	require.NoError(t, err)
	assert.False(t, ok)

	// Хранилище работоспособно после переинициализации.
	require.NoError(t, fs.Upsert(GlobalScope, "капучино", "Еда и напитки"))
	cat, ok, err := fs.Get(GlobalScope, "капучино")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Еда и напитки", cat)
}

func TestFileStoreHealsMissingMaps(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"global": null}`), 0644))

	fs := NewFileStore(path)
	require.NoError(t, fs.Upsert(UserScope(1), "кириешки", "Еда и напитки"))

	cat, ok, err := fs.Get(UserScope(1), "кириешки")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Еда и напитки", cat)
}
