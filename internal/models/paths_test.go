package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	t.Setenv(EnvModelsDir, "")
	assert.Equal(t, DefaultModelsDir, Dir(""))
	assert.Equal(t, "/explicit", Dir("/explicit"))

	t.Setenv(EnvModelsDir, "/from-env")
	assert.Equal(t, "/from-env", Dir(""))
	// Explicit override still wins over the environment.
	assert.Equal(t, "/explicit", Dir("/explicit"))
}

func TestModelPath(t *testing.T) {
	assert.Equal(t, filepath.Join("m", "fr.json"), ModelPath("m", "fr"))
	assert.Equal(t, filepath.Join("m", "fr.json"), ModelPath("m", "fr.json"))
}

func TestListModelFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"fr.json", "en.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o750))

	paths, err := ListModelFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "en.json"),
		filepath.Join(dir, "fr.json"),
	}, paths)
}

func TestListModelFilesMissingDir(t *testing.T) {
	_, err := ListModelFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestValidateModelsDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ValidateModelsDir(dir))

	assert.Error(t, ValidateModelsDir(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	assert.Error(t, ValidateModelsDir(file))
}
