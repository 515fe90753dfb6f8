package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectoriesSkipsEmptyEntries(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b")

	require.NoError(t, EnsureDirectories(dir, "", dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestArchiveFileCopiesAndKeepsOriginal(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "out.csv")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n"), 0644))

	archive := filepath.Join(base, "archive")
	require.NoError(t, ArchiveFile(src, archive))

	copied, err := os.ReadFile(filepath.Join(archive, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(copied))

	// The original stays where consumers poll for it.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestArchiveFileMissingSourceFails(t *testing.T) {
	base := t.TempDir()
	err := ArchiveFile(filepath.Join(base, "missing.csv"), filepath.Join(base, "archive"))
	assert.Error(t, err)
}

func TestWriteErrorLogCreatesUniqueFiles(t *testing.T) {
	dir := t.TempDir()

	first, err := WriteErrorLog(dir, []string{"shop: boom"})
	require.NoError(t, err)
	second, err := WriteErrorLog(dir, []string{"shop: boom again"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shop: boom")
}
