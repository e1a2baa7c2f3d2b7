package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/csv-wizard/pkg/utils"
)

func touch(t *testing.T, dir, name string, mod time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func names(entries []utils.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListCSVFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 7, 8, 9, 0, 0, 0, time.UTC)
	touch(t, dir, "b.csv", base.Add(2*time.Hour))
	touch(t, dir, "a.csv", base.Add(1*time.Hour))
	touch(t, dir, "c.CSV", base.Add(3*time.Hour))
	touch(t, dir, "notes.txt", base)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.csv"), 0o755))

	entries, err := utils.ListCSVFiles(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.csv", "b.csv", "c.CSV"}, names(entries))

	tests := []struct {
		sortBy     string
		descending bool
		want       []string
	}{
		{utils.SortByDate, false, []string{"a.csv", "b.csv", "c.CSV"}},
		{utils.SortByDate, true, []string{"c.CSV", "b.csv", "a.csv"}},
		{utils.SortByName, false, []string{"a.csv", "b.csv", "c.CSV"}},
		{utils.SortByName, true, []string{"c.CSV", "b.csv", "a.csv"}},
	}
	for _, tt := range tests {
		require.NoError(t, utils.SortFileEntries(entries, tt.sortBy, tt.descending))
		assert.Equal(t, tt.want, names(entries), "sort %s descending=%v", tt.sortBy, tt.descending)
	}

	assert.Error(t, utils.SortFileEntries(entries, "size", false))
}

func TestListCSVFiles_MissingDir(t *testing.T) {
	_, err := utils.ListCSVFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.csv")
	dst := filepath.Join(dir, "dst.csv")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n"), 0o644))

	require.NoError(t, utils.CopyFile(src, dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(got))
	assert.True(t, utils.FileExists(dst))
	assert.False(t, utils.FileExists(filepath.Join(dir, "nope")))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Documents"), utils.ExpandHome("~/Documents"))
	assert.Equal(t, "/abs/path", utils.ExpandHome("/abs/path"))
}
