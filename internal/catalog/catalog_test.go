package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/csv-wizard/internal/catalog"
	"github.com/ginjaninja78/csv-wizard/internal/classifier"
)

func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Date(2024, 7, 8, 12, 0, 0, 0, time.UTC)

	files := []struct {
		name    string
		content string
		age     time.Duration
	}{
		{"emlid.csv", "Name,Longitude,Latitude,Ellipsoidal height\nP1,1,2,3\n", 3 * time.Hour},
		{"civil.csv", "1,-122.1,37.5,10\n", 2 * time.Hour},
		{"other.csv", "Point,X,Y\n", 1 * time.Hour},
		{"empty.csv", "", 0},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		require.NoError(t, os.WriteFile(path, []byte(f.content), 0o644))
		mod := base.Add(-f.age)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("skip"), 0o644))
	return dir
}

func TestBuild(t *testing.T) {
	dir := seed(t)

	entries, err := catalog.Build(catalog.Options{Dir: dir, SortBy: "date", Descending: false})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	want := []struct {
		name string
		tag  classifier.FormatTag
	}{
		{"emlid.csv", classifier.EMLID},
		{"civil.csv", classifier.CIVIL3D},
		{"other.csv", classifier.Unknown},
		{"empty.csv", classifier.Unknown},
	}
	for i, w := range want {
		assert.Equal(t, i, entries[i].Index)
		assert.Equal(t, w.name, entries[i].Name)
		assert.Equal(t, w.tag, entries[i].Tag)
		assert.NoError(t, entries[i].Err)
	}
}

func TestBuild_SortByNameDescending(t *testing.T) {
	entries, err := catalog.Build(catalog.Options{Dir: seed(t), SortBy: "name", Descending: true})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "other.csv", entries[0].Name)
	assert.Equal(t, "civil.csv", entries[3].Name)
}

func TestSelectAndResolve(t *testing.T) {
	entries, err := catalog.Build(catalog.Options{Dir: seed(t), SortBy: "name"})
	require.NoError(t, err)

	entry, err := catalog.Select(entries, 1)
	require.NoError(t, err)
	assert.Equal(t, "emlid.csv", entry.Name)

	_, err = catalog.Select(entries, 4)
	assert.Error(t, err)
	_, err = catalog.Select(entries, -1)
	assert.Error(t, err)

	load := func() ([]catalog.Entry, error) { return entries, nil }

	path, err := catalog.Resolve("2", load)
	require.NoError(t, err)
	assert.Equal(t, entries[2].Path, path)

	path, err = catalog.Resolve("/tmp/some.csv", load)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/some.csv", path)

	_, err = catalog.Resolve("9", load)
	assert.Error(t, err)

	_, err = catalog.Resolve("0", func() ([]catalog.Entry, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
}
