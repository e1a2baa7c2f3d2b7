package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/csv-wizard/internal/config"
	"github.com/ginjaninja78/csv-wizard/internal/xlsxexport"
)

const supersetFile = "Name,Code,Longitude,Latitude,Ellipsoidal height\n" +
	"P1,C,10.0,20.0,5.0\n" +
	"P2,C,11.0,21.0,6.0\n"

func init() {
	color.NoColor = true
}

// execute runs the root command with fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile, baseDir, verbose = config.DefaultConfigFile, "", false
	sortBy, ascending = "", false
	dryRun, assumeYes = false, false
	previewPage = 1
	exportOut, exportSheet = "", xlsxexport.DefaultSheetName

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func pointDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestList(t *testing.T) {
	dir := pointDir(t, map[string]string{
		"a.csv": "Name,Longitude,Latitude,Ellipsoidal height\n",
		"b.csv": "1,2.0,3.0,4.0\n",
	})

	out, err := execute(t, "", "list", "--dir", dir, "--sort", "name", "--asc")
	require.NoError(t, err)
	assert.Contains(t, out, "a.csv")
	assert.Contains(t, out, "EMLID")
	assert.Contains(t, out, "CIVIL3D")
	assert.Less(t, strings.Index(out, "a.csv"), strings.Index(out, "b.csv"))
}

func TestList_BadSort(t *testing.T) {
	_, err := execute(t, "", "list", "--dir", t.TempDir(), "--sort", "size")
	require.Error(t, err)
}

func TestConvert_ByOrdinalWithYes(t *testing.T) {
	dir := pointDir(t, map[string]string{"pts.csv": supersetFile})

	out, err := execute(t, "", "convert", "0", "--dir", dir, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "pts.csv has been converted from: (DAVIES_V2) to (CIVIL3D)")
	assert.Contains(t, out, "Processed 2 rows out of 3 total rows")

	got, err := os.ReadFile(filepath.Join(dir, "pts.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Name,Longitude,Latitude,Ellipsoidal height\r\n1,10.0,20.0,5.0\r\n2,11.0,21.0,6.0\r\n", string(got))
}

func TestConvert_Confirmation(t *testing.T) {
	dir := pointDir(t, map[string]string{"pts.csv": supersetFile})
	path := filepath.Join(dir, "pts.csv")

	out, err := execute(t, "n\n", "convert", path, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Do you want to convert pts.csv (EMLID)? [y/N]")
	assert.Contains(t, out, "Conversion cancelled.")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, supersetFile, string(got))

	out, err = execute(t, "YES\n", "convert", path, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "has been converted")
}

func TestConvert_DryRunLeavesFile(t *testing.T) {
	dir := pointDir(t, map[string]string{"pts.csv": supersetFile})

	out, err := execute(t, "", "convert", "0", "--dir", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would be converted (dry run)")

	got, err := os.ReadFile(filepath.Join(dir, "pts.csv"))
	require.NoError(t, err)
	assert.Equal(t, supersetFile, string(got))
}

func TestConvert_MissingColumn(t *testing.T) {
	// Every coordinate column is present, so the superset branch is chosen
	// and then fails on the missing Name column.
	content := "Point,Longitude,Latitude,Ellipsoidal height\nP1,1.0,2.0,3.0\n"
	dir := pointDir(t, map[string]string{"pts.csv": content})

	out, err := execute(t, "", "convert", "0", "--dir", dir, "-y")
	require.ErrorIs(t, err, errConversionFailed)
	assert.Contains(t, out, "Conversion of pts.csv failed")

	got, err := os.ReadFile(filepath.Join(dir, "pts.csv"))
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestConvert_OrdinalOutOfRange(t *testing.T) {
	_, err := execute(t, "", "convert", "3", "--dir", t.TempDir(), "-y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file numbered 3")
}

func TestPreview(t *testing.T) {
	dir := pointDir(t, map[string]string{"pts.csv": supersetFile})

	out, err := execute(t, "", "preview", "0", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "pts.csv (page 1 of 1)")
	assert.Contains(t, out, "P2")

	_, err = execute(t, "", "preview", "0", "--dir", dir, "--page", "2")
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := pointDir(t, map[string]string{"pts.csv": supersetFile})
	out := filepath.Join(dir, "out.xlsx")

	stdout, err := execute(t, "", "export", "0", "--dir", dir, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 3 rows from pts.csv")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxexport.DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])

	got, err := os.ReadFile(filepath.Join(dir, "pts.csv"))
	require.NoError(t, err)
	assert.Equal(t, supersetFile, string(got))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "CSV Wizard")
	assert.Contains(t, out, "Version:")
}
