package xlsxexport_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/csv-wizard/internal/types"
	"github.com/ginjaninja78/csv-wizard/internal/xlsxexport"
)

var rows = []types.Row{
	types.CanonicalHeader(),
	{"1", "-122.41941550", "37.77492950", "12.300"},
	{"2", "-122.41950000", "37.77500000", "12.410"},
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	n, err := xlsxexport.Export(rows, &buf, xlsxexport.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, xlsxexport.DefaultSheetName, f.GetSheetName(0))

	got, err := f.GetRows(xlsxexport.DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Name", "Longitude", "Latitude", "Ellipsoidal height"}, got[0])
	assert.Equal(t, []string{"1", "-122.41941550", "37.77492950", "12.300"}, got[1])

	seq, err := f.GetCellValue(xlsxexport.DefaultSheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "2", seq)
}

func TestExportFile_CustomSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.xlsx")
	_, err := xlsxexport.ExportFile(rows[1:], path, xlsxexport.Options{SheetName: "Survey"})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Survey")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "-122.41950000", got[1][1])
}
