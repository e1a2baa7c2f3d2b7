package csvwriter_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/csv-wizard/internal/csvwriter"
	"github.com/ginjaninja78/csv-wizard/internal/types"
)

var sampleRows = []types.Row{
	{"Name", "Longitude", "Latitude", "Ellipsoidal height"},
	{"1", "10.0", "20.0", "5.0"},
	{"2", "a,b", "21.0", "6.0"},
}

func TestWrite_LineEndings(t *testing.T) {
	tests := []struct {
		name string
		crlf bool
		want string
	}{
		{
			name: "crlf",
			crlf: true,
			want: "Name,Longitude,Latitude,Ellipsoidal height\r\n1,10.0,20.0,5.0\r\n2,\"a,b\",21.0,6.0\r\n",
		},
		{
			name: "lf",
			crlf: false,
			want: "Name,Longitude,Latitude,Ellipsoidal height\n1,10.0,20.0,5.0\n2,\"a,b\",21.0,6.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, csvwriter.Write(&buf, sampleRows, csvwriter.Options{UseCRLF: tt.crlf}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWrite_Windows1252(t *testing.T) {
	var buf bytes.Buffer
	err := csvwriter.Write(&buf, []types.Row{{"P1", "45°"}}, csvwriter.Options{Encoding: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, []byte("P1,45\xb0\n"), buf.Bytes())
}

func TestWriteFile(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		name := "direct"
		if atomic {
			name = "atomic"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "points.csv")
			require.NoError(t, os.WriteFile(path, []byte("old,content\nmore,rows\nand,more\n"), 0o600))

			backup, err := csvwriter.WriteFile(path, sampleRows[:2], csvwriter.Options{Atomic: atomic, Backup: true})
			require.NoError(t, err)
			assert.Equal(t, path+".bak", backup)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "Name,Longitude,Latitude,Ellipsoidal height\n1,10.0,20.0,5.0\n", string(got))

			old, err := os.ReadFile(backup)
			require.NoError(t, err)
			assert.Equal(t, "old,content\nmore,rows\nand,more\n", string(old))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			// No temporary files are left behind.
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 2)
		})
	}
}

func TestWriteFile_BadEncodingLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("keep\n"), 0o644))

	_, err := csvwriter.WriteFile(path, sampleRows, csvwriter.Options{Atomic: true, Encoding: "klingon"})
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(got))
}
