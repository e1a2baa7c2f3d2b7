// =============================================================================
// CSV Wizard - CSV Writer Module
// =============================================================================
//
// This module writes converted rows back over the source file.
//
// WRITE MODES:
//   - Atomic (default): rows go to a temporary file next to the target, which
//     is synced and renamed over it. A failed write leaves the original intact.
//   - Direct: the target is truncated and written in place. A failure part way
//     through can leave a truncated file.
//
// Records are terminated with CRLF by default and never followed by an empty
// record, so repeated conversions do not accumulate blank lines.
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/csv-wizard/internal/csvparser"
	"github.com/ginjaninja78/csv-wizard/internal/types"
	"github.com/ginjaninja78/csv-wizard/pkg/utils"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how rows are written.
type Options struct {
	// Encoding is the character set to write, matching csvparser.Settings.
	Encoding string

	// UseCRLF terminates records with "\r\n" instead of "\n".
	UseCRLF bool

	// Atomic writes through a temporary file and rename.
	Atomic bool

	// Backup copies the original to "<file>.bak" before replacing it.
	Backup bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Encoding: "utf-8",
		UseCRLF:  true,
		Atomic:   true,
	}
}

// =============================================================================
// WRITERS
// =============================================================================

// Write encodes rows as CSV onto w.
func Write(w io.Writer, rows []types.Row, opts Options) error {
	enc, err := csvparser.LookupEncoding(opts.Encoding)
	if err != nil {
		return err
	}

	var encoder io.WriteCloser
	if enc != nil {
		encoder = transform.NewWriter(w, enc.NewEncoder())
		w = encoder
	}

	writer := csv.NewWriter(w)
	writer.UseCRLF = opts.UseCRLF
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush rows: %w", err)
	}

	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode rows: %w", err)
		}
	}
	return nil
}

// WriteFile replaces the contents of filePath with rows.
//
// PARAMETERS:
//   - filePath: The file to overwrite. It is created if it does not exist.
//   - rows: The rows to write, header included.
//   - opts: Encoding, line ending, atomic and backup settings.
//
// RETURNS:
//   - The backup path when a backup was made, otherwise "".
//   - An error if any step fails.
func WriteFile(filePath string, rows []types.Row, opts Options) (string, error) {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(filePath); err == nil {
		mode = info.Mode().Perm()
	}

	backupPath := ""
	if opts.Backup && utils.FileExists(filePath) {
		backupPath = filePath + ".bak"
		if err := utils.CopyFile(filePath, backupPath); err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", filePath, err)
		}
	}

	if !opts.Atomic {
		return backupPath, writeDirect(filePath, rows, mode, opts)
	}
	return backupPath, writeAtomic(filePath, rows, mode, opts)
}

// writeDirect truncates the target and writes into it.
func writeDirect(filePath string, rows []types.Row, mode os.FileMode, opts Options) error {
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", filePath, err)
	}

	if err := Write(file, rows, opts); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filePath, err)
	}
	return nil
}

// writeAtomic writes to a sibling temporary file and renames it into place.
func writeAtomic(filePath string, rows []types.Row, mode os.FileMode, opts Options) error {
	dir := filepath.Dir(filePath)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(filePath), uuid.New().String()))

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := Write(file, rows, opts); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		committed = true
		return fmt.Errorf("failed to replace %s: %w", filePath, err)
	}

	committed = true
	return nil
}
