// =============================================================================
// CSV Wizard - File Management Utilities
// =============================================================================
//
// This module provides the file system helpers behind the file listing:
//   - Discovering CSV files in the point data directory
//   - Sorting them by modification time or by name
//   - Copying files (used for backups before an in-place rewrite)
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// FileEntry is a CSV file found in the data directory.
type FileEntry struct {
	// Name is the base name of the file.
	Name string

	// Path is the full path to the file.
	Path string

	// ModTime is the last modification time.
	ModTime time.Time
}

// Sort keys accepted by SortFileEntries.
const (
	SortByDate = "date"
	SortByName = "name"
)

// ListCSVFiles returns the .csv files directly inside dir.
//
// PARAMETERS:
//   - dir: The directory to scan. Subdirectories are not descended into.
//
// RETURNS:
//   - One entry per regular file whose extension is .csv (any case).
//   - An error if the directory cannot be read.
func ListCSVFiles(dir string) ([]FileEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".csv") {
			continue
		}

		info, err := de.Info()
		if err != nil {
			// The file vanished between ReadDir and Info.
			continue
		}

		files = append(files, FileEntry{
			Name:    de.Name(),
			Path:    filepath.Join(dir, de.Name()),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// SortFileEntries orders entries in place by date or name. Ties are broken by
// name so the ordinal of every file is stable between listings.
func SortFileEntries(entries []FileEntry, sortBy string, descending bool) error {
	var less func(a, b FileEntry) bool

	switch strings.ToLower(sortBy) {
	case SortByName:
		less = func(a, b FileEntry) bool { return a.Name < b.Name }
	case SortByDate, "":
		less = func(a, b FileEntry) bool {
			if a.ModTime.Equal(b.ModTime) {
				return a.Name < b.Name
			}
			return a.ModTime.Before(b.ModTime)
		}
	default:
		return fmt.Errorf("unknown sort key %q (use %q or %q)", sortBy, SortByDate, SortByName)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if descending {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
	return nil
}

// =============================================================================
// FILE HELPERS
// =============================================================================

// CopyFile copies src to dst, replacing dst, and syncs it to disk.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
