// Package catalog builds the numbered file listing the operator picks from.
//
// Each entry pairs a CSV file with the display tag of its header. The ordinal
// of an entry is its position in the sorted listing and is what the operator
// types or selects to choose a file.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/ginjaninja78/csv-wizard/internal/classifier"
	"github.com/ginjaninja78/csv-wizard/internal/csvparser"
	"github.com/ginjaninja78/csv-wizard/pkg/utils"
)

// Entry is one line of the listing.
type Entry struct {
	utils.FileEntry

	// Index is the zero-based ordinal shown to the operator.
	Index int

	// Tag is the classification of the header row.
	Tag classifier.FormatTag

	// Err is set when the header could not be read; Tag is then UNKNOWN.
	Err error
}

// Options controls how the listing is built.
type Options struct {
	Dir        string
	SortBy     string
	Descending bool
	Parser     csvparser.Settings
}

// Build lists, sorts and classifies the CSV files in opts.Dir.
// A file whose header cannot be read stays in the listing with Err set.
func Build(opts Options) ([]Entry, error) {
	files, err := utils.ListCSVFiles(opts.Dir)
	if err != nil {
		return nil, err
	}
	if err := utils.SortFileEntries(files, opts.SortBy, opts.Descending); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(files))
	for i, f := range files {
		entries[i] = Entry{FileEntry: f, Index: i, Tag: classifier.Unknown}

		header, err := csvparser.ReadHeader(f.Path, opts.Parser)
		if err != nil {
			entries[i].Err = err
			continue
		}
		entries[i].Tag = classifier.Classify(header)
	}
	return entries, nil
}

// Select returns the entry at a zero-based ordinal.
func Select(entries []Entry, index int) (Entry, error) {
	if index < 0 || index >= len(entries) {
		return Entry{}, fmt.Errorf("no file numbered %d (listing has %d files)", index, len(entries))
	}
	return entries[index], nil
}

// Resolve interprets arg as an ordinal when it is a non-negative integer and
// returns the matching path; any other argument is returned as a path.
func Resolve(arg string, load func() ([]Entry, error)) (string, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return arg, nil
	}

	entries, err := load()
	if err != nil {
		return "", err
	}
	entry, err := Select(entries, index)
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}
