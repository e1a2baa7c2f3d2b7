// =============================================================================
// CSV Wizard - CSV Parser Module
// =============================================================================
//
// This module reads point files. Every reader in the application goes through
// Open so that the same decoding rules apply to the listing, the preview and
// the conversion itself:
//   - UTF-8 input has a leading byte order mark removed
//   - Latin-1 and Windows-1252 input is decoded to UTF-8
//   - rows may have any number of cells
//   - cells are returned verbatim (no trimming)
//
// The whole file is materialized by ReadAll. Point exports are small, and the
// conversion has to see every row before the file is rewritten.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/csv-wizard/internal/types"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings controls how files are decoded.
type Settings struct {
	// Encoding is the character set of the file: "utf-8", "latin1" or
	// "windows-1252". Empty means UTF-8.
	Encoding string
}

// LookupEncoding maps a configured encoding name to a charmap.
// UTF-8 yields a nil encoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// =============================================================================
// READERS
// =============================================================================

// Open opens a file and wraps it with the decoder for the given settings.
// The caller must close the returned reader.
func Open(filePath string, settings Settings) (io.ReadCloser, error) {
	enc, err := LookupEncoding(settings.Encoding)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var decoder transform.Transformer
	if enc == nil {
		decoder = unicode.BOMOverride(transform.Nop)
	} else {
		decoder = enc.NewDecoder()
	}

	return struct {
		io.Reader
		io.Closer
	}{
		Reader: transform.NewReader(bufio.NewReader(file), decoder),
		Closer: file,
	}, nil
}

// NewReader returns a csv.Reader configured for point files.
func NewReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = ','

	// Ragged rows are rejected one by one by the converter, not by the reader.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// =============================================================================
// ROW SCANNER
// =============================================================================

// Scanner yields the physical rows of a file in order. encoding/csv drops
// empty lines; the Scanner puts them back as empty rows so that row counts
// and row numbers match the file.
type Scanner struct {
	reader  *csv.Reader
	counter *lineCounter

	// nextLine is the 1-based line the next row should start on.
	nextLine int

	// blanks is the number of empty rows still owed before queued.
	blanks int
	queued types.Row
	eof    bool
}

// NewScanner returns a Scanner reading decoded input from r.
func NewScanner(r io.Reader) *Scanner {
	counter := &lineCounter{r: r}
	return &Scanner{
		reader:   NewReader(counter),
		counter:  counter,
		nextLine: 1,
	}
}

// Next returns the next row, or io.EOF after the last one.
func (s *Scanner) Next() (types.Row, error) {
	if s.blanks > 0 {
		s.blanks--
		return types.Row{}, nil
	}
	if s.queued != nil {
		row := s.queued
		s.queued = nil
		return row, nil
	}
	if s.eof {
		return nil, io.EOF
	}

	record, err := s.reader.Read()
	if errors.Is(err, io.EOF) {
		s.eof = true
		// Empty lines after the last record.
		if trailing := s.counter.totalLines() - s.nextLine + 1; trailing > 0 {
			s.blanks = trailing - 1
			return types.Row{}, nil
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	start, _ := s.reader.FieldPos(0)
	last := len(record) - 1
	end, _ := s.reader.FieldPos(last)
	end += strings.Count(record[last], "\n")

	skipped := start - s.nextLine
	s.nextLine = end + 1

	row := types.Row(record)
	if skipped > 0 {
		s.blanks = skipped - 1
		s.queued = row
		return types.Row{}, nil
	}
	return row, nil
}

// lineCounter counts the newlines handed to the csv reader.
type lineCounter struct {
	r     io.Reader
	lines int
	last  byte
	seen  bool
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.lines += bytes.Count(p[:n], []byte{'\n'})
		c.last = p[n-1]
		c.seen = true
	}
	return n, err
}

// totalLines is the number of lines read so far, counting an unterminated
// final line.
func (c *lineCounter) totalLines() int {
	if c.seen && c.last != '\n' {
		return c.lines + 1
	}
	return c.lines
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ReadAll reads every row of a file, header included. Empty lines come back
// as empty rows.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Decoding settings.
//
// RETURNS:
//   - All rows in file order. An empty file yields an empty slice.
//   - An error if the file cannot be opened or parsed.
func ReadAll(filePath string, settings Settings) ([]types.Row, error) {
	rc, err := Open(filePath, settings)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	scanner := NewScanner(rc)
	var rows []types.Row
	for {
		row, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, row)
	}
}

// ReadHeader returns the first row of a file. An empty file yields an empty
// row and no error, so it classifies as unknown instead of failing the listing.
func ReadHeader(filePath string, settings Settings) (types.Row, error) {
	rc, err := Open(filePath, settings)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	row, err := NewScanner(rc).Next()
	if errors.Is(err, io.EOF) {
		return types.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	return row, nil
}

// CountRows returns the number of physical rows, header and empty lines
// included.
func CountRows(filePath string, settings Settings) (int, error) {
	rc, err := Open(filePath, settings)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	scanner := NewScanner(rc)
	count := 0
	for {
		_, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to read row %d: %w", count+1, err)
		}
		count++
	}
}

// ReadPage returns one page of raw rows, header included in page 0.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Decoding settings.
//   - page: Zero-based page number.
//   - pageSize: Rows per page; must be positive.
//
// RETURNS:
//   - Up to pageSize rows. A page past the end of the file is empty.
//   - An error if the file cannot be read.
func ReadPage(filePath string, settings Settings, page, pageSize int) ([]types.Row, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if page < 0 {
		return nil, fmt.Errorf("page must not be negative, got %d", page)
	}

	rc, err := Open(filePath, settings)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	scanner := NewScanner(rc)
	skip := page * pageSize
	line := 0

	var rows []types.Row
	for len(rows) < pageSize {
		row, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read row %d: %w", line+1, err)
		}
		line++
		if line <= skip {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// PageCount returns how many pages of pageSize rows a file spans.
func PageCount(totalRows, pageSize int) int {
	if pageSize <= 0 || totalRows <= 0 {
		return 0
	}
	return (totalRows + pageSize - 1) / pageSize
}
