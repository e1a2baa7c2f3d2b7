// =============================================================================
// CSV Wizard - Converter Module
// =============================================================================
//
// This module converts a single point file in place.
//
// CONVERSION PIPELINE:
//   1. Read every row of the file (the header is the first row)
//   2. Pick the branch for the header and transform the rows in memory
//   3. Report each skipped row to the sink and the log
//   4. Write the result back over the source file
//   5. Report the completion summary
//
// Nothing is written unless steps 1 and 2 succeed, so a file with a missing
// required column, or one that cannot be read, is left exactly as it was.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/csv-wizard/internal/classifier"
	"github.com/ginjaninja78/csv-wizard/internal/csvparser"
	"github.com/ginjaninja78/csv-wizard/internal/csvwriter"
	"github.com/ginjaninja78/csv-wizard/internal/logging"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the file that was converted.
	FilePath string

	// RunID correlates this conversion with its log entries.
	RunID string

	// Branch is the name of the branch that handled the header.
	Branch string

	// Tag is the format the branch recognised.
	Tag classifier.FormatTag

	// From and To describe the conversion direction.
	From string
	To   string

	// Written is false for dry runs.
	Written bool

	// BackupPath is set when a backup copy was made.
	BackupPath string

	// Skipped lists the rows that were dropped.
	Skipped []*RowError

	// Stats contains row accounting.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	// TotalRows is the physical row count of the source, header included.
	TotalRows int

	// RowsProcessed counts the rows after the header, skipped ones included.
	RowsProcessed int

	// RowsConverted counts the data rows written out.
	RowsConverted int

	// RowsSkipped counts the dropped rows.
	RowsSkipped int

	// ProcessingTime is the time taken to convert the file.
	ProcessingTime time.Duration
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Sink receives conversion diagnostics. It must not influence the conversion.
type Sink interface {
	// RowSkipped is called once per dropped row, in file order.
	RowSkipped(filePath string, skip *RowError)

	// Converted is called after a file has been handled successfully.
	Converted(result Result)
}

// Options configures a Converter.
type Options struct {
	// Parser controls how the source is decoded.
	Parser csvparser.Settings

	// Writer controls how the result is written back.
	Writer csvwriter.Options

	// DryRun transforms the file without writing it.
	DryRun bool

	// Branches overrides DefaultBranches.
	Branches []Branch

	// Logger receives structured log entries. Nil means slog.Default().
	Logger *slog.Logger

	// Sink receives skip and completion events. Nil means none.
	Sink Sink
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter rewrites point files into the canonical layout.
type Converter struct {
	opts Options
}

// New creates a new Converter.
func New(opts Options) *Converter {
	if len(opts.Branches) == 0 {
		opts.Branches = DefaultBranches
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Converter{opts: opts}
}

// Plan reads a file and transforms it in memory without writing anything.
//
// RETURNS:
//   - The outcome of the transform.
//   - The physical row count of the file, header included.
//   - An error if the file cannot be read, is empty, or lacks a required column.
func (c *Converter) Plan(filePath string) (*Outcome, int, error) {
	rows, err := csvparser.ReadAll(filePath, c.opts.Parser)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%s: %w", filePath, ErrEmptyFile)
	}

	outcome, err := TransformWith(c.opts.Branches, rows[0], rows[1:])
	if err != nil {
		return nil, len(rows), fmt.Errorf("failed to convert %s: %w", filePath, err)
	}
	return outcome, len(rows), nil
}

// ConvertFile converts one file in place.
//
// PARAMETERS:
//   - filePath: The file to convert. It is both input and output.
//
// RETURNS:
//   - A Result with row accounting and skipped rows.
//   - An error for file-level failures. Skipped rows are not errors.
func (c *Converter) ConvertFile(filePath string) (Result, error) {
	startTime := time.Now()
	log, runID := logging.ForRun(c.opts.Logger, filePath)

	result := Result{
		FilePath: filePath,
		RunID:    runID,
	}

	log.Info("conversion started", "dry_run", c.opts.DryRun)

	outcome, total, err := c.Plan(filePath)
	if err != nil {
		log.Error("conversion aborted", "error", err)
		return result, err
	}

	result.Branch = outcome.Branch.Name
	result.Tag = outcome.Branch.Tag
	result.From = outcome.Branch.From
	result.To = outcome.Branch.To
	result.Skipped = outcome.Skipped
	result.Stats = ProcessingStats{
		TotalRows:     total,
		RowsProcessed: outcome.Processed,
		RowsConverted: outcome.Converted,
		RowsSkipped:   len(outcome.Skipped),
	}

	log.Debug("branch selected", "branch", result.Branch, "tag", result.Tag)

	for _, skip := range outcome.Skipped {
		log.Warn("row skipped", "line", skip.Line, "row", []string(skip.Row), "reason", skip.Err)
		if c.opts.Sink != nil {
			c.opts.Sink.RowSkipped(filePath, skip)
		}
	}

	if !c.opts.DryRun {
		backup, err := csvwriter.WriteFile(filePath, outcome.Rows, c.opts.Writer)
		if err != nil {
			log.Error("write failed", "error", err)
			return result, fmt.Errorf("failed to write %s: %w", filePath, err)
		}
		result.Written = true
		result.BackupPath = backup
	}

	result.Stats.ProcessingTime = time.Since(startTime)

	log.Info("conversion finished",
		"branch", result.Branch,
		"processed", result.Stats.RowsProcessed,
		"total", result.Stats.TotalRows,
		"converted", result.Stats.RowsConverted,
		"skipped", result.Stats.RowsSkipped,
		"written", result.Written,
		"elapsed", result.Stats.ProcessingTime,
	)

	if c.opts.Sink != nil {
		c.opts.Sink.Converted(result)
	}
	return result, nil
}
