// =============================================================================
// CSV Wizard - Row Transformer
// =============================================================================
//
// This module turns the rows of a point file into the canonical layout:
//
//   Name, Longitude, Latitude, Ellipsoidal height
//
// The known input shapes are described by a table of branches. Each branch
// carries a header matcher, a planner that resolves where the coordinate
// columns live, and the minimum cell count a row needs. Branches are checked
// in table order and the first match wins, so the order is part of the
// behaviour: a header that satisfies two matchers is handled by the earlier.
//
// BRANCHES (DefaultBranches):
//   1. canonical      header is exactly the canonical header
//                     rows >= 4 cells -> (seq, r[1], r[2], r[3]), no header out
//   2. superset       header contains Longitude, Latitude, Ellipsoidal height
//                     columns resolved by name, Name must exist
//   3. receiver-full  header is exactly the 27-column receiver export
//                     rows >= 8 cells -> (seq, r[5], r[6], r[7])
//   4. passthrough    anything else; the header is treated as data
//
// Sequence numbers restart at 1 for each file and only advance for rows that
// are emitted. Skipped rows still count as processed.
//
// =============================================================================

package converter

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ginjaninja78/csv-wizard/internal/classifier"
	"github.com/ginjaninja78/csv-wizard/internal/types"
)

// =============================================================================
// RECEIVER EXPORT SCHEMA
// =============================================================================

// receiverExportHeader is the full point export written by the GNSS receiver
// software. Longitude, Latitude and Ellipsoidal height sit at positions 5, 6, 7.
var receiverExportHeader = types.Row{
	"Name", "Easting", "Northing", "Elevation", "Description",
	"Longitude", "Latitude", "Ellipsoidal height",
	"Easting RMS", "Northing RMS", "Elevation RMS", "Lateral RMS",
	"Antenna height", "Antenna height units", "Solution status",
	"Averaging start", "Averaging end", "Samples", "PDOP",
	"Base easting", "Base northing", "Base elevation",
	"Base longitude", "Base latitude", "Base ellipsoidal height",
	"Baseline", "CS name",
}

// ReceiverExportHeader returns a copy of the 27-column receiver export header.
func ReceiverExportHeader() types.Row {
	return receiverExportHeader.Clone()
}

// =============================================================================
// BRANCH TABLE
// =============================================================================

// Extractor pulls the three coordinate cells out of a row.
type Extractor struct {
	// MinCells is the smallest row length the extractor accepts.
	MinCells int

	// Columns holds the positions of longitude, latitude and ellipsoidal height.
	Columns [3]int
}

// Extract builds a canonical row numbered seq.
//
// RETURNS:
//   - ErrMalformedRow when the row is shorter than MinCells.
//   - ErrIndexLookup when a coordinate column falls outside the row.
func (e Extractor) Extract(seq int, row types.Row) (types.Row, error) {
	if len(row) < e.MinCells {
		return nil, fmt.Errorf("%w: %d cells, need at least %d", ErrMalformedRow, len(row), e.MinCells)
	}

	out := make(types.Row, 0, 4)
	out = append(out, strconv.Itoa(seq))
	for _, idx := range e.Columns {
		if idx < 0 || idx >= len(row) {
			return nil, fmt.Errorf("%w: column %d of %d", ErrIndexLookup, idx, len(row))
		}
		out = append(out, row[idx])
	}
	return out, nil
}

// Branch is one entry of the transform table.
type Branch struct {
	// Name identifies the branch in logs and summaries.
	Name string

	// Tag is the format the branch recognises.
	Tag classifier.FormatTag

	// From and To describe the conversion direction shown to the operator.
	From string
	To   string

	// Match reports whether the branch handles this header.
	Match func(header types.Row) bool

	// Plan resolves the extractor for a matched header. A nil extractor with a
	// nil error means the rows are passed through unchanged.
	Plan func(header types.Row) (*Extractor, error)

	// EmitHeader controls whether the canonical header starts the output.
	EmitHeader bool
}

// DefaultBranches is the branch table, in priority order.
var DefaultBranches = []Branch{
	{
		Name: "canonical",
		Tag:  classifier.EMLID,
		From: "EMLID",
		To:   "CIVIL3D",
		Match: func(header types.Row) bool {
			return header.Equal(types.CanonicalHeader())
		},
		Plan: fixedPlan(Extractor{MinCells: 4, Columns: [3]int{1, 2, 3}}),
		// The existing header is dropped and not re-emitted.
		EmitHeader: false,
	},
	{
		Name: "superset",
		Tag:  classifier.DaviesV2,
		From: "DAVIES_V2",
		To:   "CIVIL3D",
		Match: func(header types.Row) bool {
			return slices.Contains(header, types.ColumnLongitude) &&
				slices.Contains(header, types.ColumnLatitude) &&
				slices.Contains(header, types.ColumnEllipsoidalHeight)
		},
		Plan:       lookupPlan,
		EmitHeader: true,
	},
	{
		Name: "receiver-full",
		Tag:  classifier.Civil3DFull,
		From: "CIVIL3D",
		To:   "EMLID",
		Match: func(header types.Row) bool {
			return header.Equal(receiverExportHeader)
		},
		Plan:       fixedPlan(Extractor{MinCells: 8, Columns: [3]int{5, 6, 7}}),
		EmitHeader: true,
	},
	{
		Name:       "passthrough",
		Tag:        classifier.Unknown,
		From:       "Unknown",
		To:         "EMLID",
		Match:      func(types.Row) bool { return true },
		Plan:       func(types.Row) (*Extractor, error) { return nil, nil },
		EmitHeader: true,
	},
}

// fixedPlan returns a planner that ignores the header.
func fixedPlan(e Extractor) func(types.Row) (*Extractor, error) {
	return func(types.Row) (*Extractor, error) {
		ex := e
		return &ex, nil
	}
}

// lookupPlan resolves the coordinate columns by label. Name is not copied to
// the output but must be present; its position still bounds the row length.
func lookupPlan(header types.Row) (*Extractor, error) {
	labels := []string{
		types.ColumnName,
		types.ColumnLongitude,
		types.ColumnLatitude,
		types.ColumnEllipsoidalHeight,
	}

	indices := make([]int, len(labels))
	for i, label := range labels {
		idx := slices.Index(header, label)
		if idx < 0 {
			return nil, &ColumnError{Column: label, Header: header.Clone()}
		}
		indices[i] = idx
	}

	return &Extractor{
		MinCells: slices.Max(indices) + 1,
		Columns:  [3]int{indices[1], indices[2], indices[3]},
	}, nil
}

// SelectBranch returns the first branch in the table that matches the header.
func SelectBranch(branches []Branch, header types.Row) (*Branch, error) {
	for i := range branches {
		if branches[i].Match(header) {
			return &branches[i], nil
		}
	}
	return nil, fmt.Errorf("no branch matches header %q", []string(header))
}

// =============================================================================
// TRANSFORM
// =============================================================================

// Outcome is the in-memory result of transforming one file.
type Outcome struct {
	// Branch is the table entry that handled the file.
	Branch *Branch

	// Rows is the complete output, header included when the branch emits one.
	Rows []types.Row

	// Processed counts the rows after the header that were looked at.
	Processed int

	// Converted counts the data rows that made it into Rows.
	Converted int

	// Skipped lists every row that was dropped, in file order.
	Skipped []*RowError
}

// Transform runs the default branch table over a header and its data rows.
func Transform(header types.Row, rows []types.Row) (*Outcome, error) {
	return TransformWith(DefaultBranches, header, rows)
}

// TransformWith runs a specific branch table.
//
// PARAMETERS:
//   - branches: The branch table in priority order.
//   - header: The first row of the file.
//   - rows: Every row after the header.
//
// RETURNS:
//   - The outcome with output rows and row accounting.
//   - An error when no branch matches or the planner rejects the header.
func TransformWith(branches []Branch, header types.Row, rows []types.Row) (*Outcome, error) {
	branch, err := SelectBranch(branches, header)
	if err != nil {
		return nil, err
	}

	extractor, err := branch.Plan(header)
	if err != nil {
		return nil, fmt.Errorf("%s branch: %w", branch.Name, err)
	}

	outcome := &Outcome{
		Branch: branch,
		Rows:   make([]types.Row, 0, len(rows)+2),
	}
	if branch.EmitHeader {
		outcome.Rows = append(outcome.Rows, types.CanonicalHeader())
	}

	// Pass-through keeps the original header as the first data row.
	if extractor == nil {
		outcome.Rows = append(outcome.Rows, header.Clone())
		for _, row := range rows {
			outcome.Rows = append(outcome.Rows, row.Clone())
		}
		outcome.Processed = len(rows)
		outcome.Converted = len(rows) + 1
		return outcome, nil
	}

	seq := 1
	for i, row := range rows {
		outcome.Processed++

		out, err := extractor.Extract(seq, row)
		if err != nil {
			outcome.Skipped = append(outcome.Skipped, &RowError{
				Line: i + 2,
				Row:  row.Clone(),
				Err:  err,
			})
			continue
		}

		outcome.Rows = append(outcome.Rows, out)
		outcome.Converted++
		seq++
	}

	return outcome, nil
}
