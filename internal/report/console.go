// =============================================================================
// CSV Wizard - Console Reporting
// =============================================================================
//
// This module prints what the operator sees on the terminal:
//   - the numbered file listing with a colored format tag per file
//   - one red line per skipped row while a file is converted
//   - the completion summary ("Processed N rows out of M total rows")
//   - a page of raw rows for previews
//
// Console implements converter.Sink. It only observes; nothing it does feeds
// back into the conversion.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ginjaninja78/csv-wizard/internal/catalog"
	"github.com/ginjaninja78/csv-wizard/internal/classifier"
	"github.com/ginjaninja78/csv-wizard/internal/converter"
	"github.com/ginjaninja78/csv-wizard/internal/types"
)

// Console writes human readable reports to a terminal.
type Console struct {
	out io.Writer

	green *color.Color
	blue  *color.Color
	red   *color.Color
	white *color.Color
}

// NewConsole returns a Console writing to out. Colors follow fatih/color's
// global NoColor switch, which is off for non-terminals.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:   out,
		green: color.New(color.FgGreen),
		blue:  color.New(color.FgBlue),
		red:   color.New(color.FgRed),
		white: color.New(color.FgWhite),
	}
}

// TagColor returns the color used for a format tag.
func (c *Console) TagColor(tag classifier.FormatTag) *color.Color {
	switch tag {
	case classifier.EMLID:
		return c.green
	case classifier.CIVIL3D:
		return c.blue
	default:
		return c.white
	}
}

// =============================================================================
// LISTING
// =============================================================================

// Listing prints the numbered file table.
func (c *Console) Listing(dir string, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(c.out, "No CSV files found in %s\n", dir)
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"#", "File", "Format", "Modified"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, e := range entries {
		tag := c.TagColor(e.Tag).Sprint(e.Tag)
		if e.Err != nil {
			tag = c.red.Sprintf("%s (%v)", e.Tag, e.Err)
		}
		table.Append([]string{
			fmt.Sprintf("%d", e.Index),
			e.Name,
			tag,
			e.ModTime.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

// =============================================================================
// CONVERSION DIAGNOSTICS
// =============================================================================

// RowSkipped prints one skipped row.
func (c *Console) RowSkipped(_ string, skip *converter.RowError) {
	c.red.Fprintf(c.out, "Skipping row %d %q: %v\n", skip.Line, []string(skip.Row), skip.Err)
}

// Converted prints the completion summary for one file.
func (c *Console) Converted(result converter.Result) {
	name := filepath.Base(result.FilePath)

	verb := "has been converted"
	if !result.Written {
		verb = "would be converted (dry run)"
	}
	fmt.Fprintf(c.out, "%s %s from: %s to %s\n",
		name, verb,
		c.TagColor(classifier.FormatTag(result.From)).Sprintf("(%s)", result.From),
		c.TagColor(classifier.FormatTag(result.To)).Sprintf("(%s)", result.To),
	)
	fmt.Fprintf(c.out, "Processed %d rows out of %d total rows\n", result.Stats.RowsProcessed, result.Stats.TotalRows)

	if result.Stats.RowsSkipped > 0 {
		c.red.Fprintf(c.out, "%d malformed row(s) skipped\n", result.Stats.RowsSkipped)
	}
	if result.BackupPath != "" {
		fmt.Fprintf(c.out, "Backup written to %s\n", result.BackupPath)
	}
}

// Failed prints a file-level failure, set apart from row-level skips.
func (c *Console) Failed(filePath string, err error) {
	c.red.Fprintf(c.out, "Conversion of %s failed: %v\n", filepath.Base(filePath), err)
}

// =============================================================================
// PREVIEW
// =============================================================================

// Preview prints one page of raw rows, numbered from the start of the file.
func (c *Console) Preview(filePath string, page, pages, pageSize int, rows []types.Row) {
	fmt.Fprintf(c.out, "%s (page %d of %d)\n", filepath.Base(filePath), page+1, max(pages, 1))
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "(no rows on this page)")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)

	start := page * pageSize
	for i, row := range rows {
		table.Append(append([]string{fmt.Sprintf("%d", start+i+1)}, row...))
	}
	table.Render()
}
