// =============================================================================
// CSV Wizard - Format Classifier
// =============================================================================
//
// The classifier inspects the header row of a point file and tags it with one
// of a closed set of format labels. The tag is shown next to each file in the
// listing. It never decides how a file is converted; the converter re-examines
// the header itself with stricter rules.
//
// RULES (first match wins):
//   1. any cell equal to "name" (case-insensitive)     -> EMLID
//   2. any cell that is all digits once "." is removed -> CIVIL3D
//   3. anything else, including an empty header        -> UNKNOWN
//
// =============================================================================

package classifier

import (
	"strings"

	"github.com/ginjaninja78/csv-wizard/internal/types"
)

// FormatTag names a known header shape.
type FormatTag string

const (
	// EMLID is the receiver-export family, recognised by a Name column.
	EMLID FormatTag = "EMLID"

	// CIVIL3D is a headerless CAD coordinate dump whose first row is numeric.
	CIVIL3D FormatTag = "CIVIL3D"

	// DaviesV2 is a superset header carrying the three coordinate columns.
	DaviesV2 FormatTag = "DAVIES_V2"

	// Civil3DFull is the fixed 27-column receiver export.
	Civil3DFull FormatTag = "CIVIL3D_FULL"

	// Unknown is any header that matches none of the rules.
	Unknown FormatTag = "UNKNOWN"
)

// String implements fmt.Stringer.
func (t FormatTag) String() string {
	return string(t)
}

// Classify returns the display tag for a header row.
func Classify(header types.Row) FormatTag {
	for _, cell := range header {
		if strings.EqualFold(cell, "name") {
			return EMLID
		}
	}

	for _, cell := range header {
		if isNumericCell(cell) {
			return CIVIL3D
		}
	}

	return Unknown
}

// isNumericCell reports whether the cell is made only of ASCII digits after
// every "." is removed. A cell that is empty after removal does not count.
func isNumericCell(cell string) bool {
	digits := strings.ReplaceAll(cell, ".", "")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
