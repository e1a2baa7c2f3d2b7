// =============================================================================
// CSV Wizard - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - classifier
//   - converter
//   - csvparser / csvwriter
//   - xlsxexport
//   - tui
//
// =============================================================================

package types

// =============================================================================
// ROW TYPES
// =============================================================================

// Row is an ordered sequence of string cells.
// Rows within one file are allowed to have different lengths.
type Row []string

// Clone returns a copy of the row that does not share the backing array.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Equal reports whether two rows hold the same cells in the same order.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// CANONICAL SCHEMA
// =============================================================================

// Column labels of the canonical point schema.
const (
	ColumnName              = "Name"
	ColumnLongitude         = "Longitude"
	ColumnLatitude          = "Latitude"
	ColumnEllipsoidalHeight = "Ellipsoidal height"
)

// CanonicalHeader returns the header every known format is normalized toward.
// A fresh slice is returned so callers may keep or modify it.
func CanonicalHeader() Row {
	return Row{ColumnName, ColumnLongitude, ColumnLatitude, ColumnEllipsoidalHeight}
}
