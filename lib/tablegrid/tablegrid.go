// Package tablegrid reconciles physical HTML tables that concatenate
// several logical sections into one grid. Sources do this when two
// sections (say, regular season and postseason) share a header row;
// the column boundaries are observed from the live layout and are
// declared as named configuration rather than inferred, so drift in
// the source fails loudly instead of truncating silently.
package tablegrid

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateColumnAfterSplit means the configured column ranges
	// still produced a repeated header label inside one logical table,
	// which signals the configuration has drifted from the source.
	ErrDuplicateColumnAfterSplit = errors.New("duplicate column label after split")
	// ErrOverlappingRanges means two ranges claim the same column index.
	ErrOverlappingRanges = errors.New("column ranges overlap")
	// ErrUngroupableLeadingRow means the group column is blank on the
	// first data row, leaving nothing to inherit from.
	ErrUngroupableLeadingRow = errors.New("group column blank on leading row")
)

// ColumnRange names the column indices belonging to one logical
// section of a physical table. Indices listed in no range are
// separator columns and are dropped.
type ColumnRange struct {
	Name    string `json:"name"`
	Columns []int  `json:"columns"`
}

// Logical is one reconciled sub-table recovered from a physical grid.
type Logical struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column returns the index of the named header label, or -1.
func (l Logical) Column(label string) int {
	return slices.Index(l.Header, label)
}

func project(row []string, columns []int) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		if c < len(row) {
			out[i] = row[c]
		}
	}
	return out
}

// Split cuts a grid (header row first) into disjoint logical tables by
// the declared column ranges.
func Split(grid [][]string, ranges []ColumnRange) ([]Logical, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("cannot split an empty grid")
	}

	claimed := map[int]string{}
	for _, r := range ranges {
		for _, c := range r.Columns {
			owner, taken := claimed[c]
			if taken {
				return nil, fmt.Errorf(
					"%w: column %d claimed by both %q and %q",
					ErrOverlappingRanges, c, owner, r.Name,
				)
			}
			claimed[c] = r.Name
		}
	}

	header := grid[0]
	out := make([]Logical, len(ranges))
	for i, r := range ranges {
		sub := Logical{
			Name:   r.Name,
			Header: project(header, r.Columns),
		}

		seen := map[string]struct{}{}
		for _, label := range sub.Header {
			_, dup := seen[label]
			if dup {
				return nil, fmt.Errorf(
					"%w: %q repeats in logical table %q",
					ErrDuplicateColumnAfterSplit, label, r.Name,
				)
			}
			seen[label] = struct{}{}
		}

		for _, row := range grid[1:] {
			sub.Rows = append(sub.Rows, project(row, r.Columns))
		}
		out[i] = sub
	}

	return out, nil
}

// ForwardFill repairs a merge-down column: a blank cell takes the value
// of the nearest non-blank cell above it within the same logical table.
// Filling an already-filled table is a no-op.
func ForwardFill(tbl *Logical, column string) error {
	idx := tbl.Column(column)
	if idx < 0 {
		return fmt.Errorf("group column %q not present in logical table %q", column, tbl.Name)
	}

	last := ""
	for _, row := range tbl.Rows {
		if idx >= len(row) {
			continue
		}
		if row[idx] == "" {
			if last == "" {
				return fmt.Errorf(
					"%w: column %q, logical table %q",
					ErrUngroupableLeadingRow, column, tbl.Name,
				)
			}
			row[idx] = last
			continue
		}
		last = row[idx]
	}
	return nil
}
