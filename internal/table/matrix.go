// Package table flattens JSON values into a two-dimensional matrix of
// display cells: one header row followed by one row per record.
package table

// Cell is a single display value: string, bool, json.Number or nil.
type Cell = any

// Row is one matrix row. Data rows always have header-row length.
type Row []Cell

// Matrix is the final tabular result, row 0 being headers unless
// suppressed.
type Matrix []Row

// SingleCell builds the one-row, one-cell matrix used for error and
// placeholder results.
func SingleCell(text string) Matrix {
	return Matrix{Row{text}}
}

// IsEmpty reports whether the matrix carries no cells at all.
func (m Matrix) IsEmpty() bool {
	for _, row := range m {
		if len(row) > 0 {
			return false
		}
	}
	return true
}
