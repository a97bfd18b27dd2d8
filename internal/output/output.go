// Package output renders a result matrix to a writer in one of several
// formats.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/jsongrid/internal/table"
)

// Format selects the rendering of a matrix.
type Format int

const (
	FormatTable Format = iota
	FormatCSV
	FormatTSV
	FormatJSON
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a format name to its Format value.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatTable, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write renders the matrix in the given format.
func Write(w io.Writer, format Format, m table.Matrix) error {
	switch format {
	case FormatCSV:
		return writeSeparated(w, m, ',')
	case FormatTSV:
		return writeSeparated(w, m, '\t')
	case FormatJSON:
		return writeJSON(w, m)
	case FormatTable:
		fallthrough
	default:
		return writeTable(w, m)
	}
}

// CellString renders a single cell for display. Nil cells render empty;
// numbers keep their wire representation.
func CellString(c table.Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func writeSeparated(w io.Writer, m table.Matrix, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	record := make([]string, 0, 8)
	for _, row := range m {
		record = record[:0]
		for _, cell := range row {
			record = append(record, CellString(cell))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, m table.Matrix) error {
	enc := json.NewEncoder(w)
	return enc.Encode(m)
}

// writeTable renders rows as space-aligned columns.
func writeTable(w io.Writer, m table.Matrix) error {
	widths := columnWidths(m)

	var sb strings.Builder
	for _, row := range m {
		sb.Reset()
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			text := CellString(cell)
			sb.WriteString(text)
			if i < len(row)-1 {
				for pad := len(text); pad < widths[i]; pad++ {
					sb.WriteByte(' ')
				}
			}
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return nil
}

func columnWidths(m table.Matrix) []int {
	var widths []int
	for _, row := range m {
		for i, cell := range row {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if n := len(CellString(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}
