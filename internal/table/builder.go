package table

import (
	"github.com/jacoelho/jsongrid/internal/document"
	"github.com/jacoelho/jsongrid/internal/options"
)

// scalarKey is the synthetic column used for bare scalar records.
const scalarKey = "value"

// Build materializes the matrix for a navigated target value.
//
// The target is normalized into a record sequence: an array is used
// as-is, an object becomes a single-record sequence, a bare scalar
// becomes one synthetic {"value": scalar} record, and null or an absent
// target yields no records. Every data row is aligned to the ordered
// union of all record keys, with empty strings filling missing keys.
func Build(target *document.Value, cfg options.Config) Matrix {
	records := normalize(target)

	headers := NewHeaderSet()
	for _, record := range records {
		for _, key := range record.Keys() {
			headers.Add(key)
		}
	}

	matrix := make(Matrix, 0, len(records)+1)

	if !cfg.SuppressHeaders && headers.Len() > 0 {
		header := make(Row, 0, headers.Len())
		for _, key := range headers.Keys() {
			if cfg.RawHeaders {
				header = append(header, key)
			} else {
				header = append(header, FormatHeader(key))
			}
		}
		matrix = append(matrix, header)
	}

	for _, record := range records {
		row := make(Row, 0, headers.Len())
		for _, key := range headers.Keys() {
			value, ok := record.Get(key)
			if !ok {
				value = ""
			}
			row = append(row, value)
		}
		matrix = append(matrix, row)
	}

	return matrix
}

func normalize(target *document.Value) []*Record {
	switch target.Kind() {
	case document.Null:
		return nil
	case document.Array:
		records := make([]*Record, 0, target.Len())
		for _, elem := range target.Elems() {
			records = append(records, recordFor(elem))
		}
		return records
	case document.Object:
		return []*Record{Flatten(target)}
	default:
		return []*Record{scalarRecord(target)}
	}
}

func recordFor(v *document.Value) *Record {
	switch v.Kind() {
	case document.Object:
		return Flatten(v)
	case document.Array:
		record := newRecord()
		record.set(scalarKey, joinArray(v))
		return record
	default:
		return scalarRecord(v)
	}
}

func scalarRecord(v *document.Value) *Record {
	record := newRecord()
	record.set(scalarKey, v.Scalar())
	return record
}
