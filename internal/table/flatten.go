package table

import (
	"strings"

	"github.com/jacoelho/jsongrid/internal/document"
)

// Record is one flattened object: a mapping from slash-joined keys to
// scalar cells, with key order preserved as first encountered.
type Record struct {
	keys   []string
	values map[string]Cell
}

func newRecord() *Record {
	return &Record{values: make(map[string]Cell)}
}

func (r *Record) set(key string, value Cell) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the cell for key.
func (r *Record) Get(key string) (Cell, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Keys returns the flattened keys in first-encountered order.
func (r *Record) Keys() []string {
	return r.keys
}

// Flatten collapses a JSON object into a flat record. Nested objects
// contribute keys namespaced by their path, so sibling merges cannot
// collide. Arrays are packed into a single cell rather than expanded
// into extra rows or columns.
func Flatten(obj *document.Value) *Record {
	record := newRecord()
	flattenInto(record, obj, "")
	return record
}

func flattenInto(record *Record, obj *document.Value, prefix string) {
	for _, member := range obj.Members() {
		key := member.Key
		if prefix != "" {
			key = prefix + "/" + key
		}

		child := member.Value
		switch child.Kind() {
		case document.Object:
			flattenInto(record, child, key)
		case document.Array:
			record.set(key, joinArray(child))
		default:
			record.set(key, child.Scalar())
		}
	}
}

// joinArray serializes an array into one cell, elements joined with
// ", ". Object and array elements are rendered as compact JSON first;
// null elements render empty.
func joinArray(arr *document.Value) Cell {
	parts := make([]string, 0, arr.Len())
	for _, elem := range arr.Elems() {
		switch elem.Kind() {
		case document.String:
			parts = append(parts, elem.Scalar().(string))
		case document.Null:
			parts = append(parts, "")
		default:
			parts = append(parts, elem.CompactJSON())
		}
	}
	return strings.Join(parts, ", ")
}
