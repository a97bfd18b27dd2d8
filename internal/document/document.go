// Package document provides a parsed JSON representation that preserves
// object member order. The standard library decodes objects into Go maps,
// which lose the order keys appear in on the wire; column order in built
// tables depends on that order, so parsing walks decoder tokens instead.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxDepth bounds nesting for untrusted input. Parsing deeper documents
// fails instead of exhausting the stack.
const maxDepth = 1000

var (
	ErrParse   = errors.New("parse error")
	ErrTooDeep = errors.New("nesting exceeds maximum depth")
)

// Kind discriminates the JSON value types.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Member is a single object field.
type Member struct {
	Key   string
	Value *Value
}

// Value is one JSON value. Object members keep their input order;
// duplicate keys keep the first position with the last value winning.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	elems   []*Value
	members []Member
	index   map[string]int
}

// Kind returns Null for a nil receiver so navigation code can treat an
// absent value uniformly.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// Member returns the object member for key.
func (v *Value) Member(key string) (*Value, bool) {
	if v == nil || v.kind != Object {
		return nil, false
	}
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.members[i].Value, true
}

// Members returns object members in input order.
func (v *Value) Members() []Member {
	if v == nil {
		return nil
	}
	return v.members
}

// Elems returns array elements in input order.
func (v *Value) Elems() []*Value {
	if v == nil {
		return nil
	}
	return v.elems
}

// Len returns the element count for arrays and the member count for
// objects, zero otherwise.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Scalar returns the native Go form of a scalar value: nil, bool,
// json.Number or string. Arrays and objects return nil.
func (v *Value) Scalar() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case Bool:
		return v.boolean
	case Number:
		return v.number
	case String:
		return v.str
	default:
		return nil
	}
}

// Parse decodes a JSON document preserving object member order.
// Numbers are kept as json.Number so their wire representation survives
// into cells unchanged.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := parseValue(dec, 0)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected content after document", ErrParse)
	}

	return value, nil
}

func parseValue(dec *json.Decoder, depth int) (*Value, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of document", ErrParse)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec, depth)
		case '[':
			return parseArray(dec, depth)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrParse, t.String())
		}
	case bool:
		return &Value{kind: Bool, boolean: t}, nil
	case json.Number:
		return &Value{kind: Number, number: t}, nil
	case string:
		return &Value{kind: String, str: t}, nil
	case nil:
		return &Value{kind: Null}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
	}
}

func parseObject(dec *json.Decoder, depth int) (*Value, error) {
	obj := &Value{kind: Object, index: make(map[string]int)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key must be string, got %v", ErrParse, tok)
		}

		child, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, err
		}

		if i, seen := obj.index[key]; seen {
			obj.members[i].Value = child
			continue
		}
		obj.index[key] = len(obj.members)
		obj.members = append(obj.members, Member{Key: key, Value: child})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return obj, nil
}

func parseArray(dec *json.Decoder, depth int) (*Value, error) {
	arr := &Value{kind: Array}

	for dec.More() {
		elem, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, err
		}
		arr.elems = append(arr.elems, elem)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return arr, nil
}
