// Package navigate resolves path expressions against parsed JSON
// documents. The primary grammar is slash-delimited segments; expressions
// starting with $ are full JSONPath.
package navigate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jsongrid/internal/document"
)

// ErrNotFound indicates the path selected nothing. It is a valid "no
// data" outcome, not a failure: callers should render a placeholder.
var ErrNotFound = errors.New("path not found")

// IsNotFound reports whether err means the path selected nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Resolve returns the sub-value of root selected by path.
//
// An empty path or "/" returns root unchanged. Leading, trailing and
// repeated slashes are tolerated. Each segment descends into an object
// member or, when the current value is an array, into the element at the
// segment parsed as an index. A segment that matches nothing returns
// ErrNotFound with no partial result.
func Resolve(root *document.Value, path string) (*document.Value, error) {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "$") {
		return resolveJSONPath(root, path)
	}

	current := root
	for segment := range strings.SplitSeq(path, "/") {
		if segment == "" {
			continue
		}
		next, ok := step(current, segment)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		current = next
	}

	return current, nil
}

func step(v *document.Value, segment string) (*document.Value, bool) {
	switch v.Kind() {
	case document.Object:
		return v.Member(segment)
	case document.Array:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= v.Len() {
			return nil, false
		}
		return v.Elems()[i], true
	default:
		return nil, false
	}
}

// resolveJSONPath selects via a compiled JSONPath expression. Selection
// runs over the plain projection of the document; the chosen sub-value is
// rebuilt as an ordered value with object keys sorted so column order
// stays reproducible.
func resolveJSONPath(root *document.Value, expr string) (*document.Value, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", expr, err)
	}

	results := path.Select(root.Interface())
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, expr)
	case 1:
		return document.FromAny(results[0]), nil
	default:
		return document.FromAny([]any(results)), nil
	}
}
