package document

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// CompactJSON renders v as compact JSON, preserving object member order.
func (v *Value) CompactJSON() string {
	var sb strings.Builder
	v.compact(&sb)
	return sb.String()
}

func (v *Value) compact(sb *strings.Builder) {
	switch v.Kind() {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(v.boolean))
	case Number:
		sb.WriteString(v.number.String())
	case String:
		encoded, err := json.Marshal(v.str)
		if err != nil {
			// Marshalling a string cannot fail; fall back to raw text.
			sb.WriteString(strconv.Quote(v.str))
			return
		}
		sb.Write(encoded)
	case Array:
		sb.WriteByte('[')
		for i, elem := range v.elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			elem.compact(sb)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, member := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			encoded, _ := json.Marshal(member.Key)
			sb.Write(encoded)
			sb.WriteByte(':')
			member.Value.compact(sb)
		}
		sb.WriteByte('}')
	}
}

// Interface projects v onto plain Go values (map[string]any, []any and
// scalars) for libraries that expect the encoding/json shape. Numbers
// become float64 so JSONPath filter comparisons behave numerically.
// Object member order is lost; use FromAny to rebuild a deterministic
// Value from a projection.
func (v *Value) Interface() any {
	switch v.Kind() {
	case Null:
		return nil
	case Bool:
		return v.boolean
	case Number:
		f, err := v.number.Float64()
		if err != nil {
			return v.number.String()
		}
		return f
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.elems))
		for i, elem := range v.elems {
			out[i] = elem.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, member := range v.members {
			out[member.Key] = member.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromAny builds a Value from plain Go values. Map key order is not
// defined, so object members are sorted by key to keep results
// reproducible.
func FromAny(data any) *Value {
	switch t := data.(type) {
	case nil:
		return &Value{kind: Null}
	case bool:
		return &Value{kind: Bool, boolean: t}
	case string:
		return &Value{kind: String, str: t}
	case json.Number:
		return &Value{kind: Number, number: t}
	case float64:
		return &Value{kind: Number, number: json.Number(strconv.FormatFloat(t, 'f', -1, 64))}
	case int:
		return &Value{kind: Number, number: json.Number(strconv.Itoa(t))}
	case int64:
		return &Value{kind: Number, number: json.Number(strconv.FormatInt(t, 10))}
	case []any:
		arr := &Value{kind: Array, elems: make([]*Value, len(t))}
		for i, elem := range t {
			arr.elems[i] = FromAny(elem)
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		obj := &Value{kind: Object, index: make(map[string]int, len(keys))}
		for _, key := range keys {
			obj.index[key] = len(obj.members)
			obj.members = append(obj.members, Member{Key: key, Value: FromAny(t[key])})
		}
		return obj
	default:
		return &Value{kind: String, str: stringify(t)}
	}
}

func stringify(data any) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return strings.Trim(string(encoded), `"`)
}
