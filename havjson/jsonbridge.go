package havjson

import (
	"fmt"
	"math"

	gojson "github.com/goccy/go-json"
)

// ValueToJSON converts v to standard JSON bytes via an intermediate
// any tree, marshaled with github.com/goccy/go-json rather than
// stdlib encoding/json — grounded on karagenc-socket.io-go's
// pluggable JSON-serializer-backend pattern, and shaped after the
// teacher's own ToJSONLoose in json_bridge.go.
func ValueToJSON(v *Value) ([]byte, error) {
	a, err := valueToAny(v)
	if err != nil {
		return nil, err
	}
	out, err := gojson.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("havjson: marshal json: %w", err)
	}
	return out, nil
}

// ValueFromJSON parses JSON bytes into a Value tree. Integral JSON
// numbers within ±2^53 become Int32 when they fit and Int64 otherwise;
// all other numbers become Double. Unlike the Lexer, non-negative
// integers get signed Kinds here.
func ValueFromJSON(data []byte) (*Value, error) {
	var a any
	if err := gojson.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("havjson: unmarshal json: %w", err)
	}
	return anyToValue(a)
}

func valueToAny(v *Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		b, _ := v.AsBool()
		return b, nil
	case KindInt32, KindIntWide, KindInt64:
		n, _ := v.AsInt64()
		return n, nil
	case KindUInt32, KindUIntWide, KindUInt64:
		n, _ := v.AsUint64()
		return n, nil
	case KindDouble:
		f, _ := v.AsDouble()
		return f, nil
	case KindString:
		s, _ := v.AsString()
		return s, nil
	case KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			a, err := valueToAny(e)
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	case KindObject:
		entries, _ := v.AsObject()
		m := make(map[string]any, len(entries))
		for _, e := range entries {
			a, err := valueToAny(e.Value)
			if err != nil {
				return nil, err
			}
			m[e.Key] = a
		}
		return m, nil
	default:
		return nil, fmt.Errorf("havjson: unconvertible value kind %s", v.Kind())
	}
}

func anyToValue(a any) (*Value, error) {
	switch t := a.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return numberToValue(t), nil
	case []any:
		elems := make([]*Value, len(t))
		for i, e := range t {
			v, err := anyToValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]any:
		entries := make([]Entry, 0, len(t))
		for k, e := range t {
			v, err := anyToValue(e)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Field(k, v))
		}
		return Object(entries...), nil
	default:
		return nil, fmt.Errorf("havjson: unsupported json value type %T", a)
	}
}

// numberToValue narrows a decoded JSON float64 to the smallest
// integer Kind that represents it exactly, falling back to Double —
// the same narrowing philosophy the TEXT Lexer applies to number
// literals.
func numberToValue(f float64) *Value {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return Double(f)
	}
	if f >= math.MinInt64 && f <= math.MaxInt64 && withinFloat53(f) {
		n := int64(f)
		if n >= minInt32 && n <= maxInt32 {
			return Int32(int32(n))
		}
		return Int64(n)
	}
	return Double(f)
}

func withinFloat53(f float64) bool {
	return f >= -(1<<53) && f <= (1<<53)
}
