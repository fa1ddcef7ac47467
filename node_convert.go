package jsonnode

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/valyala/fastjson/fastfloat"
)

// Text returns the node as plain text: the payload of a String, the
// round-trip decimal form of a Number, "true"/"false", "null", and ""
// for containers.
func (n *Node) Text() string {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindNumber:
		return formatNumber(n.num)
	case KindBool:
		if n.b {
			return literalTrue
		}
		return literalFalse
	case KindNull:
		return literalNull
	case KindArray, KindObject:
		return ""
	default:
		panic(unknownKind(n.Kind()))
	}
}

// Float returns the numeric view of n. Strings are parsed leniently and
// yield 0 when they do not hold a number; Bool yields 1 or 0; Null and
// containers yield 0.
func (n *Node) Float() float64 {
	switch n.Kind() {
	case KindNumber:
		return n.num
	case KindString:
		return parseFloatLenient(n.str)
	case KindBool:
		if n.b {
			return 1
		}
		return 0
	case KindNull, KindArray, KindObject:
		return 0
	default:
		panic(unknownKind(n.Kind()))
	}
}

// Int returns Float truncated toward zero
func (n *Node) Int() int {
	return int(truncateInt64(n.Float()))
}

// Int64 returns the integer view of n. Strings holding a decimal integer
// are parsed exactly, which keeps values stored with LongAsString intact.
func (n *Node) Int64() int64 {
	if n.IsString() {
		if v, err := strconv.ParseInt(strings.TrimSpace(n.str), 10, 64); err == nil {
			return v
		}
	}
	return truncateInt64(n.Float())
}

// Bool returns the boolean view of n. Strings "true"/"false" parse
// case-insensitively, any other non-empty string is true. Numbers are true
// when non-zero.
func (n *Node) Bool() bool {
	switch n.Kind() {
	case KindBool:
		return n.b
	case KindString:
		s := strings.TrimSpace(n.str)
		if strings.EqualFold(s, literalTrue) {
			return true
		}
		if strings.EqualFold(s, literalFalse) {
			return false
		}
		return n.str != ""
	case KindNumber:
		return n.num != 0 && !math.IsNaN(n.num)
	case KindNull, KindArray, KindObject:
		return false
	default:
		panic(unknownKind(n.Kind()))
	}
}

// String renders n as compact JSON text
func (n *Node) String() string {
	return ToText(n, Compact, 0)
}

// Indent renders n as indented JSON text with step spaces per level
func (n *Node) Indent(step int) string {
	return ToText(n, Indent, step)
}

// Interface converts the tree into native Go values: nil, bool, float64,
// string, []any and map[string]any.
func (n *Node) Interface() any {
	switch n.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return n.b
	case KindNumber:
		return n.num
	case KindString:
		return n.str
	case KindArray:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(n.fields))
		for _, f := range n.fields {
			out[f.key] = f.value.Interface()
		}
		return out
	default:
		panic(unknownKind(n.Kind()))
	}
}

// FromAny builds a tree from native Go values. Map keys are inserted in
// sorted order since Go maps carry none.
func FromAny(v any) (*Node, error) {
	return fromAny(v, 0)
}

func fromAny(v any, depth int) (*Node, error) {
	if depth > DefaultMaxNestingDepth {
		return nil, newDepthLimitError("from_any", depth, DefaultMaxNestingDepth)
	}
	switch val := v.(type) {
	case nil:
		return sharedNull, nil
	case *Node:
		return orNull(val), nil
	case bool:
		return NewBool(val), nil
	case string:
		return NewString(val), nil
	case float64:
		return NewNumber(val), nil
	case float32:
		return NewNumber(float64(val)), nil
	case int:
		return NewNumber(float64(val)), nil
	case int8:
		return NewNumber(float64(val)), nil
	case int16:
		return NewNumber(float64(val)), nil
	case int32:
		return NewNumber(float64(val)), nil
	case int64:
		return NewNumber(float64(val)), nil
	case uint:
		return NewNumber(float64(val)), nil
	case uint8:
		return NewNumber(float64(val)), nil
	case uint16:
		return NewNumber(float64(val)), nil
	case uint32:
		return NewNumber(float64(val)), nil
	case uint64:
		return NewNumber(float64(val)), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, newOperationError("from_any", fmt.Sprintf("invalid number %q", val.String()), ErrTypeMismatch)
		}
		return NewNumber(f), nil
	case []*Node:
		return NewArray(val...), nil
	case []any:
		arr := &Node{kind: KindArray, items: make([]*Node, 0, len(val))}
		for _, item := range val {
			child, err := fromAny(item, depth+1)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, child)
		}
		return arr, nil
	case []string:
		arr := &Node{kind: KindArray, items: make([]*Node, 0, len(val))}
		for _, s := range val {
			arr.items = append(arr.items, NewString(s))
		}
		return arr, nil
	case []float64:
		arr := &Node{kind: KindArray, items: make([]*Node, 0, len(val))}
		for _, f := range val {
			arr.items = append(arr.items, NewNumber(f))
		}
		return arr, nil
	case map[string]any:
		obj := NewObject()
		for _, key := range slices.Sorted(maps.Keys(val)) {
			child, err := fromAny(val[key], depth+1)
			if err != nil {
				return nil, err
			}
			obj.put(key, child)
		}
		return obj, nil
	case map[string]*Node:
		obj := NewObject()
		for _, key := range slices.Sorted(maps.Keys(val)) {
			obj.put(key, orNull(val[key]))
		}
		return obj, nil
	default:
		return nil, newOperationError("from_any", fmt.Sprintf("unsupported type %T", v), ErrTypeMismatch)
	}
}

// MarshalJSON implements json.Marshaler with compact output
func (n *Node) MarshalJSON() ([]byte, error) {
	return []byte(ToText(n, Compact, 0)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Node) UnmarshalJSON(data []byte) error {
	if n == sharedNull {
		return newOperationError("unmarshal_json", "cannot overwrite the shared null node", ErrTypeMismatch)
	}
	parsed, err := parse(string(data), nil)
	if err != nil {
		return err
	}
	*n = *parsed.Clone()
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the tagged
// binary format.
func (n *Node) MarshalBinary() ([]byte, error) {
	return EncodeBinary(n), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (n *Node) UnmarshalBinary(data []byte) error {
	if n == sharedNull {
		return newOperationError("unmarshal_binary", "cannot overwrite the shared null node", ErrTypeMismatch)
	}
	decoded, err := decodeBinary(data, nil)
	if err != nil {
		return err
	}
	*n = *decoded.Clone()
	return nil
}

// formatNumber renders a float64 as the shortest decimal that parses back
// to the same value. Non-finite values use the NaN/Infinity spellings the
// parser accepts.
func formatNumber(f float64) string {
	return string(appendNumber(nil, f))
}

func appendNumber(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, literalNaN...)
	case math.IsInf(f, 1):
		return append(dst, literalInfinity...)
	case math.IsInf(f, -1):
		return append(append(dst, '-'), literalInfinity...)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.AppendFloat(dst, f, format, -1, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// parseFloatLenient parses an invariant float literal, returning 0 for
// anything that is not one.
func parseFloatLenient(s string) float64 {
	f, err := fastfloat.Parse(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return f
}

func truncateInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}
