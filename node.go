package jsonnode

import "fmt"

// Kind identifies the variant held by a Node. The numeric values double as
// the tag bytes of the binary encoding and must not change.
type Kind uint8

const (
	KindArray  Kind = 1
	KindObject Kind = 2
	KindString Kind = 3
	KindNumber Kind = 4
	KindNull   Kind = 5
	KindBool   Kind = 6
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k >= KindArray && k <= KindBool
}

// Node is one value of a document tree.
//
// A Node holds exactly one variant selected by its Kind; the kind never
// changes after construction. A nil *Node reads as Null.
//
// Trees are not safe for concurrent mutation. Hand a Clone to another
// goroutine instead of sharing.
type Node struct {
	kind   Kind
	inline bool
	b      bool
	num    float64
	str    string
	items  []*Node
	fields []field
	index  map[string]int
}

// field is one object entry; fields keep insertion order
type field struct {
	key   string
	value *Node
}

// sharedNull is the immutable Null handed out when null reuse is on
var sharedNull = &Node{kind: KindNull}

func unknownKind(k Kind) string {
	return fmt.Sprintf("jsonnode: unknown node kind %d", uint8(k))
}

// Null returns the shared Null node
func Null() *Node { return sharedNull }

// NewBool creates a Bool node
func NewBool(v bool) *Node { return &Node{kind: KindBool, b: v} }

// NewNumber creates a Number node
func NewNumber(v float64) *Node { return &Node{kind: KindNumber, num: v} }

// NewInt creates a Number node from an int
func NewInt(v int) *Node { return &Node{kind: KindNumber, num: float64(v)} }

// NewString creates a String node
func NewString(v string) *Node { return &Node{kind: KindString, str: v} }

// NewArray creates an Array node holding items in order. Nil items are
// stored as Null.
func NewArray(items ...*Node) *Node {
	n := &Node{kind: KindArray, items: make([]*Node, 0, len(items))}
	for _, item := range items {
		n.items = append(n.items, orNull(item))
	}
	return n
}

// NewObject creates an empty Object node
func NewObject() *Node {
	return &Node{kind: KindObject, index: make(map[string]int)}
}

func orNull(n *Node) *Node {
	if n == nil {
		return sharedNull
	}
	return n
}

// Kind returns the variant of n
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

func (n *Node) IsNull() bool      { return n.Kind() == KindNull }
func (n *Node) IsBool() bool      { return n.Kind() == KindBool }
func (n *Node) IsNumber() bool    { return n.Kind() == KindNumber }
func (n *Node) IsString() bool    { return n.Kind() == KindString }
func (n *Node) IsArray() bool     { return n.Kind() == KindArray }
func (n *Node) IsObject() bool    { return n.Kind() == KindObject }
func (n *Node) IsContainer() bool { return n.IsArray() || n.IsObject() }

// Clone returns a deep copy of n. Only the shared Null keeps its identity.
func (n *Node) Clone() *Node {
	if n == nil || n == sharedNull {
		return sharedNull
	}
	switch n.kind {
	case KindNull:
		return &Node{kind: KindNull}
	case KindBool, KindNumber, KindString:
		c := *n
		return &c
	case KindArray:
		c := &Node{kind: KindArray, inline: n.inline, items: make([]*Node, len(n.items))}
		for i, item := range n.items {
			c.items[i] = item.Clone()
		}
		return c
	case KindObject:
		c := &Node{
			kind:   KindObject,
			inline: n.inline,
			fields: make([]field, len(n.fields)),
			index:  make(map[string]int, len(n.fields)),
		}
		for i, f := range n.fields {
			c.fields[i] = field{key: f.key, value: f.value.Clone()}
			c.index[f.key] = i
		}
		return c
	default:
		panic(unknownKind(n.kind))
	}
}

// Equal reports whether n and other hold the same value. Arrays compare
// element-wise in order; objects compare by key regardless of order.
// Numbers compare with ==, so NaN never equals itself.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n.Kind() != other.Kind() {
		return false
	}
	switch n.Kind() {
	case KindNull:
		return true
	case KindBool:
		return n.b == other.b
	case KindNumber:
		return n.num == other.num
	case KindString:
		return n.str == other.str
	case KindArray:
		if len(n.items) != len(other.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(n.fields) != len(other.fields) {
			return false
		}
		for _, f := range n.fields {
			pos, ok := other.index[f.key]
			if !ok || !f.value.Equal(other.fields[pos].value) {
				return false
			}
		}
		return true
	default:
		panic(unknownKind(n.Kind()))
	}
}
