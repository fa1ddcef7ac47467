package jsonnode

import "iter"

// Len returns the number of children of a container, 0 for scalars
func (n *Node) Len() int {
	switch n.Kind() {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.fields)
	case KindNull, KindBool, KindNumber, KindString:
		return 0
	default:
		panic(unknownKind(n.Kind()))
	}
}

// At returns the i-th array element or the value of the i-th object entry
// in insertion order. It returns nil when i is out of range or n is a scalar.
func (n *Node) At(i int) *Node {
	switch n.Kind() {
	case KindArray:
		if i < 0 || i >= len(n.items) {
			return nil
		}
		return n.items[i]
	case KindObject:
		if i < 0 || i >= len(n.fields) {
			return nil
		}
		return n.fields[i].value
	case KindNull, KindBool, KindNumber, KindString:
		return nil
	default:
		panic(unknownKind(n.Kind()))
	}
}

// Get returns the value stored under key, or nil when n is not an object
// or has no such key.
func (n *Node) Get(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	if pos, ok := n.index[key]; ok {
		return n.fields[pos].value
	}
	return nil
}

// HasKey reports whether n is an object holding key
func (n *Node) HasKey(key string) bool {
	if !n.IsObject() {
		return false
	}
	_, ok := n.index[key]
	return ok
}

// GetOrDefault returns the value under key, or def when it is missing
func (n *Node) GetOrDefault(key string, def *Node) *Node {
	if v := n.Get(key); v != nil {
		return v
	}
	return def
}

// Keys returns the object keys in insertion order
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	keys := make([]string, len(n.fields))
	for i, f := range n.fields {
		keys[i] = f.key
	}
	return keys
}

// Values returns the direct children in order
func (n *Node) Values() []*Node {
	switch n.Kind() {
	case KindArray:
		return append([]*Node(nil), n.items...)
	case KindObject:
		values := make([]*Node, len(n.fields))
		for i, f := range n.fields {
			values[i] = f.value
		}
		return values
	case KindNull, KindBool, KindNumber, KindString:
		return nil
	default:
		panic(unknownKind(n.Kind()))
	}
}

// All iterates over the children of n. Object entries yield their key;
// array elements yield an empty key.
func (n *Node) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		switch n.Kind() {
		case KindArray:
			for _, item := range n.items {
				if !yield("", item) {
					return
				}
			}
		case KindObject:
			for _, f := range n.fields {
				if !yield(f.key, f.value) {
					return
				}
			}
		case KindNull, KindBool, KindNumber, KindString:
		default:
			panic(unknownKind(n.Kind()))
		}
	}
}

// Children iterates over the direct children of n
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range n.All() {
			if !yield(child) {
				return
			}
		}
	}
}

// DeepChildren iterates over the leaves below n in document order.
// Containers are descended into and not yielded themselves; a scalar
// child is yielded as is.
func (n *Node) DeepChildren() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walkLeaves(yield)
	}
}

func (n *Node) walkLeaves(yield func(*Node) bool) bool {
	for child := range n.Children() {
		if child.IsContainer() {
			if !child.walkLeaves(yield) {
				return false
			}
			continue
		}
		if !yield(child) {
			return false
		}
	}
	return true
}

// Set stores v under key. On an object an existing key is overwritten in
// place; a new key is appended. On an array the key is ignored and v is
// appended. A nil v stores Null.
func (n *Node) Set(key string, v *Node) error {
	switch n.Kind() {
	case KindObject:
		n.put(key, orNull(v))
		return nil
	case KindArray:
		n.items = append(n.items, orNull(v))
		return nil
	case KindNull, KindBool, KindNumber, KindString:
		return newKindError("set", n.Kind(), "set key")
	default:
		panic(unknownKind(n.Kind()))
	}
}

// SetAt replaces the i-th array element, or the value of the i-th object
// entry. On an array, i == Len() appends.
func (n *Node) SetAt(i int, v *Node) error {
	switch n.Kind() {
	case KindArray:
		switch {
		case i >= 0 && i < len(n.items):
			n.items[i] = orNull(v)
		case i == len(n.items):
			n.items = append(n.items, orNull(v))
		default:
			return newOperationError("set_at", "index out of range", ErrInvalidPath)
		}
		return nil
	case KindObject:
		if i < 0 || i >= len(n.fields) {
			return newOperationError("set_at", "index out of range", ErrInvalidPath)
		}
		n.fields[i].value = orNull(v)
		return nil
	case KindNull, KindBool, KindNumber, KindString:
		return newKindError("set_at", n.Kind(), "set index")
	default:
		panic(unknownKind(n.Kind()))
	}
}

// Append adds v to the end of an array
func (n *Node) Append(v *Node) error {
	if !n.IsArray() {
		return newKindError("append", n.Kind(), "append")
	}
	n.items = append(n.items, orNull(v))
	return nil
}

// Remove deletes key from an object and returns the removed value, or nil
func (n *Node) Remove(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	pos, ok := n.index[key]
	if !ok {
		return nil
	}
	return n.removeField(pos)
}

// RemoveAt deletes the i-th child of a container and returns it, or nil
func (n *Node) RemoveAt(i int) *Node {
	switch n.Kind() {
	case KindArray:
		if i < 0 || i >= len(n.items) {
			return nil
		}
		removed := n.items[i]
		n.items = append(n.items[:i], n.items[i+1:]...)
		return removed
	case KindObject:
		if i < 0 || i >= len(n.fields) {
			return nil
		}
		return n.removeField(i)
	case KindNull, KindBool, KindNumber, KindString:
		return nil
	default:
		panic(unknownKind(n.Kind()))
	}
}

// RemoveNode deletes the first child that is child itself (identity, not
// equality) and returns it, or nil when it is not a child of n.
func (n *Node) RemoveNode(child *Node) *Node {
	if child == nil {
		return nil
	}
	switch n.Kind() {
	case KindArray:
		for i, item := range n.items {
			if item == child {
				return n.RemoveAt(i)
			}
		}
	case KindObject:
		for i, f := range n.fields {
			if f.value == child {
				return n.removeField(i)
			}
		}
	case KindNull, KindBool, KindNumber, KindString:
	default:
		panic(unknownKind(n.Kind()))
	}
	return nil
}

// Inline reports whether the container is forced to compact rendering
func (n *Node) Inline() bool {
	return n.IsContainer() && n.inline
}

// SetInline forces compact rendering of this container's subtree. It is a
// no-op on scalars.
func (n *Node) SetInline(inline bool) {
	if n.IsContainer() {
		n.inline = inline
	}
}

// put inserts or overwrites key keeping the original position
func (n *Node) put(key string, v *Node) {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	if pos, ok := n.index[key]; ok {
		n.fields[pos].value = v
		return
	}
	n.index[key] = len(n.fields)
	n.fields = append(n.fields, field{key: key, value: v})
}

func (n *Node) removeField(pos int) *Node {
	removed := n.fields[pos]
	n.fields = append(n.fields[:pos], n.fields[pos+1:]...)
	delete(n.index, removed.key)
	for i := pos; i < len(n.fields); i++ {
		n.index[n.fields[i].key] = i
	}
	return removed.value
}

// attach adds a child while building a tree: keyed on objects, appended on
// arrays.
func (n *Node) attach(key string, v *Node) {
	if n.kind == KindObject {
		n.put(key, v)
		return
	}
	n.items = append(n.items, v)
}
