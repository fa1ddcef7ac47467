package jsonnode

import "github.com/cybergodev/jsonnode/internal"

type refStep uint8

const (
	stepKey refStep = iota
	stepIndex
)

// Ref addresses a location inside a tree that may not exist yet.
//
// Reading through a Ref never changes the tree: a missing location reads
// as absent (Node returns nil, Text returns "", Float returns 0). Only the
// Set*, Ensure* and Append methods create the location, together with any
// missing containers on the way to it: an Array for an index step and an
// Object for a key step. Arrays are padded with Null up to the requested
// index; a negative index appends.
//
// A Ref that pointed at a missing location can be assigned once. Assigning
// it again returns ErrRefConsumed; re-resolve the location with Key or
// Index to replace the value. A Ref created for an existing location may be
// assigned any number of times.
type Ref struct {
	owner  *Node
	parent *Ref
	step   refStep
	key    string
	index  int

	bound    bool
	consumed bool
}

// Key returns a Ref to the value under key in n
func (n *Node) Key(key string) *Ref {
	r := &Ref{owner: n, step: stepKey, key: key}
	r.bound = r.current() != nil
	return r
}

// Index returns a Ref to the i-th element of n. A negative i addresses the
// position after the last element.
func (n *Node) Index(i int) *Ref {
	r := &Ref{owner: n, step: stepIndex, index: i}
	r.bound = r.current() != nil
	return r
}

// Key returns a Ref to the value under key in the value r addresses
func (r *Ref) Key(key string) *Ref {
	child := &Ref{parent: r, step: stepKey, key: key}
	child.bound = child.current() != nil
	return child
}

// Index returns a Ref to the i-th element of the value r addresses
func (r *Ref) Index(i int) *Ref {
	child := &Ref{parent: r, step: stepIndex, index: i}
	child.bound = child.current() != nil
	return child
}

// Node returns the addressed node, or nil when the location does not exist
func (r *Ref) Node() *Node { return r.current() }

// Exists reports whether the location holds a value
func (r *Ref) Exists() bool { return r.current() != nil }

// Kind returns the kind of the addressed value, KindNull when missing
func (r *Ref) Kind() Kind { return r.current().Kind() }

// Text returns the text view of the addressed value, "" when missing
func (r *Ref) Text() string {
	if n := r.current(); n != nil {
		return n.Text()
	}
	return ""
}

func (r *Ref) Float() float64 { return r.current().Float() }
func (r *Ref) Int() int       { return r.current().Int() }
func (r *Ref) Int64() int64   { return r.current().Int64() }
func (r *Ref) Bool() bool     { return r.current().Bool() }
func (r *Ref) Len() int       { return r.current().Len() }

// Path renders the location in dot and bracket notation
func (r *Ref) Path() string {
	return internal.FormatPath(r.segments())
}

// Pointer renders the location as a JSON Pointer. A negative index is
// rendered as "-", the position after the last element.
func (r *Ref) Pointer() string {
	return internal.FormatPointer(r.segments())
}

func (r *Ref) segments() []internal.PathSegment {
	var segments []internal.PathSegment
	if r.parent != nil {
		segments = r.parent.segments()
	}
	if r.step == stepIndex {
		return append(segments, internal.PathSegment{Type: internal.ArrayIndexSegment, Index: r.index})
	}
	return append(segments, internal.PathSegment{Type: internal.PropertySegment, Key: r.key})
}

// Set stores v at the location, creating missing containers on the way.
// A nil v stores Null.
func (r *Ref) Set(v *Node) error {
	if r.consumed {
		return newError("set", r.Path(), "pending location was already assigned", ErrRefConsumed)
	}
	if err := r.store(orNull(v)); err != nil {
		return err
	}
	if !r.bound {
		r.consumed = true
	}
	return nil
}

func (r *Ref) SetString(v string) error { return r.Set(NewString(v)) }
func (r *Ref) SetFloat(v float64) error { return r.Set(NewNumber(v)) }
func (r *Ref) SetInt(v int) error       { return r.Set(NewInt(v)) }
func (r *Ref) SetBool(v bool) error     { return r.Set(NewBool(v)) }
func (r *Ref) SetNull() error           { return r.Set(nil) }

// EnsureArray returns the Array at the location, creating it when the
// location is missing or holds Null.
func (r *Ref) EnsureArray() (*Node, error) {
	return r.ensure(KindArray)
}

// EnsureObject returns the Object at the location, creating it when the
// location is missing or holds Null.
func (r *Ref) EnsureObject() (*Node, error) {
	return r.ensure(KindObject)
}

// Append adds v to the Array at the location, creating the Array first
// when needed.
func (r *Ref) Append(v *Node) error {
	arr, err := r.EnsureArray()
	if err != nil {
		return err
	}
	return arr.Append(v)
}

// ownerNode returns the existing container the last step is applied to
func (r *Ref) ownerNode() *Node {
	if r.parent != nil {
		return r.parent.current()
	}
	return r.owner
}

// current looks the location up without creating anything
func (r *Ref) current() *Node {
	owner := r.ownerNode()
	if r.step == stepKey {
		return owner.Get(r.key)
	}
	if !owner.IsArray() || r.index < 0 {
		return nil
	}
	return owner.At(r.index)
}

func (r *Ref) ownerKind() Kind {
	if r.step == stepIndex {
		return KindArray
	}
	return KindObject
}

func (r *Ref) ensure(kind Kind) (*Node, error) {
	cur := r.current()
	switch {
	case cur.Kind() == kind:
		return cur, nil
	case cur != nil && !cur.IsNull():
		return nil, newError("ensure", r.Path(), "location holds "+cur.Kind().String()+", want "+kind.String(), ErrTypeMismatch)
	case r.consumed:
		return nil, newError("ensure", r.Path(), "pending location was already assigned", ErrRefConsumed)
	}

	var created *Node
	if kind == KindArray {
		created = &Node{kind: KindArray}
	} else {
		created = NewObject()
	}
	if err := r.store(created); err != nil {
		return nil, err
	}
	if !r.bound {
		r.consumed = true
	}
	return created, nil
}

// store writes v into the owner, materializing the owner first. Kind
// checks on existing nodes happen before anything is created, so a failed
// store leaves the tree untouched.
func (r *Ref) store(v *Node) error {
	var owner *Node
	if r.parent != nil {
		var err error
		if owner, err = r.parent.ensure(r.ownerKind()); err != nil {
			return err
		}
	} else {
		owner = r.owner
		if owner.Kind() != r.ownerKind() {
			return newError("set", r.Path(), "cannot address "+owner.Kind().String()+" node by "+r.stepName(), ErrTypeMismatch)
		}
	}

	if r.step == stepKey {
		owner.put(r.key, v)
		return nil
	}
	switch {
	case r.index < 0:
		r.index = len(owner.items)
		owner.items = append(owner.items, v)
	case r.index < len(owner.items):
		owner.items[r.index] = v
	default:
		for len(owner.items) < r.index {
			owner.items = append(owner.items, sharedNull)
		}
		owner.items = append(owner.items, v)
	}
	return nil
}

func (r *Ref) stepName() string {
	if r.step == stepIndex {
		return "index"
	}
	return "key"
}
