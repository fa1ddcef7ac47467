package jsonnode

import (
	"strconv"

	"github.com/cybergodev/jsonnode/internal"
)

// PathRef resolves path into a Ref chain rooted at n. Nothing is created
// until a materializing method is called on the returned Ref.
//
// Paths use dot notation with bracket indices ("users[0].name", numeric
// dot segments such as "users.0.name" also index arrays) or JSON Pointer
// ("/users/0/name", "~0" and "~1" escapes, "-" for the append position).
func (n *Node) PathRef(path string) (*Ref, error) {
	segments, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, newPathError(path, "path addresses the root", ErrInvalidPath)
	}
	return refFor(n, segments), nil
}

// GetPath returns the node at path, or nil when the path is malformed or
// any step is missing. The empty path returns n.
func (n *Node) GetPath(path string) *Node {
	segments, err := parsePath(path)
	if err != nil {
		return nil
	}
	if len(segments) == 0 {
		return n
	}
	return refFor(n, segments).Node()
}

// SetPath stores v at path, creating missing intermediate containers
func (n *Node) SetPath(path string, v *Node) error {
	r, err := n.PathRef(path)
	if err != nil {
		return err
	}
	return r.Set(v)
}

// DeletePath removes the value at path and returns it, or nil when it
// does not exist.
func (n *Node) DeletePath(path string) *Node {
	segments, err := parsePath(path)
	if err != nil || len(segments) == 0 {
		return nil
	}

	parent := n
	if len(segments) > 1 {
		parent = refFor(n, segments[:len(segments)-1]).Node()
	}
	last := segments[len(segments)-1]
	if last.Type == internal.ArrayIndexSegment {
		if parent.IsObject() {
			return parent.Remove(strconv.Itoa(last.Index))
		}
		if !parent.IsArray() {
			return nil
		}
		return parent.RemoveAt(last.Index)
	}
	return parent.Remove(last.Key)
}

func parsePath(path string) ([]internal.PathSegment, error) {
	segments, err := internal.ParsePath(path)
	if err != nil {
		return nil, newPathError(path, err.Error(), ErrInvalidPath)
	}
	return segments, nil
}

// refFor chains refs along segments. An index step into an existing
// Object addresses the key spelled by the index, so "/a/0" and "a.0" also
// reach numeric object keys.
func refFor(n *Node, segments []internal.PathSegment) *Ref {
	var r *Ref
	for i, seg := range segments {
		owner := n
		if i > 0 {
			owner = r.Node()
		}
		key, index := seg.Key, seg.Type == internal.ArrayIndexSegment
		if index && owner.IsObject() {
			key, index = strconv.Itoa(seg.Index), false
		}
		switch {
		case i == 0 && index:
			r = n.Index(seg.Index)
		case i == 0:
			r = n.Key(key)
		case index:
			r = r.Index(seg.Index)
		default:
			r = r.Key(key)
		}
	}
	return r
}
