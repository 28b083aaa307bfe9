package gason

import (
	"bytes"
	"iter"
)

// Document is a parsed tree together with the buffer and arena it
// borrows from. It stays valid only while both remain alive and
// unmodified: mutating or freeing the buffer invalidates every string,
// and resetting the arena invalidates every node.
//
// Traversal never mutates the tree; walking the same Document twice
// yields identical sequences.
type Document struct {
	buf  []byte
	a    *Arena
	root Value
	end  int
}

// Root returns the root value of the document.
func (d *Document) Root() Value { return d.root }

// End returns the offset of the first byte the parser did not consume.
// Whitespace after the root value counts as consumed.
func (d *Document) End() int { return d.end }

// Buffer returns the underlying input buffer, including decoded string
// spans and escape remnants.
func (d *Document) Buffer() []byte { return d.buf }

// Str returns the decoded bytes of a string value without copying. The
// slice aliases the input buffer. The tag must be TagString.
func (d *Document) Str(v Value) []byte {
	return d.cstr(v.strOffset())
}

// StrString returns the decoded string value as a Go string (copies).
func (d *Document) StrString(v Value) string {
	return string(d.Str(v))
}

// Head returns the first node of an array or object chain, nil when the
// container is empty.
func (d *Document) Head(v Value) *Node {
	h := v.head()
	if h == 0 {
		return nil
	}
	return d.a.node(h)
}

// Key returns the decoded member key of an object node, nil for array
// element nodes. The slice aliases the input buffer.
func (d *Document) Key(n *Node) []byte {
	if n.key < 0 {
		return nil
	}
	return d.cstr(int(n.key))
}

// cstr slices the buffer from off up to the NUL terminator written by
// the in-place decoder.
func (d *Document) cstr(off int) []byte {
	b := d.buf[off:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i:i]
	}
	return b
}

// Elems iterates an array's values in insertion order. The tag must be
// TagArray.
func (d *Document) Elems(v Value) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for n := d.Head(v); n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Members iterates an object's (key, value) pairs in insertion order.
// The tag must be TagObject, and v must come from this Document: a
// handle resolved against a foreign arena lands on arbitrary nodes.
func (d *Document) Members(v Value) iter.Seq2[[]byte, Value] {
	return func(yield func([]byte, Value) bool) {
		for n := d.Head(v); n != nil; n = n.next {
			if debugChecks && n.key < 0 {
				panic("gason: object chain holds an element node; value from another document?")
			}
			if !yield(d.cstr(int(n.key)), n.value) {
				return
			}
		}
	}
}

// Count returns the number of elements or members of a container.
func (d *Document) Count(v Value) int {
	c := 0
	for n := d.Head(v); n != nil; n = n.next {
		c++
	}
	return c
}
