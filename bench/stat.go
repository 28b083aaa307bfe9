// Package bench drives repeated parses and walks the resulting trees,
// tallying per-tag node counts and timings. It consumes only the
// traversal surface of the gason package.
package bench

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/5l1v3r1/gason/gason"
)

// Stat tallies one full traversal of a document tree: a count per tag,
// the member/element totals, and the aggregate length of decoded
// strings (object keys included, as in the classic gason benchmark).
//
// Digest is an xxhash over everything the traversal observed, in
// order. Two traversals of the same tree must produce the same digest;
// the benchmark runner uses it to verify determinism and to keep the
// walk from being optimized away.
type Stat struct {
	Objects  uint64
	Arrays   uint64
	Numbers  uint64
	Strings  uint64
	Trues    uint64
	Falses   uint64
	Nulls    uint64
	Members  uint64
	Elements uint64

	StringBytes uint64
	Digest      uint64
}

// Nodes returns the total number of container nodes visited.
func (s Stat) Nodes() uint64 { return s.Members + s.Elements }

// Collect walks doc and returns its tally.
func Collect(doc *gason.Document) Stat {
	var s Stat
	h := xxhash.New()
	collect(doc, doc.Root(), &s, h)
	s.Digest = h.Sum64()
	return s
}

func collect(d *gason.Document, v gason.Value, s *Stat, h *xxhash.Digest) {
	switch v.Tag() {
	case gason.TagObject:
		s.Objects++
		for k, m := range d.Members(v) {
			s.Members++
			s.Strings++
			s.StringBytes += uint64(len(k))
			h.Write(k)
			collect(d, m, s, h)
		}
	case gason.TagArray:
		s.Arrays++
		for e := range d.Elems(v) {
			s.Elements++
			collect(d, e, s, h)
		}
	case gason.TagString:
		s.Strings++
		b := d.Str(v)
		s.StringBytes += uint64(len(b))
		h.Write(b)
	case gason.TagNumber:
		s.Numbers++
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.Number()))
		h.Write(buf[:])
	case gason.TagBool:
		if v.Bool() {
			s.Trues++
			h.Write([]byte{'t'})
		} else {
			s.Falses++
			h.Write([]byte{'f'})
		}
	case gason.TagNull:
		s.Nulls++
		h.Write([]byte{'n'})
	}
}
