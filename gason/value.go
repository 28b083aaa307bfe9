package gason

import (
	"fmt"
	"math"
)

// Bit layout of a Value. Doubles occupy every bit pattern whose signed
// reinterpretation is at or below nanMask; tagged payloads live strictly
// above it, inside the quiet-NaN range.
const (
	payloadMask uint64 = 0x00007FFFFFFFFFFF
	nanMask     uint64 = 0x7FF8000000000000
	nullBits    uint64 = 0x7FFF800000000000
	tagShift           = 47
	tagBits     uint64 = 0xF
)

// Tag identifies the type of a Value.
type Tag uint8

const (
	TagNumber Tag = iota
	TagString
	TagBool
	TagArray
	TagObject

	// TagNull sits outside the normal tag range; it is produced only by
	// the reserved null bit pattern.
	TagNull Tag = 0xF
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagBool:
		return "bool"
	case TagArray:
		return "array"
	case TagObject:
		return "object"
	case TagNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is an 8-byte tagged word: either a literal IEEE-754 double or a
// quiet-NaN pattern carrying a 4-bit tag and a payload of at most 47
// bits. Values are copied freely; they borrow from the Document's
// buffer and arena rather than owning anything themselves.
//
// The zero Value is the number 0.0, not null; use [Null] for the null
// value.
type Value struct {
	bits uint64
}

// Null returns the distinguished null value. Its bit pattern is
// disjoint from both false and the number 0.0.
func Null() Value {
	return Value{nullBits}
}

// Number returns a Value holding f verbatim.
//
// f must not be a NaN whose bit pattern carries a nonzero tag field;
// ordinary arithmetic NaNs (including math.NaN, whose bits sit in the
// tagged range but decode to tag 0) do not collide and still read back
// as TagNumber.
func Number(f float64) Value {
	v := Value{math.Float64bits(f)}
	if debugChecks && v.Tag() != TagNumber {
		panic(fmt.Sprintf("gason: number bit pattern %#016x collides with the tagged range", v.bits))
	}
	return v
}

// Bool returns a Value holding b.
func Bool(b bool) Value {
	var payload uint64
	if b {
		payload = 1
	}
	return boxed(TagBool, payload)
}

// boxed packs a tag and payload into the quiet-NaN range. The 47-bit
// payload limit is a precondition, not a recoverable error.
func boxed(tag Tag, payload uint64) Value {
	if debugChecks {
		if uint64(tag) > tagBits {
			panic(fmt.Sprintf("gason: tag %d exceeds 4 bits", tag))
		}
		if payload > payloadMask {
			panic(fmt.Sprintf("gason: payload %#x exceeds 47 bits", payload))
		}
	}
	return Value{nanMask | uint64(tag)<<tagShift | payload}
}

// isDouble reports whether the bit pattern is a plain double. NaNs form
// a contiguous high range when reinterpreted as signed integers, so a
// single signed compare suffices.
func (v Value) isDouble() bool {
	return int64(v.bits) <= int64(nanMask)
}

// Tag returns the value's type tag. Any plain double is TagNumber.
func (v Value) Tag() Tag {
	if v.isDouble() {
		return TagNumber
	}
	return Tag(v.bits>>tagShift) & Tag(tagBits)
}

func (v Value) payload() uint64 {
	if debugChecks && v.isDouble() {
		panic("gason: payload of a plain number")
	}
	return v.bits & payloadMask
}

// Number returns the value as a float64. The tag must be TagNumber.
func (v Value) Number() float64 {
	assertTag(v, TagNumber)
	return math.Float64frombits(v.bits)
}

// Bool returns the value as a bool. The tag must be TagBool.
func (v Value) Bool() bool {
	assertTag(v, TagBool)
	return v.payload() != 0
}

// IsSet reports whether the value is anything other than null. It lets
// callers test "present and not explicitly null" without inspecting the
// tag; note that false and 0.0 are both set.
func (v Value) IsSet() bool {
	return v.bits != nullBits
}

// strOffset returns the buffer offset of a string payload.
func (v Value) strOffset() int {
	assertTag(v, TagString)
	return int(v.payload())
}

// head returns the arena handle of a container's first node, 0 if the
// container is empty.
func (v Value) head() handle {
	if debugChecks {
		if t := v.Tag(); t != TagArray && t != TagObject {
			panic("gason: " + t.String() + " value has no node chain")
		}
	}
	return handle(v.payload())
}

func assertTag(v Value, want Tag) {
	if debugChecks && v.Tag() != want {
		panic("gason: " + want.String() + " access on " + v.Tag().String() + " value")
	}
}
