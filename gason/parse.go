package gason

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"
)

// Parse scans buf once and builds a document tree backed by a.
//
// buf is mutated: escape sequences inside strings are contracted in
// place, shifting the rest of the string left, and each decoded string
// is terminated with a NUL written over its closing quote. Bytes
// between a string's decoded span and its original closing quote are
// unspecified remnants and must not be read.
//
// On success the returned error is nil and Document.End marks the first
// unconsumed byte (trailing whitespace is consumed). On failure the
// error is a *ParseError and the tree must not be used.
func Parse(buf []byte, a *Arena) (*Document, error) {
	root, end, st := ParseStatus(buf, a)
	if st != OK {
		return nil, &ParseError{Status: st, Offset: end}
	}
	return &Document{buf: buf, a: a, root: root, end: end}, nil
}

// ParseStatus is the raw form of [Parse]: it returns the root value,
// the offset of the first unconsumed byte (the offending byte when
// status != OK), and the status itself. The root is unspecified unless
// status is OK.
func ParseStatus(buf []byte, a *Arena) (Value, int, Status) {
	p := parser{buf: buf, a: a}
	v, st := p.parseValue()
	if st != OK {
		return Value{}, p.pos, st
	}
	p.skipWS()
	return v, p.pos, OK
}

// parser is the single-pass recursive-descent state machine. pos always
// points at the next unconsumed byte; on error it points at the
// offending one.
type parser struct {
	buf []byte
	a   *Arena
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.buf) }

func (p *parser) skipWS() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseValue() (Value, Status) {
	p.skipWS()
	if p.eof() {
		return Value{}, UnexpectedCharacter
	}
	switch c := p.buf[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		off, st := p.parseString()
		if st != OK {
			return Value{}, st
		}
		return boxed(TagString, uint64(off)), OK
	case c == 't' || c == 'f' || c == 'n':
		return p.parseIdent()
	case c == '-' || ('0' <= c && c <= '9'):
		return p.parseNumber()
	default:
		return Value{}, UnexpectedCharacter
	}
}

// parseObject consumes `{ "key" : value , ... }`. Member nodes are
// linked in reverse encounter order while scanning and the chain is
// reversed once at the closing brace, so the finished container reads
// in original insertion order (two-phase: build reversed, then relink).
func (p *parser) parseObject() (Value, Status) {
	p.pos++ // '{'
	p.skipWS()
	if p.eof() {
		return Value{}, MismatchBracket
	}
	if p.buf[p.pos] == '}' {
		p.pos++
		return boxed(TagObject, 0), OK
	}
	var rev *Node // chain in reverse encounter order
	var first handle
	for {
		p.skipWS()
		if p.eof() {
			return Value{}, MismatchBracket
		}
		if p.buf[p.pos] != '"' {
			return Value{}, UnexpectedCharacter
		}
		key, st := p.parseString()
		if st != OK {
			return Value{}, st
		}
		p.skipWS()
		if p.eof() {
			return Value{}, MismatchBracket
		}
		if p.buf[p.pos] != ':' {
			return Value{}, UnexpectedCharacter
		}
		p.pos++
		v, st := p.parseValue()
		if st != OK {
			return Value{}, st
		}
		h, n := p.a.alloc()
		n.key = int64(key)
		n.value = v
		n.next = rev
		rev = n
		if first == 0 {
			first = h
		}
		p.skipWS()
		if p.eof() {
			return Value{}, MismatchBracket
		}
		switch p.buf[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			reverseChain(rev)
			return boxed(TagObject, uint64(first)), OK
		case ']':
			return Value{}, MismatchBracket
		default:
			return Value{}, UnexpectedCharacter
		}
	}
}

// parseArray consumes `[ value , ... ]` with the same
// reverse-then-relink discipline as parseObject.
func (p *parser) parseArray() (Value, Status) {
	p.pos++ // '['
	p.skipWS()
	if p.eof() {
		return Value{}, MismatchBracket
	}
	if p.buf[p.pos] == ']' {
		p.pos++
		return boxed(TagArray, 0), OK
	}
	var rev *Node
	var first handle
	for {
		p.skipWS()
		if p.eof() || p.buf[p.pos] == '}' {
			return Value{}, MismatchBracket
		}
		v, st := p.parseValue()
		if st != OK {
			return Value{}, st
		}
		h, n := p.a.alloc()
		n.value = v
		n.next = rev
		rev = n
		if first == 0 {
			first = h
		}
		p.skipWS()
		if p.eof() {
			return Value{}, MismatchBracket
		}
		switch p.buf[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			reverseChain(rev)
			return boxed(TagArray, uint64(first)), OK
		case '}':
			return Value{}, MismatchBracket
		default:
			return Value{}, UnexpectedCharacter
		}
	}
}

// reverseChain relinks a prepend-built chain into encounter order. The
// returned head is the first-allocated node, whose handle the container
// value already carries.
func reverseChain(n *Node) *Node {
	var prev *Node
	for n != nil {
		next := n.next
		n.next = prev
		prev = n
		n = next
	}
	return prev
}

// parseString consumes a quoted string, decoding escapes in place. The
// write cursor trails the read cursor, so the decoded bytes always fit
// inside the span they came from; a NUL is written at the end of the
// decoded text. Returns the buffer offset of the first decoded byte.
func (p *parser) parseString() (int, Status) {
	p.pos++ // opening quote
	start := p.pos
	w := p.pos
	for {
		if p.eof() {
			return 0, BadString
		}
		c := p.buf[p.pos]
		switch {
		case c == '"':
			p.pos++
			p.buf[w] = 0
			return start, OK
		case c < 0x20:
			return 0, BadString
		case c == '\\':
			if p.pos+1 >= len(p.buf) {
				p.pos = len(p.buf)
				return 0, BadString
			}
			switch e := p.buf[p.pos+1]; e {
			case '"', '\\', '/':
				p.buf[w] = e
				w++
				p.pos += 2
			case 'b':
				p.buf[w] = '\b'
				w++
				p.pos += 2
			case 'f':
				p.buf[w] = '\f'
				w++
				p.pos += 2
			case 'n':
				p.buf[w] = '\n'
				w++
				p.pos += 2
			case 'r':
				p.buf[w] = '\r'
				w++
				p.pos += 2
			case 't':
				p.buf[w] = '\t'
				w++
				p.pos += 2
			case 'u':
				n, st := p.decodeUnicode(w)
				if st != OK {
					return 0, st
				}
				w += n
			default:
				p.pos++
				return 0, BadString
			}
		default:
			p.buf[w] = c
			w++
			p.pos++
		}
	}
}

// decodeUnicode resolves one \uXXXX escape starting at p.pos (which
// points at the backslash), composing surrogate pairs for codepoints
// above the Basic Multilingual Plane. The decoded rune is written at w;
// the number of bytes written is returned. UTF-8 output is never longer
// than the escape text it replaces.
func (p *parser) decodeUnicode(w int) (int, Status) {
	u1, ok := hex4(p.buf, p.pos+2)
	if !ok {
		return 0, BadString
	}
	r := rune(u1)
	size := 6
	if utf16.IsSurrogate(r) {
		if p.pos+12 > len(p.buf) || p.buf[p.pos+6] != '\\' || p.buf[p.pos+7] != 'u' {
			return 0, BadString
		}
		u2, ok := hex4(p.buf, p.pos+8)
		if !ok {
			return 0, BadString
		}
		r = utf16.DecodeRune(rune(u1), rune(u2))
		if r == utf8.RuneError {
			return 0, BadString
		}
		size = 12
	}
	n := utf8.EncodeRune(p.buf[w:], r)
	p.pos += size
	return n, OK
}

func hex4(b []byte, i int) (uint32, bool) {
	if i+4 > len(b) {
		return 0, false
	}
	var u uint32
	for j := 0; j < 4; j++ {
		u <<= 4
		switch c := b[i+j]; {
		case '0' <= c && c <= '9':
			u |= uint32(c - '0')
		case 'a' <= c && c <= 'f':
			u |= uint32(c-'a') + 10
		case 'A' <= c && c <= 'F':
			u |= uint32(c-'A') + 10
		default:
			return 0, false
		}
	}
	return u, true
}

// parseNumber scans a JSON number token and converts it. A literal
// whose magnitude exceeds the double range reports Overflow; a nonzero
// literal that rounds below the smallest denormal reports Underflow.
// strconv only flags the overflow side with ErrRange (underflow to
// zero parses "cleanly"), so the scan tracks whether the mantissa held
// a nonzero digit and treats a zero result from a nonzero mantissa as
// Underflow.
func (p *parser) parseNumber() (Value, Status) {
	start := p.pos
	nonzero := false
	if p.buf[p.pos] == '-' {
		p.pos++
	}
	if p.eof() || !isDigit(p.buf[p.pos]) {
		return Value{}, BadNumber
	}
	if p.buf[p.pos] == '0' {
		p.pos++
		if !p.eof() && isDigit(p.buf[p.pos]) {
			return Value{}, BadNumber // leading zero
		}
	} else {
		nonzero = true
		for !p.eof() && isDigit(p.buf[p.pos]) {
			p.pos++
		}
	}
	if !p.eof() && p.buf[p.pos] == '.' {
		p.pos++
		if p.eof() || !isDigit(p.buf[p.pos]) {
			return Value{}, BadNumber
		}
		for !p.eof() && isDigit(p.buf[p.pos]) {
			if p.buf[p.pos] != '0' {
				nonzero = true
			}
			p.pos++
		}
	}
	if !p.eof() && (p.buf[p.pos] == 'e' || p.buf[p.pos] == 'E') {
		p.pos++
		if !p.eof() && (p.buf[p.pos] == '+' || p.buf[p.pos] == '-') {
			p.pos++
		}
		if p.eof() || !isDigit(p.buf[p.pos]) {
			return Value{}, BadNumber
		}
		for !p.eof() && isDigit(p.buf[p.pos]) {
			p.pos++
		}
	}
	f, err := strconv.ParseFloat(b2s(p.buf[start:p.pos]), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			p.pos = start
			if math.IsInf(f, 0) {
				return Value{}, Overflow
			}
			return Value{}, Underflow
		}
		p.pos = start
		return Value{}, BadNumber
	}
	if f == 0 && nonzero {
		p.pos = start
		return Value{}, Underflow
	}
	return Number(f), OK
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// parseIdent consumes an identifier-like run and matches it against the
// three JSON literals.
func (p *parser) parseIdent() (Value, Status) {
	start := p.pos
	for !p.eof() && isIdentChar(p.buf[p.pos]) {
		p.pos++
	}
	switch b2s(p.buf[start:p.pos]) {
	case "true":
		return Bool(true), OK
	case "false":
		return Bool(false), OK
	case "null":
		return Null(), OK
	default:
		p.pos = start
		return Value{}, UnknownIdentifier
	}
}

func isIdentChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}

// b2s reinterprets b as a string without copying. The result must not
// outlive b or observe later writes to it; every use here is an
// immediate, scoped read.
func b2s(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
