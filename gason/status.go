package gason

import "fmt"

// Status describes why a parse stopped. The set is closed: every parse
// ends with exactly one of these, and no error is ever retried or
// recovered internally.
type Status uint8

const (
	OK Status = iota
	BadNumber
	BadString
	UnknownIdentifier
	Overflow
	Underflow
	MismatchBracket
	UnexpectedCharacter
)

// String returns a short human-readable description.
func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadNumber:
		return "bad number"
	case BadString:
		return "bad string"
	case UnknownIdentifier:
		return "unknown identifier"
	case Overflow:
		return "overflow"
	case Underflow:
		return "underflow"
	case MismatchBracket:
		return "mismatch bracket"
	case UnexpectedCharacter:
		return "unexpected character"
	default:
		return "unknown status"
	}
}

// ParseError reports the first deviation from the grammar together with
// the byte offset of the offending character.
type ParseError struct {
	Status Status
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Status, e.Offset)
}
