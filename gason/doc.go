// Package gason implements a single-pass, in-situ JSON parser.
//
// The parser converts a mutable text buffer into a document tree while
// performing exactly one pass over the input, allocating nothing per
// scalar value, and decoding escaped strings in place inside the
// caller's own buffer. It is meant to be embedded in latency- and
// memory-sensitive consumers that own the input buffer for the lifetime
// of the resulting tree.
//
// # Data Model
//
// Every parsed value is a [Value]: an 8-byte word that is either a
// literal IEEE-754 double or a quiet-NaN bit pattern carrying a 4-bit
// [Tag] and a 47-bit payload. String payloads are byte offsets into the
// input buffer; array and object payloads are handles into an [Arena]
// of linked member/element nodes.
//
// # In-Situ Parsing
//
//	a := new(gason.Arena)
//	buf := []byte(`{"x":[1,2,3],"y":"hi"}`)
//	doc, err := gason.Parse(buf, a)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for key, v := range doc.Members(doc.Root()) {
//	    fmt.Printf("%s: %v\n", key, v.Tag())
//	}
//
// Parse mutates buf: escape sequences are contracted in place, shifting
// the remaining bytes of each string left and terminating the decoded
// span with a NUL. The caller must not read or write buf from another
// goroutine while a parse is in flight, and the finished tree's string
// values stay valid only while both buf and the arena stay alive and
// unmodified.
//
// # Errors
//
// The parser stops at the first deviation from the JSON grammar and
// reports a [Status] from a closed set together with the byte offset of
// the offending character. There is no resynchronization and no partial
// tree recovery.
//
// # Concurrency
//
// An Arena is not safe for concurrent use; give each in-flight parse
// its own Arena (see [ArenaPool]). Distinct parses with distinct arenas
// and buffers share no mutable state.
package gason
