//go:build !gason_unchecked

package gason

// debugChecks gates the accessor and payload preconditions. The checks
// are constant-folded away entirely when the gason_unchecked build tag
// is set; misuse is then undefined behavior, matching the zero-overhead
// goal of the encoding.
const debugChecks = true
