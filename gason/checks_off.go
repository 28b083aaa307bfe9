//go:build gason_unchecked

package gason

const debugChecks = false
