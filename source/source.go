// Package source defines byte-level positions within a source text.
package source

import "fmt"

// BytePos is a byte offset into a source text.
type BytePos uint32

// ByteRange is a half-open range [Start, End) of byte offsets.
//
// INVARIANT: Start <= End.
type ByteRange struct {
	Start, End BytePos
}

// NewByteRange creates a range. start must not exceed end.
func NewByteRange(start, end BytePos) ByteRange {
	return ByteRange{Start: start, End: end}
}

// Empty reports whether the range covers no bytes.
func (r ByteRange) Empty() bool { return r.Start == r.End }

// Len returns the number of bytes covered.
func (r ByteRange) Len() int { return int(r.End - r.Start) }

// Contains reports whether other lies entirely within r.
func (r ByteRange) Contains(other ByteRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Cover returns the smallest range containing both r and other.
func (r ByteRange) Cover(other ByteRange) ByteRange {
	c := r
	if other.Start < c.Start {
		c.Start = other.Start
	}
	if other.End > c.End {
		c.End = other.End
	}
	return c
}

// String returns a human-readable "start..end".
func (r ByteRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
