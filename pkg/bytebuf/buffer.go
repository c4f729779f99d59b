// Package bytebuf implements the owned byte buffer that backs VM strings.
//
// A Buffer is a growable sequence of bytes owned by exactly one string
// value. No encoding invariant is enforced here: bytes may or may not be
// valid UTF-8, and callers that need valid text use ToValidString.
package bytebuf

import (
	"bytes"
	"iter"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Buffer is an exclusively owned, growable byte sequence.
// The zero value is an empty buffer ready to use.
type Buffer struct {
	inner []byte
}

// New returns an empty buffer with room for capacity bytes.
func New(capacity int) *Buffer {
	return &Buffer{inner: make([]byte, 0, capacity)}
}

// FromBytes copies b into a new buffer. The buffer never aliases b.
func FromBytes(b []byte) *Buffer {
	return &Buffer{inner: bytes.Clone(b)}
}

// FromString copies the bytes of s into a new buffer.
func FromString(s string) *Buffer {
	return &Buffer{inner: []byte(s)}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.inner)
}

// IsEmpty reports whether the buffer holds no bytes.
func (b *Buffer) IsEmpty() bool {
	return len(b.inner) == 0
}

// Append appends p to the buffer.
func (b *Buffer) Append(p []byte) {
	b.inner = append(b.inner, p...)
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.inner = append(b.inner, c)
}

// AppendString appends the bytes of s.
func (b *Buffer) AppendString(s string) {
	b.inner = append(b.inner, s...)
}

// Extend appends every byte yielded by seq.
func (b *Buffer) Extend(seq iter.Seq[byte]) {
	for c := range seq {
		b.inner = append(b.inner, c)
	}
}

// Replace discards the current contents and copies p in their place.
func (b *Buffer) Replace(p []byte) {
	b.inner = append(b.inner[:0], p...)
}

// Truncate keeps the first n bytes. It panics if n is out of range,
// matching bytes.Buffer.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.inner) {
		panic("bytebuf: truncation out of range")
	}
	b.inner = b.inner[:n]
}

// Bytes borrows the contents. The slice is only valid until the next
// mutation of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.inner
}

// IntoBytes returns an owned copy of the contents.
func (b *Buffer) IntoBytes() []byte {
	return bytes.Clone(b.inner)
}

// String returns the contents as a Go string without validating them.
func (b *Buffer) String() string {
	return string(b.inner)
}

// ToValidString returns the contents as text, replacing every ill-formed
// UTF-8 sequence with U+FFFD.
func (b *Buffer) ToValidString() string {
	out, _, err := transform.Bytes(runes.ReplaceIllFormed(), b.inner)
	if err != nil {
		// ReplaceIllFormed never fails on complete input.
		return string(b.inner)
	}
	return string(out)
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return FromBytes(b.inner)
}

// Equal reports whether both buffers hold the same bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(b.inner, other.inner)
}
