package lowdown

import "bytes"

// Buffer is a growable byte buffer, per spec.md §4.1. It is a thin wrapper
// over bytes.Buffer: the standard library's own growable-byte-slice type
// already gives append, grow-on-demand, and byte-exact equality, so the
// wrapper exists only to expose the operation names spec.md uses
// (NewBuffer/Grow/Append/AppendByte/EqualBytes/EqualString) rather than to
// reimplement amortized-growth bookkeeping none of the example repos hand
// roll either. Not safe for concurrent use, matching spec.md §4.1.
type Buffer struct {
	buf bytes.Buffer
}

// NewBuffer returns a Buffer pre-sized to hold at least capHint bytes without
// reallocating.
func NewBuffer(capHint int) *Buffer {
	b := &Buffer{}
	if capHint > 0 {
		b.buf.Grow(capHint)
	}
	return b
}

// Grow ensures room for n more bytes without reallocating on the next
// Append.
func (b *Buffer) Grow(n int) { b.buf.Grow(n) }

// Append copies data onto the end of the buffer.
func (b *Buffer) Append(data []byte) { b.buf.Write(data) }

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) { b.buf.WriteByte(c) }

// AppendString appends a string's bytes.
func (b *Buffer) AppendString(s string) { b.buf.WriteString(s) }

// Bytes returns the buffer's current contents. The slice is shared with
// the Buffer and is invalidated by the next mutating call.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return b.buf.Len() }

// Reset empties the buffer, retaining its underlying storage.
func (b *Buffer) Reset() { b.buf.Reset() }

// EqualBytes reports whether the buffer's contents equal data.
func (b *Buffer) EqualBytes(data []byte) bool { return bytes.Equal(b.buf.Bytes(), data) }

// EqualString reports whether the buffer's contents equal s.
func (b *Buffer) EqualString(s string) bool { return string(b.buf.Bytes()) == s }
