// Package testutil builds Supernote-style buffers in memory for tests.
package testutil

import (
	"fmt"
	"strings"
)

// Builder lays out length-prefixed blocks in a byte buffer.
type Builder struct {
	buf        []byte
	lengthSize int
	addrSize   int
}

// NewBuilder starts a buffer with the given raw preamble
// (file type and signature) using 4 byte addresses and lengths.
func NewBuilder(preamble string) *Builder {
	return &Builder{
		buf:        []byte(preamble),
		lengthSize: 4,
		addrSize:   4,
	}
}

// Len is the current size of the buffer.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Block appends a block with the given payload and returns its address.
func (b *Builder) Block(payload []byte) uint64 {
	addr := uint64(len(b.buf))
	b.buf = append(b.buf, LE(uint64(len(payload)), b.lengthSize)...)
	b.buf = append(b.buf, payload...)
	return addr
}

// Text appends a block with a text payload.
func (b *Builder) Text(s string) uint64 {
	return b.Block([]byte(s))
}

// Tags appends a block with <key:value> tags built from alternating
// keys and values.
func (b *Builder) Tags(kv ...string) uint64 {
	return b.Text(Tags(kv...))
}

// Bytes finishes the buffer with a trailer that holds the footer address.
func (b *Builder) Bytes(footer uint64) []byte {
	out := make([]byte, 0, len(b.buf)+b.addrSize)
	out = append(out, b.buf...)
	return append(out, LE(footer, b.addrSize)...)
}

// Tags formats alternating keys and values as <key:value> tags.
func Tags(kv ...string) string {
	if len(kv)%2 != 0 {
		panic("testutil: odd number of tag arguments")
	}
	var sb strings.Builder
	for i := 0; i < len(kv); i += 2 {
		fmt.Fprintf(&sb, "<%s:%s>", kv[i], kv[i+1])
	}
	return sb.String()
}

// Addr formats an address for use as a tag value.
func Addr(a uint64) string {
	return fmt.Sprintf("%d", a)
}

// LE encodes v as a little-endian integer of width bytes.
func LE(v uint64, width int) []byte {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = byte(v >> (8 * uint(i)))
	}
	return out
}
