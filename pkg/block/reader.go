// Package block provides bounds-checked access to the length-prefixed
// blocks that make up a Supernote file.
//
// Every field in the file is reached through the same indirection:
// an address (a little-endian unsigned integer) points to a block which
// starts with its own length, followed by the payload.
package block

import (
	"fmt"

	"github.com/akeil/sntool/internal/errors"
)

// MaxWidth is the widest integer field that can be decoded.
const MaxWidth = 8

// Config holds the field widths for one file format version.
type Config struct {
	// AddressSize is the width in bytes of an address field.
	AddressSize int
	// LengthSize is the width in bytes of a block length prefix.
	LengthSize int
}

// DefaultConfig returns the field widths used by the known format version.
func DefaultConfig() Config {
	return Config{
		AddressSize: 4,
		LengthSize:  4,
	}
}

// Validate checks that both widths can be decoded.
func (c Config) Validate() error {
	if err := checkWidth(c.AddressSize); err != nil {
		return errors.Wrap(err, "address size")
	}
	if err := checkWidth(c.LengthSize); err != nil {
		return errors.Wrap(err, "length size")
	}
	return nil
}

// ReadUintLE decodes width bytes starting at offset as a little-endian
// unsigned integer.
//
// An out of bounds error is returned if the field does not fit into data;
// in that case no byte is read.
func ReadUintLE(data []byte, offset uint64, width int) (uint64, error) {
	err := checkWidth(width)
	if err != nil {
		return 0, err
	}
	err = checkRange(data, offset, uint64(width))
	if err != nil {
		return 0, err
	}

	var val uint64
	mul := uint64(1)
	for i := 0; i < width; i++ {
		val += uint64(data[offset+uint64(i)]) * mul
		mul *= 0x100
	}
	return val, nil
}

// ContentAt returns the payload of the block at the given address.
// The block starts with a length prefix of width bytes.
//
// Address 0 marks an absent block; ContentAt returns nil and no error.
// The returned slice shares memory with data.
func ContentAt(data []byte, address uint64, width int) ([]byte, error) {
	if address == 0 {
		return nil, nil
	}

	n, err := ReadUintLE(data, address, width)
	if err != nil {
		return nil, err
	}

	start := address + uint64(width)
	err = checkRange(data, start, n)
	if err != nil {
		return nil, err
	}

	end := start + n
	return data[start:end:end], nil
}

func checkWidth(width int) error {
	if width < 1 || width > MaxWidth {
		return fmt.Errorf("invalid field width %d, must be 1..%d", width, MaxWidth)
	}
	return nil
}

// checkRange makes sure that n bytes starting at offset are within data.
// Written to avoid overflow for offsets close to the uint64 limit.
func checkRange(data []byte, offset, n uint64) error {
	size := uint64(len(data))
	if offset > size || n > size-offset {
		return errors.NewOutOfBounds(offset, n, len(data))
	}
	return nil
}

// Reader gives access to the blocks in a single buffer using the field
// widths from a Config.
//
// A Reader does not modify the buffer and can be shared.
type Reader struct {
	data []byte
	cfg  Config
}

// NewReader creates a Reader for the given file contents.
func NewReader(data []byte, cfg Config) (*Reader, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &Reader{data: data, cfg: cfg}, nil
}

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Config returns the field widths used by this reader.
func (r *Reader) Config() Config {
	return r.cfg
}

// Uint reads a little-endian unsigned integer of the given width.
func (r *Reader) Uint(offset uint64, width int) (uint64, error) {
	return ReadUintLE(r.data, offset, width)
}

// Address reads an address field at offset.
func (r *Reader) Address(offset uint64) (uint64, error) {
	return ReadUintLE(r.data, offset, r.cfg.AddressSize)
}

// Content returns the payload of the block at address,
// or nil if the address is 0.
func (r *Reader) Content(address uint64) ([]byte, error) {
	return ContentAt(r.data, address, r.cfg.LengthSize)
}

// Bytes returns n raw bytes at offset.
func (r *Reader) Bytes(offset uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid length %d", n)
	}
	err := checkRange(r.data, offset, uint64(n))
	if err != nil {
		return nil, err
	}
	end := offset + uint64(n)
	return r.data[offset:end:end], nil
}

// Trailer returns the address stored in the last AddressSize bytes of the
// buffer.
func (r *Reader) Trailer() (uint64, error) {
	w := uint64(r.cfg.AddressSize)
	size := uint64(len(r.data))
	if size < w {
		return 0, errors.NewOutOfBounds(0, w, len(r.data))
	}
	return r.Address(size - w)
}
