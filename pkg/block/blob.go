package block

import (
	"encoding/json"
	"sync"
)

// Blob is a handle to a binary payload (bitmap, vector data, paths...)
// that is loaded on demand.
//
// A Blob is either unresolved, holding only the address of its block,
// or resolved, holding the payload bytes.
// Address 0 means there is no payload; such a Blob resolves to nil.
type Blob struct {
	address  uint64
	mx       sync.Mutex
	data     []byte
	resolved bool
}

// NewBlob creates an unresolved Blob for the block at address.
func NewBlob(address uint64) *Blob {
	return &Blob{address: address}
}

// Address is the address of the block that holds the payload.
func (b *Blob) Address() uint64 {
	if b == nil {
		return 0
	}
	return b.address
}

// Absent tells if there is no payload for this Blob.
func (b *Blob) Absent() bool {
	return b.Address() == 0
}

// IsResolved tells if the payload has been loaded.
func (b *Blob) IsResolved() bool {
	if b == nil {
		return false
	}
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.resolved
}

// Bytes returns the payload if it was resolved before.
// The second return value is false for unresolved Blobs.
func (b *Blob) Bytes() ([]byte, bool) {
	if b == nil {
		return nil, false
	}
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.data, b.resolved
}

// Resolve loads the payload from the given Reader.
// The payload is kept, subsequent calls return it without reading again.
func (b *Blob) Resolve(r *Reader) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	b.mx.Lock()
	defer b.mx.Unlock()

	if b.resolved {
		return b.data, nil
	}

	data, err := r.Content(b.address)
	if err != nil {
		return nil, err
	}
	b.data = data
	b.resolved = true
	return data, nil
}

type blobJSON struct {
	Address  uint64 `json:"address"`
	Resolved bool   `json:"resolved"`
	Size     int    `json:"size,omitempty"`
}

// MarshalJSON describes the Blob without its payload.
func (b *Blob) MarshalJSON() ([]byte, error) {
	data, ok := b.Bytes()
	return json.Marshal(blobJSON{
		Address:  b.Address(),
		Resolved: ok,
		Size:     len(data),
	})
}
