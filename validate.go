package sntool

import (
	"github.com/akeil/sntool/internal/errors"
	"github.com/akeil/sntool/pkg/layers"
)

// Validate checks the document and all pages and layers for consistent data.
// Returns an error if invalid data is found, nil if everything is fine.
func (s *Supernote) Validate() error {
	if s.PageWidth <= 0 || s.PageHeight <= 0 {
		return errors.NewValidationError("invalid page size %dx%d", s.PageWidth, s.PageHeight)
	}

	if s.Keywords == nil || s.Titles == nil {
		return errors.NewValidationError("keywords and titles must not be nil")
	}

	for _, p := range s.Pages {
		err := p.Validate()
		if err != nil {
			return errors.Wrap(err, "page %d", p.Number)
		}
	}

	return nil
}

// Validate checks that every layer holds its own role and that the
// paint order only names known roles.
func (p *Page) Validate() error {
	for i, l := range p.Layers {
		if l.Name != layers.Name(i) {
			return errors.NewValidationError("layer %v in slot %v", l.Name, layers.Name(i))
		}
		if l.Bitmap == nil || l.VectorGraph == nil || l.Recogn == nil {
			return errors.NewValidationError("layer %v has nil content", l.Name)
		}
	}

	seen := make(map[layers.Name]bool, len(p.LayerSeq))
	for _, n := range p.LayerSeq {
		if !n.Valid() {
			return errors.NewValidationError("invalid layer %d in sequence", int(n))
		}
		if seen[n] {
			return errors.NewValidationError("layer %v repeats in sequence", n)
		}
		seen[n] = true
	}

	return nil
}
