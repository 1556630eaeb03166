// Package recogn decodes the handwriting recognition results stored with
// Supernote pages.
package recogn

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Status tells if recognition was requested or completed.
type Status int

const (
	None Status = iota
	Done
	Running
)

// ParseStatus maps the numeric status from the file ("0", "1", "2").
// Anything else is None.
func ParseStatus(s string) Status {
	switch s {
	case "1":
		return Done
	case "2":
		return Running
	default:
		return None
	}
}

func (s Status) String() string {
	switch s {
	case None:
		return "none"
	case Done:
		return "done"
	case Running:
		return "running"
	default:
		return "UNKNOWN"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	str := s.String()
	if str == "UNKNOWN" {
		return nil, fmt.Errorf("invalid recognition status %d", int(s))
	}

	buf := bytes.NewBufferString(`"`)
	buf.WriteString(str)
	buf.WriteString(`"`)

	return buf.Bytes(), nil
}

// TextType is the element type that holds the recognized text.
const TextType = "Text"

// Element is one labeled recognition result.
type Element struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Words []Word `json:"words,omitempty"`
}

// Word is a single recognized word.
// Whitespace and line breaks are words without a bounding box.
type Word struct {
	Label       string       `json:"label"`
	BoundingBox *BoundingBox `json:"bounding-box,omitempty"`
}

// BoundingBox is the pixel area of a word on the page.
type BoundingBox struct {
	Height int `json:"height"`
	Width  int `json:"width"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// the device writes fractional coordinates.
type rawBox struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type rawWord struct {
	Label       string  `json:"label"`
	BoundingBox *rawBox `json:"bounding-box"`
}

type rawElement struct {
	Type  string    `json:"type"`
	Label string    `json:"label"`
	Words []rawWord `json:"words"`
}

type rawResult struct {
	Type     string       `json:"type"`
	Elements []rawElement `json:"elements"`
}

// Decode reads a recognition result.
// The content is base64 encoded JSON.
func Decode(content []byte) ([]Element, error) {
	raw := bytes.TrimSpace(content)
	if len(raw) == 0 {
		return []Element{}, nil
	}

	data := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
	n, err := base64.StdEncoding.Decode(data, raw)
	if err != nil {
		return nil, fmt.Errorf("decode recognition text: %w", err)
	}

	var r rawResult
	err = json.Unmarshal(data[:n], &r)
	if err != nil {
		return nil, fmt.Errorf("parse recognition text: %w", err)
	}

	elements := make([]Element, len(r.Elements))
	for i, e := range r.Elements {
		elements[i] = newElement(e)
	}
	return elements, nil
}

func newElement(e rawElement) Element {
	var words []Word
	if len(e.Words) > 0 {
		words = make([]Word, len(e.Words))
		for i, w := range e.Words {
			words[i] = Word{Label: w.Label, BoundingBox: newBox(w.BoundingBox)}
		}
	}
	return Element{Type: e.Type, Label: e.Label, Words: words}
}

func newBox(b *rawBox) *BoundingBox {
	if b == nil {
		return nil
	}
	return &BoundingBox{
		Height: pixel(b.Height),
		Width:  pixel(b.Width),
		X:      pixel(b.X),
		Y:      pixel(b.Y),
	}
}

func pixel(v float64) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

// Text joins the labels of all text elements, one per line.
func Text(elements []Element) string {
	lines := make([]string, 0, len(elements))
	for _, e := range elements {
		if e.Type == TextType {
			lines = append(lines, e.Label)
		}
	}
	return strings.Join(lines, "\n")
}
