// Package layers describes the drawing layers of a Supernote page.
package layers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akeil/sntool/internal/errors"
)

// Name is the role of a layer within a page.
// The set of roles is closed, every page has exactly one layer per role.
type Name int

const (
	MainLayer Name = iota
	Layer1
	Layer2
	Layer3
	BgLayer
)

// Count is the number of layer roles, i.e. layers per page.
const Count = 5

// All lists the layer roles in their default order.
var All = []Name{MainLayer, Layer1, Layer2, Layer3, BgLayer}

var names = map[Name]string{
	MainLayer: "MAINLAYER",
	Layer1:    "LAYER1",
	Layer2:    "LAYER2",
	Layer3:    "LAYER3",
	BgLayer:   "BGLAYER",
}

// ParseName maps the role string used in the file (e.g. "MAINLAYER")
// to a Name. Unknown roles are an error.
func ParseName(s string) (Name, error) {
	for n, str := range names {
		if str == s {
			return n, nil
		}
	}
	return MainLayer, errors.NewUnknownLayerRole(s)
}

// ParseSeq parses a comma separated list of layer roles,
// e.g. "BGLAYER,MAINLAYER,LAYER1".
func ParseSeq(s string) ([]Name, error) {
	seq := make([]Name, 0, len(All))
	if strings.TrimSpace(s) == "" {
		return seq, nil
	}

	for _, part := range strings.Split(s, ",") {
		n, err := ParseName(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		seq = append(seq, n)
	}
	return seq, nil
}

// Valid tells if n is one of the known roles.
func (n Name) Valid() bool {
	_, ok := names[n]
	return ok
}

// String returns the role string as used in the file.
func (n Name) String() string {
	s, ok := names[n]
	if !ok {
		return "UNKNOWN"
	}
	return s
}

func (n Name) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("invalid layer name %d", int(n))
	}

	buf := bytes.NewBufferString(`"`)
	buf.WriteString(n.String())
	buf.WriteString(`"`)

	return buf.Bytes(), nil
}

func (n *Name) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}

	x, err := ParseName(s)
	if err != nil {
		return err
	}

	*n = x
	return nil
}
