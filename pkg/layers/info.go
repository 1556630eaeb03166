package layers

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	recordRe = regexp.MustCompile(`\{([^{}]*)\}`)
	// the opening quote of a value is optional, the device writes numbers
	// and booleans without quotes.
	attrRe = regexp.MustCompile(`([^"\[{}\]]+)"#"?([^"\[{}\],]+)`)
)

// DefaultName is the name of a layer that has no name attribute.
const DefaultName = "Main layer"

// Info holds the presentation state of one layer as shown in the
// layer panel of the device.
type Info struct {
	LayerID           int    `json:"layerId"`
	Name              string `json:"name"`
	IsBackgroundLayer bool   `json:"isBackgroundLayer"`
	IsAllowAdd        bool   `json:"isAllowAdd"`
	IsCurrentLayer    bool   `json:"isCurrentLayer"`
	IsVisible         bool   `json:"isVisible"`
	IsDeleted         bool   `json:"isDeleted"`
	IsAllowUp         bool   `json:"isAllowUp"`
	IsAllowDown       bool   `json:"isAllowDown"`
}

// DecodeInfo parses layer records of the form
//
//	{"layerId"#"2","name"#"Layer 2","isVisible"#"true"}
//
// Each {...} group yields one Info, in the order they appear.
// Unknown attributes are ignored, missing ones take their defaults.
func DecodeInfo(text string) []Info {
	matches := recordRe.FindAllStringSubmatch(text, -1)
	infos := make([]Info, 0, len(matches))
	for _, m := range matches {
		infos = append(infos, newInfo(attributes(m[1])))
	}
	return infos
}

func attributes(record string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(record, -1) {
		attrs[strings.TrimSpace(m[1])] = m[2]
	}
	return attrs
}

func newInfo(attrs map[string]string) Info {
	flag := func(key string) bool {
		return attrs[key] == "true"
	}

	return Info{
		LayerID:           layerID(attrs["layerId"]),
		Name:              nameOr(attrs, DefaultName),
		IsBackgroundLayer: flag("isBackgroundLayer"),
		IsAllowAdd:        flag("isAllowAdd"),
		IsCurrentLayer:    flag("isCurrentLayer"),
		IsVisible:         flag("isVisible"),
		IsDeleted:         flag("isDeleted"),
		IsAllowUp:         flag("isAllowUp"),
		IsAllowDown:       flag("isAllowDown"),
	}
}

func layerID(s string) int {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

func nameOr(attrs map[string]string, def string) string {
	if n, ok := attrs["name"]; ok {
		return n
	}
	return def
}
