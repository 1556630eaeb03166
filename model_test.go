package sntool

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/sntool/pkg/block"
	"github.com/akeil/sntool/pkg/layers"
	"github.com/akeil/sntool/pkg/tags"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		in   string
		want Rectangle
	}{
		{"", Rectangle{}},
		{"1,2,3,4", Rectangle{"1", "2", "3", "4"}},
		{" 1 , 2,3 ,4 ", Rectangle{"1", "2", "3", "4"}},
		{"1,2", Rectangle{"1", "2", "", ""}},
		{"1,2,3,4,5", Rectangle{"1", "2", "3", "4,5"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseRect(tt.in), "input %q", tt.in)
	}
}

func TestNewFooter(t *testing.T) {
	flat := tags.Extract("<FILE_FEATURE:24><PAGE1:100><PAGE2:200><COVER_0:0>" +
		"<KEYWORD_00010001:300><KEYWORD_00010001:400><TITLE_00020001:500><STYLE_style_white:600>")
	f := newFooter(flat)

	v, ok := f.File.Get("FEATURE")
	assert.True(t, ok)
	assert.Equal(t, "24", v)
	assert.Equal(t, 2, f.Page.Len())
	assert.Equal(t, 1, f.Cover.Len())
	assert.Equal(t, 1, f.Style.Len())

	kw, ok := f.Keyword.Get("00010001")
	require.True(t, ok)
	assert.Equal(t, []string{"300", "400"}, kw)

	title, ok := f.Title.Get("00020001")
	require.True(t, ok)
	assert.Equal(t, []string{"500"}, title)
}

func TestNewFooterEmpty(t *testing.T) {
	f := newFooter(tags.NewMap())
	assert.Equal(t, 0, f.File.Len())
	assert.Equal(t, 0, f.Page.Len())
	assert.Equal(t, 0, f.Keyword.Len())
}

func TestPageLayer(t *testing.T) {
	var p Page
	for _, n := range layers.All {
		p.Layers[n] = emptyLayer(n)
	}

	assert.Equal(t, layers.Layer3, p.Layer(layers.Layer3).Name)
	assert.Nil(t, p.Layer(layers.Name(-1)))
	assert.Nil(t, p.Layer(layers.Name(layers.Count)))

	p.Layers[layers.Layer1].Bitmap = block.NewBlob(42)
	p.LayerSeq = []layers.Name{layers.BgLayer, layers.Layer1, layers.MainLayer}
	visible := p.VisibleLayers()
	require.Len(t, visible, 1)
	assert.Equal(t, layers.Layer1, visible[0].Name)
}

func TestSupernoteJSON(t *testing.T) {
	data, _ := newFixture().build()
	n, err := Parse(data)
	require.NoError(t, err)

	out, err := json.Marshal(n)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.Contains(s, `"fileType":"note"`))
	assert.True(t, strings.Contains(s, `"layerSeq":["MAINLAYER","BGLAYER"]`))
	assert.True(t, strings.Contains(s, `"recognStatus":"done"`))
	assert.True(t, strings.Contains(s, `"0001":[`))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded["pages"], 2)
}
