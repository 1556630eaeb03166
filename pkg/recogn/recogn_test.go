package recogn

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "type": "ConversionResult",
  "elements": [
    {"type": "Raw Content"},
    {
      "type": "Text",
      "label": "hello world",
      "words": [
        {"label": "hello", "bounding-box": {"height": 20.4, "width": 51.6, "x": 100, "y": 200.5}},
        {"label": " "},
        {"label": "world", "bounding-box": {"height": 21, "width": 55, "x": 160, "y": 201}}
      ]
    }
  ]
}`

func encode(s string) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(s)))
}

func TestDecode(t *testing.T) {
	elements, err := Decode(encode(sample))
	require.NoError(t, err)
	require.Len(t, elements, 2)

	assert.Equal(t, "Raw Content", elements[0].Type)
	assert.Nil(t, elements[0].Words)

	text := elements[1]
	assert.Equal(t, TextType, text.Type)
	assert.Equal(t, "hello world", text.Label)
	require.Len(t, text.Words, 3)

	assert.Equal(t, "hello", text.Words[0].Label)
	assert.Equal(t, &BoundingBox{Height: 20, Width: 52, X: 100, Y: 201}, text.Words[0].BoundingBox)
	assert.Nil(t, text.Words[1].BoundingBox)
	assert.Equal(t, 160, text.Words[2].BoundingBox.X)

	assert.Equal(t, "hello world", Text(elements))
}

func TestDecodeEmpty(t *testing.T) {
	elements, err := Decode(nil)
	require.NoError(t, err)
	assert.Len(t, elements, 0)

	elements, err = Decode([]byte("  \n"))
	require.NoError(t, err)
	assert.Len(t, elements, 0)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("not base64!"))
	assert.Error(t, err)

	_, err = Decode(encode("{not json"))
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	elements := []Element{
		{Type: TextType, Label: "one"},
		{Type: "Raw Content", Label: "ignored"},
		{Type: TextType, Label: "two"},
	}
	assert.Equal(t, "one\ntwo", Text(elements))
	assert.Equal(t, "", Text(nil))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, None, ParseStatus("0"))
	assert.Equal(t, Done, ParseStatus("1"))
	assert.Equal(t, Running, ParseStatus("2"))
	assert.Equal(t, None, ParseStatus(""))
	assert.Equal(t, None, ParseStatus("7"))
}

func TestStatusJSON(t *testing.T) {
	data, err := json.Marshal(Running)
	require.NoError(t, err)
	assert.Equal(t, `"running"`, string(data))

	_, err = json.Marshal(Status(9))
	assert.Error(t, err)
}
