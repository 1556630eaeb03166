package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Info {
	return Info{Name: DefaultName}
}

func TestDecodeInfo(t *testing.T) {
	infos := DecodeInfo(`{"layerId"#"2","name"#"Layer1","isVisible"#"true"}`)
	require.Len(t, infos, 1)

	expected := defaults()
	expected.LayerID = 2
	expected.Name = "Layer1"
	expected.IsVisible = true
	assert.Equal(t, expected, infos[0])
}

func TestDecodeInfoEmptyRecord(t *testing.T) {
	infos := DecodeInfo(`{}`)
	require.Len(t, infos, 1)
	assert.Equal(t, defaults(), infos[0])
}

func TestDecodeInfoOrder(t *testing.T) {
	infos := DecodeInfo(`{"layerId"#"1","name"#"A"}{"layerId"#"-1","name"#"B"}`)
	require.Len(t, infos, 2)
	assert.Equal(t, 1, infos[0].LayerID)
	assert.Equal(t, "A", infos[0].Name)
	assert.Equal(t, -1, infos[1].LayerID)
	assert.Equal(t, "B", infos[1].Name)
}

func TestDecodeInfoDeviceFormat(t *testing.T) {
	text := `[{"layerId"#3,"name"#"Layer 3","isBackgroundLayer"#false,"isAllowAdd"#false,` +
		`"isCurrentLayer"#false,"isVisible"#true,"isDeleted"#false,"isAllowUp"#false,"isAllowDown"#true},` +
		`{"layerId"#0,"name"#"Main Layer","isCurrentLayer"#true,"isVisible"#true}]`

	infos := DecodeInfo(text)
	require.Len(t, infos, 2)

	assert.Equal(t, Info{
		LayerID:     3,
		Name:        "Layer 3",
		IsVisible:   true,
		IsAllowDown: true,
	}, infos[0])

	assert.Equal(t, Info{
		LayerID:        0,
		Name:           "Main Layer",
		IsCurrentLayer: true,
		IsVisible:      true,
	}, infos[1])
}

func TestDecodeInfoDefaults(t *testing.T) {
	tests := []struct {
		name   string
		record string
		check  func(t *testing.T, i Info)
	}{
		{
			name:   "non numeric id",
			record: `{"layerId"#"abc"}`,
			check: func(t *testing.T, i Info) {
				assert.Equal(t, 0, i.LayerID)
			},
		},
		{
			name:   "bool is case sensitive",
			record: `{"isVisible"#"True","isDeleted"#"TRUE","isAllowUp"#"1"}`,
			check: func(t *testing.T, i Info) {
				assert.False(t, i.IsVisible)
				assert.False(t, i.IsDeleted)
				assert.False(t, i.IsAllowUp)
			},
		},
		{
			name:   "unknown attributes",
			record: `{"colour"#"red","isVisible"#"true"}`,
			check: func(t *testing.T, i Info) {
				assert.True(t, i.IsVisible)
				assert.Equal(t, DefaultName, i.Name)
			},
		},
		{
			name:   "missing name",
			record: `{"layerId"#"4"}`,
			check: func(t *testing.T, i Info) {
				assert.Equal(t, 4, i.LayerID)
				assert.Equal(t, DefaultName, i.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infos := DecodeInfo(tt.record)
			require.Len(t, infos, 1)
			tt.check(t, infos[0])
		})
	}
}

func TestDecodeInfoNoRecords(t *testing.T) {
	assert.Len(t, DecodeInfo(""), 0)
	assert.Len(t, DecodeInfo("no braces"), 0)
	assert.Len(t, DecodeInfo(`"layerId"#"2"`), 0)
}
