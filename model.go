package sntool

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/akeil/sntool/internal/errors"
	"github.com/akeil/sntool/pkg/block"
	"github.com/akeil/sntool/pkg/layers"
	"github.com/akeil/sntool/pkg/recogn"
	"github.com/akeil/sntool/pkg/tags"
)

const (
	// DefaultWidth is the page width in pixels for most devices.
	DefaultWidth = 1404
	// DefaultHeight is the page height in pixels for most devices.
	DefaultHeight = 1872
	// WideWidth is the page width of the A5X2 ("N5").
	WideWidth = 1920
	// WideHeight is the page height of the A5X2 ("N5").
	WideHeight = 2560
)

// equipment with the larger page size
const wideEquipment = "N5"

// Supernote is a parsed .note file.
//
// All metadata is decoded when the file is parsed. Binary payloads
// (bitmaps, paths) are left as unresolved Blobs; use Resolve to load them.
type Supernote struct {
	// FileType is "note" for notebooks and "mark" for PDF annotations.
	FileType        string `json:"fileType"`
	Signature       string `json:"signature"`
	Version         int    `json:"version"`
	PageWidth       int    `json:"pageWidth"`
	PageHeight      int    `json:"pageHeight"`
	AddressSize     int    `json:"addressSize"`
	LengthFieldSize int    `json:"lengthFieldSize"`
	// DefaultLayers lists the layer roles in their default order.
	DefaultLayers []layers.Name `json:"defaultLayers"`
	Header        Header        `json:"header"`
	Footer        Footer        `json:"footer"`
	// Keywords maps page keys to the keywords on that page.
	Keywords *orderedmap.OrderedMap[string, []Keyword] `json:"keywords"`
	// Titles maps page keys to the titles on that page.
	Titles *orderedmap.OrderedMap[string, []Title] `json:"titles"`
	Pages  []*Page                                 `json:"pages"`
	Cover  *Cover                                  `json:"cover,omitempty"`

	reader *block.Reader
}

// PageCount returns the number of pages.
func (s *Supernote) PageCount() int {
	return len(s.Pages)
}

// Resolve loads the payload for a Blob that belongs to this document.
// Returns a "not found" error if the document was not read from a file.
func (s *Supernote) Resolve(b *block.Blob) ([]byte, error) {
	if s.reader == nil {
		return nil, errors.NewNotFound("no file data for block at %d", b.Address())
	}
	return b.Resolve(s.reader)
}

// KeywordCount returns the total number of keywords.
func (s *Supernote) KeywordCount() int {
	n := 0
	for p := s.Keywords.Oldest(); p != nil; p = p.Next() {
		n += len(p.Value)
	}
	return n
}

// TitleCount returns the total number of titles.
func (s *Supernote) TitleCount() int {
	n := 0
	for p := s.Titles.Oldest(); p != nil; p = p.Next() {
		n += len(p.Value)
	}
	return n
}

// Header holds file level metadata.
type Header struct {
	ModuleLabel         string `json:"moduleLabel"`
	FileType            string `json:"fileType"`
	ApplyEquipment      string `json:"applyEquipment"`
	FinalOperationPage  string `json:"finalOperationPage"`
	FinalOperationLayer string `json:"finalOperationLayer"`
	OriginalStyle       string `json:"originalStyle"`
	OriginalStyleMD5    string `json:"originalStyleMd5"`
	DeviceDPI           string `json:"deviceDpi"`
	SoftDPI             string `json:"softDpi"`
	FileParseType       string `json:"fileParseType"`
	RattaETMD           string `json:"rattaEtmd"`
	AppVersion          string `json:"appVersion"`
	FileRecognType      string `json:"fileRecognType"`
	// Tags holds all header tags, including the ones above.
	Tags *tags.Group `json:"tags"`
}

func newHeader(f tags.Fields) Header {
	return Header{
		ModuleLabel:         f.String("MODULE_LABEL"),
		FileType:            f.String("FILE_TYPE"),
		ApplyEquipment:      f.String("APPLY_EQUIPMENT"),
		FinalOperationPage:  f.String("FINALOPERATION_PAGE"),
		FinalOperationLayer: f.String("FINALOPERATION_LAYER"),
		OriginalStyle:       f.String("ORIGINAL_STYLE"),
		OriginalStyleMD5:    f.String("ORIGINAL_STYLEMD5"),
		DeviceDPI:           f.String("DEVICE_DPI"),
		SoftDPI:             f.String("SOFT_DPI"),
		FileParseType:       f.String("FILE_PARSE_TYPE"),
		RattaETMD:           f.String("RATTA_ETMD"),
		AppVersion:          f.String("APP_VERSION"),
		FileRecognType:      f.String("FILE_RECOGN_TYPE"),
		Tags:                f.Flatten(),
	}
}

// Footer is the table of contents of a file.
// It holds the addresses of the header, pages, cover, keywords and titles.
type Footer struct {
	File  *tags.Group `json:"file"`
	Cover *tags.Group `json:"cover"`
	Style *tags.Group `json:"style"`
	Page  *tags.Group `json:"page"`
	// Keyword maps keyword keys to block addresses.
	// Keys repeat, so every key can hold several addresses.
	Keyword *tags.Map `json:"keyword"`
	// Title maps title keys to block addresses, like Keyword.
	Title *tags.Map `json:"title"`
}

const (
	keywordPrefix = "KEYWORD_"
	titlePrefix   = "TITLE_"
)

var footerPrefixes = tags.PrefixTable{
	{Prefix: "PAGE", Main: "PAGE"},
}

func newFooter(flat *tags.Map) Footer {
	nested := tags.Nest(flat, "_", footerPrefixes)
	return Footer{
		File:    tags.GroupOf(nested, "FILE"),
		Cover:   tags.GroupOf(nested, "COVER"),
		Style:   tags.GroupOf(nested, "STYLE"),
		Page:    tags.GroupOf(nested, "PAGE"),
		Keyword: collect(flat, keywordPrefix),
		Title:   collect(flat, titlePrefix),
	}
}

// collect gathers all values for keys with the given prefix,
// keyed by the remainder of the key.
func collect(flat *tags.Map, prefix string) *tags.Map {
	out := tags.NewMap()
	for p := flat.Oldest(); p != nil; p = p.Next() {
		if len(p.Key) <= len(prefix) || !strings.HasPrefix(p.Key, prefix) {
			continue
		}
		key := p.Key[len(prefix):]
		values, _ := out.Get(key)
		out.Set(key, append(values, p.Value...))
	}
	return out
}

// Cover is the cover image of a notebook.
type Cover struct {
	Bitmap *block.Blob `json:"bitmap"`
}

// Page is a single page with its five layers.
type Page struct {
	// Number is the page number from the table of contents, starting at 1.
	Number      int    `json:"number"`
	ID          string `json:"id,omitempty"`
	Style       string `json:"style"`
	StyleMD5    string `json:"styleMd5"`
	LayerSwitch string `json:"layerSwitch"`
	// Layers holds one layer per role, indexed by layers.Name.
	Layers [layers.Count]Layer `json:"layers"`
	// LayerInfo describes how layers are presented on the device.
	LayerInfo []layers.Info `json:"layerInfo"`
	// LayerSeq is the paint order of the layers.
	LayerSeq         []layers.Name `json:"layerSeq"`
	ThumbnailType    string        `json:"thumbnailType"`
	RecognStatus     recogn.Status `json:"recognStatus"`
	RecognFileStatus recogn.Status `json:"recognFileStatus"`
	// RecognText holds the encoded recognition result.
	RecognText *block.Blob `json:"recognText"`
	RecognFile *block.Blob `json:"recognFile"`
	// Recognition holds the decoded recognition result.
	Recognition []recogn.Element `json:"recognition,omitempty"`
	// Text is the recognized text of the page.
	Text string `json:"text,omitempty"`
	// TotalPath holds the stroke paths of the page.
	TotalPath *block.Blob `json:"totalPath"`
}

// Layer returns the layer with the given role.
func (p *Page) Layer(n layers.Name) *Layer {
	if !n.Valid() {
		return nil
	}
	return &p.Layers[n]
}

// VisibleLayers returns the layers in paint order, leaving out layers
// that have no content.
func (p *Page) VisibleLayers() []*Layer {
	visible := make([]*Layer, 0, len(p.LayerSeq))
	for _, n := range p.LayerSeq {
		l := p.Layer(n)
		if l != nil && !l.Bitmap.Absent() {
			visible = append(visible, l)
		}
	}
	return visible
}

// Layer is one drawing surface of a page.
type Layer struct {
	Name     layers.Name `json:"name"`
	Type     string      `json:"type"`
	Protocol string      `json:"protocol"`
	Path     string      `json:"path"`
	// Bitmap is the compressed bitmap of the layer.
	Bitmap      *block.Blob `json:"bitmap"`
	VectorGraph *block.Blob `json:"vectorGraph"`
	Recogn      *block.Blob `json:"recogn"`
}

func emptyLayer(n layers.Name) Layer {
	return Layer{
		Name:        n,
		Bitmap:      block.NewBlob(0),
		VectorGraph: block.NewBlob(0),
		Recogn:      block.NewBlob(0),
	}
}

func newLayer(n layers.Name, f tags.Fields) Layer {
	return Layer{
		Name:        n,
		Type:        f.String("LAYERTYPE"),
		Protocol:    f.String("LAYERPROTOCOL"),
		Path:        f.String("LAYERPATH"),
		Bitmap:      block.NewBlob(f.Uint("LAYERBITMAP")),
		VectorGraph: block.NewBlob(f.Uint("LAYERVECTORGRAPH")),
		Recogn:      block.NewBlob(f.Uint("LAYERRECOGN")),
	}
}

// Rectangle is an area on a page as four coordinates, kept as written.
type Rectangle [4]string

func parseRect(s string) Rectangle {
	var r Rectangle
	if s == "" {
		return r
	}
	for i, part := range strings.SplitN(s, ",", len(r)) {
		r[i] = strings.TrimSpace(part)
	}
	return r
}

// Keyword is a keyword marked on a page.
type Keyword struct {
	SeqNo   string    `json:"seqNo"`
	Page    string    `json:"page"`
	Rect    Rectangle `json:"rect"`
	RectOri Rectangle `json:"rectOri"`
	Site    string    `json:"site"`
	Len     string    `json:"len"`
	Keyword string    `json:"keyword"`
	// Bitmap is the image of the marked area.
	Bitmap *block.Blob `json:"bitmap"`
}

func newKeyword(f tags.Fields) Keyword {
	return Keyword{
		SeqNo:   f.String("KEYWORDSEQNO"),
		Page:    f.String("KEYWORDPAGE"),
		Rect:    parseRect(f.String("KEYWORDRECT")),
		RectOri: parseRect(f.String("KEYWORDRECTORI")),
		Site:    f.String("KEYWORDSITE"),
		Len:     f.String("KEYWORDLEN"),
		Keyword: f.String("KEYWORD"),
		Bitmap:  block.NewBlob(f.Uint("KEYWORDSITE")),
	}
}

// Title is a heading marked on a page.
type Title struct {
	SeqNo    string    `json:"seqNo"`
	Level    string    `json:"level"`
	Rect     Rectangle `json:"rect"`
	RectOri  Rectangle `json:"rectOri"`
	Protocol string    `json:"protocol"`
	Style    string    `json:"style"`
	// Bitmap is the image of the marked area.
	Bitmap *block.Blob `json:"bitmap"`
}

func newTitle(f tags.Fields) Title {
	return Title{
		SeqNo:    f.String("TITLESEQNO"),
		Level:    f.String("TITLELEVEL"),
		Rect:     parseRect(f.String("TITLERECT")),
		RectOri:  parseRect(f.String("TITLERECTORI")),
		Protocol: f.String("TITLEPROTOCOL"),
		Style:    f.String("TITLESTYLE"),
		Bitmap:   block.NewBlob(f.Uint("TITLEBITMAP")),
	}
}
