package sntool

import (
	"os"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/akeil/sntool/internal/errors"
	"github.com/akeil/sntool/internal/logging"
	"github.com/akeil/sntool/pkg/block"
	"github.com/akeil/sntool/pkg/layers"
	"github.com/akeil/sntool/pkg/recogn"
	"github.com/akeil/sntool/pkg/tags"
)

const (
	fileTypeLen  = 4
	signatureLen = 20
	versionLen   = 8
	// keyword and title keys start with the zero-padded page number
	pageKeyLen = 4
)

// Option changes how a file is parsed.
type Option func(*options)

type options struct {
	config          block.Config
	skipBrokenPages bool
	skipRecognition bool
}

// WithConfig sets the field widths used to read addresses and lengths.
func WithConfig(cfg block.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// SkipBrokenPages leaves out pages that cannot be decoded instead of
// failing the whole file.
func SkipBrokenPages() Option {
	return func(o *options) {
		o.skipBrokenPages = true
	}
}

// SkipRecognition does not decode recognized text.
func SkipRecognition() Option {
	return func(o *options) {
		o.skipRecognition = true
	}
}

// ReadFile reads and parses the .note file at path.
func ReadFile(path string, opts ...Option) (*Supernote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Parse(data, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "parse %q", path)
	}
	return n, nil
}

// Parse decodes the contents of a .note file.
//
// The header, footer, pages and layers are decoded; bitmaps and other
// binary payloads are not loaded until they are resolved.
func Parse(data []byte, opts ...Option) (*Supernote, error) {
	o := options{config: block.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	r, err := block.NewReader(data, o.config)
	if err != nil {
		return nil, err
	}

	p := &parser{r: r, opts: o}
	return p.parse()
}

type parser struct {
	r    *block.Reader
	opts options
}

func (p *parser) parse() (*Supernote, error) {
	cfg := p.r.Config()
	n := &Supernote{
		PageWidth:       DefaultWidth,
		PageHeight:      DefaultHeight,
		AddressSize:     cfg.AddressSize,
		LengthFieldSize: cfg.LengthSize,
		DefaultLayers:   append([]layers.Name(nil), layers.All...),
		reader:          p.r,
	}

	err := p.readSignature(n)
	if err != nil {
		return nil, errors.Wrap(err, "signature")
	}

	err = p.readFooter(n)
	if err != nil {
		return nil, errors.Wrap(err, "footer")
	}

	err = p.readHeader(n)
	if err != nil {
		return nil, errors.Wrap(err, "header")
	}

	p.readCover(n)

	n.Keywords, err = readAnnotations(p, n.Footer.Keyword, newKeyword)
	if err != nil {
		return nil, errors.Wrap(err, "keywords")
	}

	n.Titles, err = readAnnotations(p, n.Footer.Title, newTitle)
	if err != nil {
		return nil, errors.Wrap(err, "titles")
	}

	err = p.readPages(n)
	if err != nil {
		return nil, err
	}

	return n, nil
}

func (p *parser) readSignature(n *Supernote) error {
	ft, err := p.r.Bytes(0, fileTypeLen)
	if err != nil {
		return err
	}
	sig, err := p.r.Bytes(fileTypeLen, signatureLen)
	if err != nil {
		return err
	}

	n.FileType = string(ft)
	n.Signature = string(sig)
	n.Version = parseVersion(n.Signature)
	logging.Debug("File type %q, signature %q", n.FileType, n.Signature)
	return nil
}

// parseVersion takes the trailing digits from a signature like
// "SN_FILE_VER_20230015". Returns 0 if there are none.
func parseVersion(sig string) int {
	if len(sig) < versionLen {
		return 0
	}
	v, err := strconv.Atoi(sig[len(sig)-versionLen:])
	if err != nil {
		return 0
	}
	return v
}

func (p *parser) readFooter(n *Supernote) error {
	addr, err := p.r.Trailer()
	if err != nil {
		return err
	}
	logging.Debug("Read footer at %d", addr)

	flat, err := tags.Parse(p.r, addr)
	if err != nil {
		return err
	}
	n.Footer = newFooter(flat)
	return nil
}

func (p *parser) readHeader(n *Supernote) error {
	addr := address(n.Footer.File, "FEATURE")
	logging.Debug("Read header at %d", addr)

	flat, err := tags.Parse(p.r, addr)
	if err != nil {
		return err
	}
	n.Header = newHeader(tags.Of(flat))

	if n.Header.ApplyEquipment == wideEquipment {
		n.PageWidth = WideWidth
		n.PageHeight = WideHeight
	}
	return nil
}

func (p *parser) readCover(n *Supernote) {
	for e := n.Footer.Cover.Oldest(); e != nil; e = e.Next() {
		addr := parseAddress(e.Value)
		if addr != 0 {
			logging.Debug("Cover at %d", addr)
			n.Cover = &Cover{Bitmap: block.NewBlob(addr)}
			return
		}
	}
}

// readAnnotations reads keyword or title blocks and groups them by the
// page key, the leading digits of their footer key.
func readAnnotations[T any](p *parser, index *tags.Map, build func(tags.Fields) T) (*orderedmap.OrderedMap[string, []T], error) {
	out := orderedmap.New[string, []T]()
	for e := index.Oldest(); e != nil; e = e.Next() {
		page := e.Key
		if len(page) > pageKeyLen {
			page = page[:pageKeyLen]
		}

		for _, v := range e.Value {
			addr := parseAddress(v)
			flat, err := tags.Parse(p.r, addr)
			if err != nil {
				return nil, errors.Wrap(err, "block %q at %d", e.Key, addr)
			}

			items, _ := out.Get(page)
			out.Set(page, append(items, build(tags.Of(flat))))
		}
	}
	return out, nil
}

type pageRef struct {
	number  int
	address uint64
}

func (p *parser) readPages(n *Supernote) error {
	refs := make([]pageRef, 0, n.Footer.Page.Len())
	for e := n.Footer.Page.Oldest(); e != nil; e = e.Next() {
		num, err := strconv.Atoi(e.Key)
		if err != nil {
			logging.Debug("Ignore footer entry PAGE%v", e.Key)
			continue
		}
		refs = append(refs, pageRef{num, parseAddress(e.Value)})
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].number < refs[j].number
	})

	n.Pages = make([]*Page, 0, len(refs))
	for _, ref := range refs {
		pg, err := p.readPage(ref)
		if err != nil {
			err = errors.Wrap(err, "page %d", ref.number)
			if !p.opts.skipBrokenPages {
				return err
			}
			logging.Warning("Skip page: %v", err)
			continue
		}
		n.Pages = append(n.Pages, pg)
	}
	return nil
}

func (p *parser) readPage(ref pageRef) (*Page, error) {
	logging.Debug("Read page %d at %d", ref.number, ref.address)
	flat, err := tags.Parse(p.r, ref.address)
	if err != nil {
		return nil, err
	}
	f := tags.Of(flat)

	seq, err := layerSeq(f)
	if err != nil {
		return nil, err
	}

	pg := &Page{
		Number:           ref.number,
		ID:               f.String("PAGEID"),
		Style:            f.String("PAGESTYLE"),
		StyleMD5:         f.String("PAGESTYLEMD5"),
		LayerSwitch:      f.String("LAYERSWITCH"),
		LayerInfo:        layers.DecodeInfo(f.String("LAYERINFO")),
		LayerSeq:         seq,
		ThumbnailType:    f.String("THUMBNAILTYPE"),
		RecognStatus:     recogn.ParseStatus(f.String("RECOGNSTATUS")),
		RecognFileStatus: recogn.ParseStatus(f.String("RECOGNFILESTATUS")),
		RecognText:       block.NewBlob(f.Uint("RECOGNTEXT")),
		RecognFile:       block.NewBlob(f.Uint("RECOGNFILE")),
		TotalPath:        block.NewBlob(f.Uint("TOTALPATH")),
	}

	for _, role := range layers.All {
		l, err := p.readLayer(role, f.Uint(role.String()))
		if err != nil {
			return nil, errors.Wrap(err, "layer %v", role)
		}
		pg.Layers[role] = l
	}

	if !p.opts.skipRecognition && pg.RecognStatus == recogn.Done {
		err = p.readRecognition(pg)
		if err != nil {
			return nil, err
		}
	}

	return pg, nil
}

// readLayer reads the layer block at addr.
// Without a block, an empty layer is returned for the given role.
func (p *parser) readLayer(role layers.Name, addr uint64) (Layer, error) {
	if addr == 0 {
		return emptyLayer(role), nil
	}

	flat, err := tags.Parse(p.r, addr)
	if err != nil {
		return Layer{}, err
	}
	f := tags.Of(flat)

	name, err := layerName(f, role)
	if err != nil {
		return Layer{}, err
	}
	if name != role {
		logging.Warning("Layer at %d is named %v, expected %v", addr, name, role)
	}

	return newLayer(name, f), nil
}

// layerSeq parses the paint order of a page.
// If the tag repeats, every value must name known roles and the first one
// is used.
func layerSeq(f tags.Fields) ([]layers.Name, error) {
	var seq []layers.Name
	for i, v := range f.All("LAYERSEQ") {
		s, err := layers.ParseSeq(v)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			seq = s
		}
	}
	if seq == nil {
		seq = []layers.Name{}
	}
	return seq, nil
}

// layerName returns the role named by a layer block, or def without a name.
// Like layerSeq, every repeated value is checked and the first one is used.
func layerName(f tags.Fields, def layers.Name) (layers.Name, error) {
	name := def
	for i, v := range f.All("LAYERNAME") {
		n, err := layers.ParseName(v)
		if err != nil {
			return def, err
		}
		if i == 0 {
			name = n
		}
	}
	return name, nil
}

func (p *parser) readRecognition(pg *Page) error {
	if pg.RecognText.Absent() {
		return nil
	}

	content, err := pg.RecognText.Resolve(p.r)
	if err != nil {
		return err
	}

	elements, err := recogn.Decode(content)
	if err != nil {
		return errors.NewEncodingError(pg.RecognText.Address(), err)
	}
	pg.Recognition = elements
	pg.Text = recogn.Text(elements)
	return nil
}

func address(g *tags.Group, key string) uint64 {
	v, _ := g.Get(key)
	return parseAddress(v)
}

// parseAddress reads a decimal address, anything else means "absent".
func parseAddress(s string) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
