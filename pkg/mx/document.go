package mx

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/drawbridge/pkg/errors"
	"github.com/matzehuels/drawbridge/pkg/mx/codec"
	"github.com/matzehuels/drawbridge/pkg/mx/envelope"
)

// CompressedExt is the file extension that selects the decode path. Any
// other extension is treated as already-decoded markup.
const CompressedExt = ".drawio"

// LoadOptions configures document loading.
type LoadOptions struct {
	// Logger receives warning-level integrity conditions (duplicate ids)
	// during load. Nil keeps the library silent; warnings stay available via
	// [Document.Warnings] either way.
	Logger *log.Logger

	// KeepWrapperTag keeps the diagram wrapper tags in the decoded markup.
	// Dropping them loses the page boundaries, which makes the document
	// impossible to re-encode.
	KeepWrapperTag bool

	// Indent is the pretty-print indent width for [Document.DecodedText].
	Indent int
}

// DefaultLoadOptions returns the standard loading configuration:
// wrapper tags kept, two-space indent, no logger.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{KeepWrapperTag: true, Indent: 2}
}

// Page is one diagram page: a physically-parsed element tree plus the
// derived logical graph over it. Each page owns its element arena and id
// index; draw.io reuses cell ids across pages, so indexes never span pages.
type Page struct {
	name    string
	id      string
	diagram *etree.Element // wrapper tag, nil when the input had none
	model   *Element
	entry   *Element // first depth-first element tagged "root"
	index   map[string]*Element
	order   []*Element
	warns   []Warning
}

// Name returns the page's display name (the diagram tag's name attribute).
func (p *Page) Name() string { return p.name }

// ID returns the page's diagram id, or "" if the wrapper declared none.
func (p *Page) ID() string { return p.id }

// Model returns the root of the page's physical element tree.
func (p *Page) Model() *Element { return p.model }

// Entry returns the logical entry point: the first depth-first element
// tagged "root", or the model root if the page has none.
func (p *Page) Entry() *Element {
	if p.entry != nil {
		return p.entry
	}
	return p.model
}

// LookupID returns the element with the given id, or nil.
func (p *Page) LookupID(id string) *Element { return p.index[id] }

// Elements returns the indexed elements in document order.
func (p *Page) Elements() []*Element { return p.order }

// Warnings returns integrity warnings recorded while indexing the page.
func (p *Page) Warnings() []Warning { return p.warns }

// TreeString renders the page's logical tree. Following the original tool,
// rendering starts at the entry element's first logical child (the top of
// the diagram); a page with no cells renders the entry alone.
func (p *Page) TreeString() string {
	start := p.Entry()
	if kids := start.Children(); len(kids) > 0 {
		start = kids[0]
	}
	var b strings.Builder
	treeString(start, &b, "", make(map[*Element]bool))
	return strings.TrimRight(b.String(), "\n")
}

// buildPage parses one page subtree into an element arena, indexes it and
// relinks the logical graph. Fails on unresolved parent references or
// logical cycles; duplicate ids are recorded as warnings.
func buildPage(name, id string, diagram, root *etree.Element) (*Page, error) {
	p := &Page{name: name, id: id, diagram: diagram}
	p.model = newElement(p, nil, root)

	p.model.walkFile(func(e *Element) {
		if p.entry == nil && e.Type() == rootTag {
			p.entry = e
		}
	})

	indexFrom := p.model
	if p.entry != nil {
		indexFrom = p.entry
	}
	p.index, p.order, p.warns = buildIndex(indexFrom)

	if err := relink(p.order, p.index); err != nil {
		var ie *IntegrityError
		if stderrors.As(err, &ie) {
			return nil, errors.Wrap(ie.Code, err, "relink page %q", name)
		}
		return nil, err
	}
	return p, nil
}

// Document owns the decoded markup and its pages. A Document is the single
// lifetime scope for every Element it contains; two Documents share nothing,
// so independent Documents are safe to use from different goroutines while a
// single Document is not safe for concurrent mutation.
type Document struct {
	opts  LoadOptions
	env   *envelope.Envelope // nil when the input carried no compressed blocks
	doc   *etree.Document
	pages []*Page
}

// Load reads a diagram file and parses it. The extension picks the path:
// CompressedExt selects envelope splitting and block decoding, anything else
// is parsed as plain markup.
func Load(path string, opts LoadOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "read %s", path)
	}
	compressed := strings.EqualFold(filepath.Ext(path), CompressedExt)
	return Parse(data, compressed, opts)
}

// Parse parses raw document bytes. When compressed is true each diagram
// block is decoded first; a compressed document without any diagram marker
// is treated as already-decoded markup and passes through unchanged.
//
// There is no partial success: a block that fails to decode or a page that
// fails integrity checks fails the whole parse.
func Parse(data []byte, compressed bool, opts LoadOptions) (*Document, error) {
	if opts.Indent <= 0 {
		opts.Indent = DefaultLoadOptions().Indent
	}

	d := &Document{opts: opts}
	text := string(data)

	if compressed {
		env, err := envelope.Split(text, envelope.Marker)
		if err != nil {
			return nil, err
		}
		if env.HasPayloads() {
			d.env = env
			blocks := env.Payloads()
			decoded := make([]string, len(blocks))
			for i, block := range blocks {
				if strings.TrimSpace(block) == "" {
					continue // empty payload decodes to an empty page
				}
				out, err := codec.Decode(block)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeMalformedBlock, err, "decode block %d", i)
				}
				decoded[i] = out
			}
			text, err = env.Join(decoded, opts.KeepWrapperTag)
			if err != nil {
				return nil, err
			}
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "parse markup")
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "document has no root element")
	}
	d.doc = doc

	if err := d.buildPages(); err != nil {
		return nil, err
	}

	if opts.Logger != nil {
		for _, w := range d.Warnings() {
			opts.Logger.Warn(w.Message, "code", string(w.Code), "element", w.ElementID)
		}
	}
	return d, nil
}

// buildPages creates one page per diagram wrapper, or a single page spanning
// the whole document when no wrapper is present (plain mxGraphModel input).
func (d *Document) buildPages() error {
	diagrams := d.doc.FindElements("//" + envelope.Marker)
	if len(diagrams) == 0 {
		page, err := buildPage("", "", nil, d.doc.Root())
		if err != nil {
			return err
		}
		d.pages = []*Page{page}
		return nil
	}

	for _, dia := range diagrams {
		page, err := buildPage(
			dia.SelectAttrValue("name", ""),
			dia.SelectAttrValue(attrID, ""),
			dia,
			dia,
		)
		if err != nil {
			return err
		}
		d.pages = append(d.pages, page)
	}
	return nil
}

// Pages returns the document's pages in document order. There is always at
// least one.
func (d *Document) Pages() []*Page { return d.pages }

// Warnings returns every page's integrity warnings, in page order.
func (d *Document) Warnings() []Warning {
	var out []Warning
	for _, p := range d.pages {
		out = append(out, p.warns...)
	}
	return out
}

// LookupID returns the first element with the given id, searching pages in
// document order. Returns nil if no page declares the id.
func (d *Document) LookupID(id string) *Element {
	for _, p := range d.pages {
		if e := p.LookupID(id); e != nil {
			return e
		}
	}
	return nil
}

// TreeString renders the first page's logical tree.
func (d *Document) TreeString() string {
	return d.pages[0].TreeString()
}

// DecodedText returns the fully decoded document, pretty-printed.
func (d *Document) DecodedText() (string, error) {
	pretty := d.doc.Copy()
	pretty.Indent(d.opts.Indent)
	out, err := pretty.WriteToString()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize markup")
	}
	return strings.TrimSpace(out), nil
}

// EncodedText re-encodes the document into its compressed form.
//
// A document loaded from compressed form is re-joined through its original
// envelope: every byte outside the payloads is reproduced verbatim, and each
// payload is the block encoding of the page's current markup. A document
// loaded from plain markup is wrapped into a canonical mxfile envelope with
// a generated diagram id.
//
// The compressed bytes are not promised to match the original producer's
// byte-for-byte; decoding the result yields the same text.
func (d *Document) EncodedText() (string, error) {
	if d.env != nil {
		if !d.opts.KeepWrapperTag {
			return "", errors.New(errors.ErrCodeUnsupported,
				"cannot re-encode a document loaded without wrapper tags")
		}
		blocks := make([]string, len(d.pages))
		for i, p := range d.pages {
			block, err := codec.Encode(serializeChildren(p.diagram))
			if err != nil {
				return "", err
			}
			blocks[i] = block
		}
		return d.env.Join(blocks, true)
	}

	// Plain input: wrap each page in a canonical envelope. Built through
	// etree so attribute values (page names with quotes or ampersands) come
	// out escaped.
	out := etree.NewDocument()
	mxfile := out.CreateElement("mxfile")
	for i, p := range d.pages {
		markup := serializeElement(p.model.el)
		if p.diagram != nil {
			// The page already carries a wrapper tag; encode its content
			// only, or the wrapper would end up nested inside the payload.
			markup = serializeChildren(p.diagram)
		}
		payload, err := codec.Encode(markup)
		if err != nil {
			return "", err
		}
		id := p.id
		if id == "" {
			id = uuid.NewString()
		}
		name := p.name
		if name == "" {
			name = fmt.Sprintf("Page-%d", i+1)
		}
		dia := mxfile.CreateElement(envelope.Marker)
		dia.CreateAttr(attrID, id)
		dia.CreateAttr("name", name)
		dia.SetText(payload)
	}
	text, err := out.WriteToString()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize envelope")
	}
	return strings.TrimSpace(text), nil
}

// serializeElement writes a single element subtree as compact markup.
func serializeElement(el *etree.Element) string {
	tmp := etree.NewDocument()
	tmp.SetRoot(el.Copy())
	out, _ := tmp.WriteToString()
	return strings.TrimSpace(out)
}

// serializeChildren writes an element's child elements as compact markup,
// without the element's own tag.
func serializeChildren(el *etree.Element) string {
	var b strings.Builder
	for _, c := range el.ChildElements() {
		b.WriteString(serializeElement(c))
	}
	return b.String()
}
