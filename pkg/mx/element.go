package mx

import (
	"fmt"

	"github.com/beevik/etree"
)

// attrID, attrValue and attrParent are the element attributes the logical
// graph is built from.
const (
	attrID     = "id"
	attrValue  = "value"
	attrParent = "parent"
)

// rootTag marks the entry point for logical traversal: the first element with
// this tag under a page model owns the top-level cells.
const rootTag = "root"

// Element is one diagram node or edge.
//
// Every Element participates in two trees over the same node set. The
// physical tree mirrors the document's literal nesting and is the owning
// relation: FileParent and FileChildren. The logical tree is derived from
// each element's "parent" attribute, resolved by ID through the owning page's
// index: Parent, Children and Root. The two are totally different trees and
// must never be conflated.
//
// Elements are created when a page is parsed and live as long as the page.
// The lazy caches on an Element assume single-goroutine access.
type Element struct {
	el         *etree.Element
	page       *Page
	fileParent *Element
	fileKids   []*Element

	// Logical caches. parent is revalidated against the current "parent"
	// attribute on every access; root is cached on first access only.
	parent *Element
	root   *Element
	kids   []*Element
}

// newElement wraps tag and, recursively, its child elements.
func newElement(page *Page, fileParent *Element, tag *etree.Element) *Element {
	e := &Element{el: tag, page: page, fileParent: fileParent}
	for _, child := range tag.ChildElements() {
		e.fileKids = append(e.fileKids, newElement(page, e, child))
	}
	return e
}

// Type returns the element's tag name (e.g. "mxCell", "mxGraphModel").
func (e *Element) Type() string { return e.el.Tag }

// ID returns the element's unique id, or "" if it does not declare one.
func (e *Element) ID() string { return e.el.SelectAttrValue(attrID, "") }

// Value returns the element's human-readable label, or "" if absent.
func (e *Element) Value() string { return e.el.SelectAttrValue(attrValue, "") }

// Name returns a friendly, printable name for this element:
// the tag name, plus the value in quotes when one is set.
func (e *Element) Name() string {
	if v := e.Value(); v != "" {
		return fmt.Sprintf("%s %q", e.Type(), v)
	}
	return e.Type()
}

// Attr returns the named attribute's value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	if a := e.el.SelectAttr(key); a != nil {
		return a.Value, true
	}
	return "", false
}

// SetAttr sets the named attribute, creating it if absent.
func (e *Element) SetAttr(key, value string) {
	e.el.CreateAttr(key, value)
}

// Attrs returns the element's attributes in document order.
func (e *Element) Attrs() []etree.Attr {
	return e.el.Attr
}

// FileParent returns the parent in the document's physical nesting.
func (e *Element) FileParent() *Element { return e.fileParent }

// FileChildren returns the children in the document's physical nesting.
func (e *Element) FileChildren() []*Element { return e.fileKids }

// walkFile visits e and every physical descendant depth-first.
func (e *Element) walkFile(fn func(*Element)) {
	fn(e)
	for _, c := range e.fileKids {
		c.walkFile(fn)
	}
}

// ParentID returns the value of the "parent" attribute and whether it is
// present. This is the raw logical reference; Parent resolves it.
func (e *Element) ParentID() (string, bool) {
	return e.Attr(attrParent)
}

// Parent resolves the logical parent through the page index.
//
// The result is cached, and the cache is revalidated on every access by
// comparing the cached parent's ID against the current "parent" attribute, so
// mutating the attribute after load takes effect without a rebuild. A
// dangling reference resolves to nil here; relink reports it as an integrity
// error at load time.
func (e *Element) Parent() *Element {
	pid, ok := e.ParentID()
	if !ok {
		e.parent = nil
		return nil
	}
	if e.parent == nil || e.parent.ID() != pid {
		e.parent = e.page.LookupID(pid)
	}
	return e.parent
}

// Root returns the top of the logical tree: the element reached by walking
// Parent links until none remains. The result is cached on first access and,
// unlike Parent, never revalidated; mutate "parent" attributes before the
// first Root call or not at all.
func (e *Element) Root() *Element {
	if e.root == nil {
		if p := e.Parent(); p != nil {
			e.root = p.Root()
		} else {
			e.root = e
		}
	}
	return e.root
}

// Children returns the logical children, populated by the relink pass in
// document order.
//
// Special case, preserved from the original behavior: the "root" entry
// element never carries a "parent" attribute, so nothing links to it by ID at
// the top level in some documents; when it has no linked children its
// physical children stand in. This fallback applies only to an element whose
// printable name is exactly the root marker.
func (e *Element) Children() []*Element {
	if len(e.kids) == 0 && e.Name() == rootTag {
		return e.fileKids
	}
	return e.kids
}
