package mx

import (
	"testing"
)

const plainDoc = `<mxGraphModel dx="800" dy="600">` +
	`<root>` +
	`<mxCell id="0"/>` +
	`<mxCell id="1" parent="0"/>` +
	`<mxCell id="2" value="Start" parent="1" vertex="1"/>` +
	`<mxCell id="3" value="End" parent="1" vertex="1"/>` +
	`<mxCell id="4" value="go" edge="1" parent="1" source="2" target="3"/>` +
	`</root>` +
	`</mxGraphModel>`

func parsePlain(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := Parse([]byte(markup), false, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func TestElementName(t *testing.T) {
	doc := parsePlain(t, plainDoc)

	tests := []struct {
		id   string
		want string
	}{
		{"0", "mxCell"},
		{"2", `mxCell "Start"`},
		{"4", `mxCell "go"`},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			e := doc.LookupID(tt.id)
			if e == nil {
				t.Fatalf("LookupID(%q) = nil", tt.id)
			}
			if got := e.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElementAttrs(t *testing.T) {
	doc := parsePlain(t, plainDoc)
	e := doc.LookupID("4")

	if v, ok := e.Attr("source"); !ok || v != "2" {
		t.Errorf(`Attr("source") = %q, %v, want "2", true`, v, ok)
	}
	if _, ok := e.Attr("missing"); ok {
		t.Error(`Attr("missing") present, want absent`)
	}

	// Attribute order must follow the document.
	var keys []string
	for _, a := range e.Attrs() {
		keys = append(keys, a.Key)
	}
	want := []string{"id", "value", "edge", "parent", "source", "target"}
	if len(keys) != len(want) {
		t.Fatalf("len(Attrs()) = %d, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Attrs()[%d].Key = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestPhysicalTree(t *testing.T) {
	doc := parsePlain(t, plainDoc)
	cell := doc.LookupID("2")

	root := cell.FileParent()
	if root == nil || root.Type() != "root" {
		t.Fatalf("FileParent().Type() = %v, want root", root)
	}
	if len(root.FileChildren()) != 5 {
		t.Errorf("len(FileChildren()) = %d, want 5", len(root.FileChildren()))
	}

	model := root.FileParent()
	if model == nil || model.Type() != "mxGraphModel" {
		t.Errorf("grandparent = %v, want mxGraphModel", model)
	}
}

func TestLogicalParent(t *testing.T) {
	doc := parsePlain(t, plainDoc)

	p := doc.LookupID("2").Parent()
	if p == nil || p.ID() != "1" {
		t.Fatalf("Parent() = %v, want element 1", p)
	}

	// Element 0 declares no parent.
	if got := doc.LookupID("0").Parent(); got != nil {
		t.Errorf("Parent() of top cell = %v, want nil", got)
	}
}

func TestLazyParentRevalidation(t *testing.T) {
	doc := parsePlain(t, plainDoc)
	e := doc.LookupID("2")

	if p := e.Parent(); p == nil || p.ID() != "1" {
		t.Fatalf("Parent() = %v, want element 1", p)
	}

	// Mutating the attribute after load must take effect on the next access.
	e.SetAttr("parent", "0")
	if p := e.Parent(); p == nil || p.ID() != "0" {
		t.Errorf("Parent() after SetAttr = %v, want element 0", p)
	}
}

func TestLogicalRoot(t *testing.T) {
	doc := parsePlain(t, plainDoc)

	if r := doc.LookupID("4").Root(); r == nil || r.ID() != "0" {
		t.Fatalf("Root() = %v, want element 0", r)
	}
}

func TestLogicalRootCacheIsNotRevalidated(t *testing.T) {
	// Known limitation: unlike Parent, Root caches on first access and does
	// not notice later attribute mutation.
	doc := parsePlain(t, plainDoc)
	e := doc.LookupID("2")

	if r := e.Root(); r == nil || r.ID() != "0" {
		t.Fatalf("Root() = %v, want element 0", r)
	}

	e.SetAttr("parent", "3")
	if r := e.Root(); r == nil || r.ID() != "0" {
		t.Errorf("Root() after mutation = %v, want cached element 0", r)
	}
}

func TestRootFallbackChildren(t *testing.T) {
	// Nothing links to the "root" entry element by id, so its logical
	// children fall back to its physical children. This applies only at the
	// entry element; regular cells without linked children stay empty.
	doc := parsePlain(t, `<mxGraphModel><root><mxCell id="0"/><mxCell id="1"/></root></mxGraphModel>`)

	entry := doc.Pages()[0].Entry()
	kids := entry.Children()
	if len(kids) != 2 {
		t.Fatalf("len(Children()) of root = %d, want 2 (physical fallback)", len(kids))
	}
	if kids[0].ID() != "0" || kids[1].ID() != "1" {
		t.Errorf("Children() = [%s %s], want [0 1]", kids[0].ID(), kids[1].ID())
	}

	if got := doc.LookupID("1").Children(); len(got) != 0 {
		t.Errorf("Children() of leaf cell = %d elements, want 0", len(got))
	}
}
