package mx

import (
	"fmt"
	"strings"

	"github.com/matzehuels/drawbridge/pkg/errors"
)

// IntegrityError reports a structural problem in the element graph: a
// logical-parent reference that resolves nowhere, or a cycle in the parent
// chain. It names the offending element and is never auto-corrected.
type IntegrityError struct {
	Code      errors.Code
	ElementID string
	Detail    string
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: element %q: %s", e.Code, e.ElementID, e.Detail)
}

// Warning records a non-fatal integrity condition found during load, such as
// a duplicate element ID. Warnings are surfaced on the document rather than
// logged directly so library callers decide what to do with them.
type Warning struct {
	Code      errors.Code
	ElementID string
	Message   string
}

// String formats the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("%s: element %q: %s", w.Code, w.ElementID, w.Message)
}

// buildIndex walks the physical tree under root depth-first and indexes every
// element that declares an id. Duplicate ids are last-write-wins, recorded as
// a warning: they indicate a malformed source document but are not fatal.
//
// The returned order slice holds the indexed elements in document order;
// relink iterates it so logical-children lists come out deterministic.
func buildIndex(root *Element) (index map[string]*Element, order []*Element, warns []Warning) {
	index = make(map[string]*Element)
	root.walkFile(func(e *Element) {
		id := e.ID()
		if id == "" {
			return
		}
		if _, dup := index[id]; dup {
			warns = append(warns, Warning{
				Code:      errors.ErrCodeDuplicateID,
				ElementID: id,
				Message:   "duplicate element id, keeping the last occurrence",
			})
			for i, prev := range order {
				if prev.ID() == id {
					order = append(order[:i], order[i+1:]...)
					break
				}
			}
		}
		index[id] = e
		order = append(order, e)
	})
	return index, order, warns
}

// relink populates every element's logical-children list from the elements'
// "parent" attributes, in document order. A parent reference that does not
// resolve within the index, or a parent chain that loops, is an integrity
// error; neither is silently dropped.
func relink(order []*Element, index map[string]*Element) error {
	for _, e := range order {
		pid, ok := e.ParentID()
		if !ok {
			continue
		}
		parent, found := index[pid]
		if !found {
			return &IntegrityError{
				Code:      errors.ErrCodeUnresolvedParent,
				ElementID: e.ID(),
				Detail:    fmt.Sprintf("parent %q not found", pid),
			}
		}
		parent.kids = append(parent.kids, e)
	}
	return checkAcyclic(order)
}

// checkAcyclic verifies no parent chain loops back on itself. Each element
// has at most one logical parent, so a chain walk with three-state coloring
// is enough: revisiting an element that is still on the current chain means a
// cycle.
func checkAcyclic(order []*Element) error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current chain
		black = 2 // known acyclic
	)
	state := make(map[*Element]int, len(order))

	for _, e := range order {
		var chain []*Element
		for n := e; n != nil; {
			switch state[n] {
			case black:
				n = nil
			case gray:
				for _, c := range chain {
					state[c] = black
				}
				return &IntegrityError{
					Code:      errors.ErrCodeCycle,
					ElementID: n.ID(),
					Detail:    "logical parent chain forms a cycle",
				}
			default:
				state[n] = gray
				chain = append(chain, n)
				pid, ok := n.ParentID()
				if !ok {
					n = nil
					break
				}
				n = n.page.LookupID(pid)
			}
		}
		for _, c := range chain {
			state[c] = black
		}
	}
	return nil
}

// treeString renders the logical tree rooted at e, one element per line,
// indented three spaces per depth. A per-call visited set guards against
// cycles introduced by post-load mutation: a revisited element renders as an
// ellipsis marker instead of recursing.
func treeString(e *Element, b *strings.Builder, indent string, visited map[*Element]bool) {
	b.WriteString(indent)
	if visited[e] {
		b.WriteString("...\n")
		return
	}
	visited[e] = true

	b.WriteString(e.Name())
	b.WriteString("\n")
	for _, c := range e.Children() {
		treeString(c, b, indent+"   ", visited)
	}
}
