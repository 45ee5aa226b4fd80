// Package mx reads and writes draw.io (mxfile) diagram documents.
//
// A draw.io file is a thin XML envelope wrapping one or more compressed,
// percent-encoded diagram payloads. Decoding runs the payloads through
// [github.com/matzehuels/drawbridge/pkg/mx/envelope] and
// [github.com/matzehuels/drawbridge/pkg/mx/codec], parses the combined
// markup into a physical element tree, and then reconstructs the logical
// graph: diagram elements reference their parents by id through a "parent"
// attribute that is independent of the document's physical nesting.
//
// # Physical vs logical tree
//
// Every [Element] sits in two trees over the same node set. The physical
// tree ([Element.FileParent], [Element.FileChildren]) mirrors the markup
// nesting and owns the elements. The logical tree ([Element.Parent],
// [Element.Children], [Element.Root]) is derived from parent-id references,
// resolved through a per-page id index, and rebuilt by the relink pass that
// runs right after parse.
//
// # Usage
//
//	doc, err := mx.Load("diagram.drawio", mx.DefaultLoadOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(doc.TreeString())
//	if cell := doc.LookupID("1"); cell != nil {
//	    fmt.Println(cell.Parent().ID())
//	}
//
// # Error handling
//
// Decode failures carry the failing stage ([codec.DecodeError]); structural
// problems carry the offending element id ([IntegrityError]); duplicate ids
// are warnings on the document, not errors. There is no partial success: a
// document either fully parses and indexes or the load fails as a whole.
//
// # Concurrency
//
// All operations are synchronous, CPU-bound transforms. Independent
// Documents share no state and are safe to use from different goroutines.
// The lazy caches on elements are unsynchronized, so concurrent use of one
// Document must be serialized by the caller.
package mx
