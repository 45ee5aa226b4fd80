// Package envelope splits a document around the marker tags that wrap its
// compressed payloads, and joins it back together.
//
// The split is purely textual: every byte outside a payload is captured
// verbatim and reproduced byte-identically on join. Running the document
// through an XML parser here would re-serialize (and so corrupt) the literal
// segments, which is why this package never parses.
package envelope

import (
	"strings"

	"github.com/matzehuels/drawbridge/pkg/errors"
)

// Marker is the tag draw.io wraps each compressed payload in.
const Marker = "diagram"

// segment is one slice of the original document: either literal bytes, or a
// payload with the raw attribute text of its wrapper tag.
type segment struct {
	literal string
	payload bool
	attrs   string // raw text between "<marker" and ">", verbatim
	text    string // payload text between ">" and "</marker>"
}

// Envelope is a document split into literal and payload segments.
type Envelope struct {
	marker   string
	segments []segment
}

// Split scans doc for every occurrence of "<marker", capturing the wrapper
// tag's attributes and payload of each, and the literal bytes around them.
//
// A document with zero markers yields a single literal segment, so join
// reproduces it unchanged. An empty payload is a valid empty-string payload,
// not an error.
func Split(doc, marker string) (*Envelope, error) {
	open := "<" + marker
	closing := "</" + marker + ">"

	env := &Envelope{marker: marker}
	rest := doc
	for {
		i := strings.Index(rest, open)
		if i < 0 {
			env.segments = append(env.segments, segment{literal: rest})
			return env, nil
		}
		env.segments = append(env.segments, segment{literal: rest[:i]})
		rest = rest[i+len(open):]

		gt := strings.Index(rest, ">")
		if gt < 0 {
			return nil, errors.New(errors.ErrCodeMalformedEnvelope, "unterminated <%s> tag", marker)
		}
		attrs := rest[:gt]
		rest = rest[gt+1:]

		end := strings.Index(rest, closing)
		if end < 0 {
			return nil, errors.New(errors.ErrCodeMalformedEnvelope, "missing %s", closing)
		}
		env.segments = append(env.segments, segment{payload: true, attrs: attrs, text: rest[:end]})
		rest = rest[end+len(closing):]
	}
}

// Marker returns the marker tag name the envelope was split on.
func (e *Envelope) Marker() string { return e.marker }

// Payloads returns the payload text of every marker, in document order.
func (e *Envelope) Payloads() []string {
	var out []string
	for _, s := range e.segments {
		if s.payload {
			out = append(out, s.text)
		}
	}
	return out
}

// HasPayloads reports whether the document contained any marker tags.
func (e *Envelope) HasPayloads() bool {
	for _, s := range e.segments {
		if s.payload {
			return true
		}
	}
	return false
}

// Join reassembles the document with each payload replaced by the
// corresponding entry of payloads. Literal segments are reproduced
// byte-identically. When keepWrapperTag is true (the usual case) each payload
// stays inside its original wrapper tag, attributes untouched; when false the
// wrapper tags are dropped and only the payload text is emitted.
func (e *Envelope) Join(payloads []string, keepWrapperTag bool) (string, error) {
	want := len(e.Payloads())
	if len(payloads) != want {
		return "", errors.New(errors.ErrCodeInternal, "join: %d payloads for %d markers", len(payloads), want)
	}

	var b strings.Builder
	n := 0
	for _, s := range e.segments {
		if !s.payload {
			b.WriteString(s.literal)
			continue
		}
		if keepWrapperTag {
			b.WriteString("<" + e.marker)
			b.WriteString(s.attrs)
			b.WriteString(">")
		}
		b.WriteString(payloads[n])
		if keepWrapperTag {
			b.WriteString("</" + e.marker + ">")
		}
		n++
	}
	return b.String(), nil
}
