// Package codec implements the block transcoding used by draw.io documents.
//
// A compressed diagram payload is a base64 block wrapping a raw-deflate stream
// of percent-encoded UTF-8 markup. [Decode] and [Encode] are exact inverses
// over diagram text:
//
//	base64 decode -> raw deflate inflate -> percent decode
//	percent encode -> raw deflate compress -> base64 encode
//
// The on-disk format is fixed by draw.io itself: standard base64 alphabet with
// padding, rfc1951 deflate with no zlib/gzip framing, and the
// encodeURIComponent percent dialect (a space is "%20", never "+").
package codec

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"

	"github.com/matzehuels/drawbridge/pkg/errors"
)

// Stage identifies the transcoding stage at which a decode failed.
type Stage string

// Decode stages, in pipeline order.
const (
	StageBase64  Stage = "base64"
	StageDeflate Stage = "deflate"
	StagePercent Stage = "percent"
)

// DecodeError reports a failure at a specific decode stage. Malformed base64,
// a corrupt or truncated deflate stream, and an invalid percent escape are
// each attributed to their own stage so callers can tell them apart.
type DecodeError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Stage, e.Err)
}

// Unwrap returns the stage's underlying error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Code returns the error code for this error type.
func (e *DecodeError) Code() errors.Code { return errors.ErrCodeMalformedBlock }

// Decode converts one compressed block into plain diagram text.
// Whitespace anywhere in the block is ignored: producers wrap long base64
// payloads across lines, and the alphabet never contains whitespace.
func Decode(block string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stripSpace(block))
	if err != nil {
		return "", &DecodeError{Stage: StageBase64, Err: err}
	}

	fr := flate.NewReader(bytes.NewReader(raw))
	inflated, err := io.ReadAll(fr)
	if err != nil {
		return "", &DecodeError{Stage: StageDeflate, Err: err}
	}
	if err := fr.Close(); err != nil {
		return "", &DecodeError{Stage: StageDeflate, Err: err}
	}

	text, err := percentDecode(string(inflated))
	if err != nil {
		return "", &DecodeError{Stage: StagePercent, Err: err}
	}
	return text, nil
}

// Encode converts plain diagram text into one compressed block.
func Encode(text string) (string, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "init deflate")
	}
	if _, err := fw.Write([]byte(percentEncode(text))); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "deflate")
	}
	if err := fw.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "flush deflate")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// percentDecode resolves %XX escapes, leaving '+' alone. url.QueryUnescape
// would turn '+' into a space, which diagram payloads never intend.
func percentDecode(s string) (string, error) {
	return url.PathUnescape(s)
}

// percentEncode emits the encodeURIComponent dialect draw.io writes:
// QueryEscape with the '+' space convention rewritten to "%20".
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// stripSpace drops every whitespace rune from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
