package imagegen

import (
	"errors"
	"strings"
)

const (
	dataURIScheme = "data:"
	dataURIImage  = "data:image/"
	base64Marker  = "base64,"
)

var (
	// ErrNotDataURI is returned by ParseDataURI for strings without the data: scheme.
	ErrNotDataURI = errors.New("not a data URI")

	// ErrMissingComma is returned by ParseDataURI when metadata and payload
	// are not separated by a comma.
	ErrMissingComma = errors.New("data URI has no comma separator")
)

// ScanDataURI returns the leftmost substring of s shaped like
// data:image/<subtype>;base64,<payload>. The subtype is every character up to
// the first ';' and must be non-empty; the payload is the maximal non-empty
// run of base64 alphabet characters after the comma.
func ScanDataURI(s string) (string, bool) {
	offset := 0
	for {
		idx := strings.Index(s[offset:], dataURIImage)
		if idx < 0 {
			return "", false
		}
		start := offset + idx
		if end, ok := lexDataURI(s, start); ok {
			return s[start:end], true
		}
		offset = start + len(dataURIImage)
	}
}

// lexDataURI tries to read one data URI beginning at start and returns the
// end offset of the match.
func lexDataURI(s string, start int) (int, bool) {
	pos := start + len(dataURIImage)

	// subtype
	semi := strings.IndexByte(s[pos:], ';')
	if semi <= 0 {
		return 0, false
	}
	pos += semi + 1

	if !strings.HasPrefix(s[pos:], base64Marker) {
		return 0, false
	}
	pos += len(base64Marker)

	payloadStart := pos
	for pos < len(s) && isBase64Char(s[pos]) {
		pos++
	}
	if pos == payloadStart {
		return 0, false
	}
	return pos, true
}

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+', c == '/', c == '=':
		return true
	}
	return false
}

// ParseDataURI splits a data URI at its first comma. The MIME type is the
// metadata before the first ';' (DefaultMIMEType when empty) and the payload
// is returned exactly as found.
func ParseDataURI(uri string) (*GenerationResult, error) {
	if !strings.HasPrefix(uri, dataURIScheme) {
		return nil, ErrNotDataURI
	}
	meta, payload, found := strings.Cut(uri[len(dataURIScheme):], ",")
	if !found {
		return nil, ErrMissingComma
	}
	mimeType, _, _ := strings.Cut(meta, ";")
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return &GenerationResult{ImageBase64: payload, MIMEType: mimeType}, nil
}
