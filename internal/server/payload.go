package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// defaultContentType is used when a payload carries no data-URL marker.
const defaultContentType = "image/jpeg"

// imagePayload is one image inside an item submission. The JSON form is
// either a base64 string (optionally prefixed with "data:<mime>;base64,")
// or an array of byte values for raw binary.
type imagePayload struct {
	text string
	raw  []byte
}

func (p *imagePayload) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.text)
	}

	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("image must be a base64 string or a byte array")
	}
	p.raw = make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 255 {
			return fmt.Errorf("image byte value out of range: %d", n)
		}
		p.raw[i] = byte(n)
	}
	return nil
}

var dataURLRegex = regexp.MustCompile(`^data:([a-zA-Z0-9][\w.+-]*/[\w.+-]+);base64$`)

// normalize converts the payload to canonical bytes plus a content type.
// Raw bytes pass through unchanged. Strings are base64-decoded, honouring
// a data-URL prefix for the content type. Performs no I/O.
func (p imagePayload) normalize() ([]byte, string, error) {
	if p.raw != nil {
		return p.raw, defaultContentType, nil
	}

	enc := p.text
	contentType := defaultContentType

	// A comma separates an optional prefix from the encoded payload.
	// Only a well-formed data-URL marker overrides the content type.
	if i := strings.Index(enc, ","); i >= 0 {
		if m := dataURLRegex.FindStringSubmatch(enc[:i]); m != nil {
			contentType = m[1]
		}
		enc = enc[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadImageData, err)
	}
	return data, contentType, nil
}
