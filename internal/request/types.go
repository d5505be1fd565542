// Package request parses raw HTTP/1.x request buffers.
package request

import "strings"

// Header is a single request header as it appeared on the wire.
type Header struct {
	// Name is the header name, case preserved.
	Name string
	// Value is everything after the first ": " separator.
	Value string
}

// Resource identifies the target of a request.
type Resource struct {
	// Path is the raw request target, still percent-encoded.
	Path string
}

// Request is the structured form of a request buffer.
// It is built once per connection and never modified afterwards.
type Request struct {
	// Method is the first token of the request line, not validated.
	Method string
	// Resource holds the second token of the request line.
	Resource Resource
	// Headers keeps every well-formed header line in arrival order, duplicates included.
	Headers []Header
}

// Header returns the value of the first header whose name matches name
// case-insensitively, and whether one was found.
func (r *Request) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}
