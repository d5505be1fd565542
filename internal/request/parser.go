package request

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrEmptyRequest is returned when the buffer holds no lines at all.
	ErrEmptyRequest = errors.New("empty request")
	// ErrMalformedRequestLine is returned when the request line has fewer than two tokens.
	ErrMalformedRequestLine = errors.New("invalid request line")
)

const headerSeparator = ": "

// Parse turns a raw request buffer into a Request.
//
// Invalid UTF-8 is replaced rather than rejected. Header parsing stops at the
// first empty line; anything after it is ignored. Header lines without a
// ": " separator are dropped.
func Parse(buf []byte) (*Request, error) {
	lines := splitLines(decode(buf))
	if len(lines) == 0 {
		return nil, ErrEmptyRequest
	}

	fields := strings.Fields(lines[0])
	if len(fields) < 2 {
		return nil, ErrMalformedRequestLine
	}

	req := &Request{
		Method:   fields[0],
		Resource: Resource{Path: fields[1]},
	}

	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, headerSeparator)
		if !ok {
			continue
		}
		req.Headers = append(req.Headers, Header{Name: name, Value: value})
	}

	return req, nil
}

// decode converts buf to text, substituting U+FFFD for invalid sequences.
func decode(buf []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(buf)
	if err != nil {
		return strings.ToValidUTF8(string(buf), "�")
	}
	return string(out)
}

// splitLines splits on "\n", drops one trailing "\r" per line and does not
// report an empty final line after a trailing newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
