// Package response builds and serializes HTTP/1.1 responses.
package response

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ServerName is sent in the Server header of every response.
const ServerName = "SimpleFileServer/0.1"

// Header is a single response header line.
type Header struct {
	Name  string
	Value string
}

// Response is a complete HTTP response held in memory.
//
// Content-Length is computed from Body when the response is built, so Body
// must not be replaced afterwards.
type Response struct {
	StatusCode int
	StatusText string
	Headers    []Header
	Body       []byte
}

// New builds a response with Content-Length and Server headers set.
// Content-Type is added only when contentType is not empty.
func New(statusCode int, statusText string, body []byte, contentType string) *Response {
	r := &Response{
		StatusCode: statusCode,
		StatusText: statusText,
		Body:       body,
		Headers: []Header{
			{Name: "Content-Length", Value: strconv.Itoa(len(body))},
			{Name: "Server", Value: ServerName},
		},
	}
	if contentType != "" {
		r.AddHeader("Content-Type", contentType)
	}
	return r
}

// OK builds a 200 response.
func OK(body []byte, contentType string) *Response {
	return New(200, "OK", body, contentType)
}

// NotFound builds the plain-text 404 response.
func NotFound() *Response {
	return New(404, "Not Found", []byte("404 Not Found"), "text/plain")
}

// Forbidden builds the plain-text 403 response.
func Forbidden() *Response {
	return New(403, "Forbidden", []byte("403 Forbidden"), "text/plain")
}

// AddHeader appends a header. Names are not deduplicated.
func (r *Response) AddHeader(name, value string) {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// Bytes serializes the response: status line, headers in insertion order,
// a blank line and the body verbatim.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", r.StatusCode, r.StatusText)
	for _, h := range r.Headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.Name, h.Value)
	}
	buf.WriteString("\r\n")
	buf.Write(r.Body)
	return buf.Bytes()
}

// WriteTo writes the serialized response to w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}
