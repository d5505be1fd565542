package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Biku213/Simple-File-Server/internal/dispatch"
	"github.com/Biku213/Simple-File-Server/internal/logging"
	"github.com/Biku213/Simple-File-Server/internal/request"
	"github.com/Biku213/Simple-File-Server/internal/response"
)

type failingHandler struct{}

func (failingHandler) Serve(*request.Request) (*response.Response, error) {
	return nil, errors.New("disk on fire")
}

// startServer runs s on a loopback listener. The returned stop function
// cancels the server and waits for Serve to return.
func startServer(t *testing.T, s *Server) (string, func() error) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	var stopped bool
	var result error
	stop := func() error {
		if !stopped {
			stopped = true
			cancel()
			select {
			case result = <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("Serve did not return after cancel")
			}
		}
		return result
	}
	t.Cleanup(func() { stop() })

	return ln.Addr().String(), stop
}

// roundTrip sends raw and returns everything the server writes back.
func roundTrip(t *testing.T, addr, raw string) []byte {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	if raw != "" {
		if _, err := conn.Write([]byte(raw)); err != nil {
			t.Fatalf("Failed to write request: %v", err)
		}
	}
	if err := conn.(*net.TCPConn).CloseWrite(); err != nil {
		t.Fatalf("Failed to close write side: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	out, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	return out
}

func newFileServer(t *testing.T, logOut io.Writer) *Server {
	t.Helper()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return &Server{
		Handler: &dispatch.Handler{Root: func() (string, error) { return root, nil }},
		Logger:  logging.New(logOut, true),
	}
}

func TestServeFile(t *testing.T) {
	var logs bytes.Buffer
	s := newFileServer(t, &logs)
	addr, stop := startServer(t, s)

	got := roundTrip(t, addr, "GET /a.txt HTTP/1.1\r\nHost: localhost\r\n\r\n")

	want := response.OK([]byte("hello"), "text/plain")
	want.AddHeader("Content-Disposition", "inline")
	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("response = %q, want %q", got, want.Bytes())
	}

	if err := stop(); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if !strings.Contains(logs.String(), "GET /a.txt 200") {
		t.Errorf("access log missing request line: %q", logs.String())
	}
}

func TestServeRoutingResponses(t *testing.T) {
	s := newFileServer(t, io.Discard)
	addr, _ := startServer(t, s)

	tests := []struct {
		name string
		raw  string
		want *response.Response
	}{
		{name: "Not found", raw: "GET /missing HTTP/1.1\r\n\r\n", want: response.NotFound()},
		{name: "Forbidden", raw: "GET /../ HTTP/1.1\r\n\r\n", want: response.Forbidden()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roundTrip(t, addr, tt.raw); !bytes.Equal(got, tt.want.Bytes()) {
				t.Errorf("response = %q, want %q", got, tt.want.Bytes())
			}
		})
	}
}

func TestServeDropsBadRequests(t *testing.T) {
	var logs bytes.Buffer
	s := newFileServer(t, &logs)
	addr, stop := startServer(t, s)

	for _, raw := range []string{"", "   \r\n", "GET\r\n\r\n"} {
		if got := roundTrip(t, addr, raw); len(got) != 0 {
			t.Errorf("request %q got reply %q, want none", raw, got)
		}
	}

	// The loop keeps serving after dropped connections.
	if got := roundTrip(t, addr, "GET / HTTP/1.1\r\n\r\n"); !bytes.HasPrefix(got, []byte("HTTP/1.1 200 OK\r\n")) {
		t.Errorf("listing after failures = %q", got)
	}

	if err := stop(); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	out := logs.String()
	for _, want := range []string{request.ErrMalformedRequestLine.Error(), "Error handling connection"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestServeDropsOnHandlerError(t *testing.T) {
	var logs bytes.Buffer
	s := &Server{Handler: failingHandler{}, Logger: logging.New(&logs, true)}
	addr, stop := startServer(t, s)

	if got := roundTrip(t, addr, "GET / HTTP/1.1\r\n\r\n"); len(got) != 0 {
		t.Errorf("got reply %q, want none", got)
	}

	if err := stop(); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if !strings.Contains(logs.String(), "disk on fire") {
		t.Errorf("log %q missing handler error", logs.String())
	}
}

// fakeConn feeds a fixed request and records what is written back.
type fakeConn struct {
	net.Conn
	in     *bytes.Reader
	out    bytes.Buffer
	closed bool
}

func (c *fakeConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }
func (c *fakeConn) Close() error                { c.closed = true; return nil }
func (c *fakeConn) RemoteAddr() net.Addr        { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000} }

func TestHandleTruncatesRequest(t *testing.T) {
	s := newFileServer(t, io.Discard)
	s.BufferSize = len("GET /a.txt")

	conn := &fakeConn{in: bytes.NewReader([]byte("GET /a.txt-and-more HTTP/1.1\r\nHost: localhost\r\n\r\n"))}
	if err := s.handle(conn); err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if !conn.closed {
		t.Error("handle() did not close the connection")
	}
	got := conn.out.Bytes()
	if !bytes.HasPrefix(got, []byte("HTTP/1.1 200 OK\r\n")) || !bytes.HasSuffix(got, []byte("hello")) {
		t.Errorf("response = %q", got)
	}
}

func TestListenAndServeBadAddress(t *testing.T) {
	s := &Server{Addr: "256.0.0.1:-1", Handler: failingHandler{}, Logger: logging.New(io.Discard, true)}
	if err := s.ListenAndServe(context.Background()); err == nil {
		t.Error("ListenAndServe() with a bad address should fail")
	}
}
