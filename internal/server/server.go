// Package server accepts connections and answers one request per connection,
// strictly one connection at a time.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/Biku213/Simple-File-Server/internal/logging"
	"github.com/Biku213/Simple-File-Server/internal/request"
	"github.com/Biku213/Simple-File-Server/internal/response"
)

// DefaultBufferSize is the number of bytes read from each connection.
const DefaultBufferSize = 1024

// Handler produces the response for a parsed request. A non-nil error means
// the connection is dropped without a reply.
type Handler interface {
	Serve(req *request.Request) (*response.Response, error)
}

// Server is a sequential HTTP/1.1 server.
type Server struct {
	// Addr is the host:port to listen on.
	Addr string
	// BufferSize is the size of the single read made on each connection.
	// Requests longer than this are truncated.
	BufferSize int
	Handler    Handler
	Logger     *logging.Logger
}

// ListenAndServe binds Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and handles each one to completion before
// accepting the next. Failures on a single connection are logged and never
// stop the loop. Serve returns nil once ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	s.logger().Successf("Server listening on http://%s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.logger().Errorf("Connection failed: %v", err)
			continue
		}

		s.logger().Debugf("Accepted connection from %s", conn.RemoteAddr())
		if err := s.handle(conn); err != nil {
			s.logger().Errorf("Error handling connection from %s: %v", conn.RemoteAddr(), err)
		}
	}
}

// handle reads one buffer, answers it and closes conn.
func (s *Server) handle(conn net.Conn) error {
	defer conn.Close()

	buf := make([]byte, s.bufferSize())
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		return fmt.Errorf("read request: %w", err)
	}

	req, err := request.Parse(buf[:n])
	if err != nil {
		return err
	}

	resp, err := s.Handler.Serve(req)
	if err != nil {
		return err
	}

	if _, err := resp.WriteTo(conn); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	s.logAccess(conn.RemoteAddr(), req, resp)
	return nil
}

func (s *Server) logAccess(remote net.Addr, req *request.Request, resp *response.Response) {
	switch {
	case resp.StatusCode >= 400:
		s.logger().Warnf("%s %s %s %d", remote, req.Method, req.Resource.Path, resp.StatusCode)
	default:
		s.logger().Infof("%s %s %s %d", remote, req.Method, req.Resource.Path, resp.StatusCode)
	}
}

func (s *Server) bufferSize() int {
	if s.BufferSize > 0 {
		return s.BufferSize
	}
	return DefaultBufferSize
}

func (s *Server) logger() *logging.Logger {
	if s.Logger == nil {
		s.Logger = logging.Default()
	}
	return s.Logger
}
