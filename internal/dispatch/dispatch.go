// Package dispatch turns a parsed request into a response by resolving its
// path and serving either a file or a directory listing.
package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Biku213/Simple-File-Server/internal/listing"
	"github.com/Biku213/Simple-File-Server/internal/mimetype"
	"github.com/Biku213/Simple-File-Server/internal/request"
	"github.com/Biku213/Simple-File-Server/internal/resolver"
	"github.com/Biku213/Simple-File-Server/internal/response"
)

// Handler serves files below a root directory.
type Handler struct {
	// Root returns the serving root. It is called once per request.
	Root func() (string, error)
	// Markdown enables Markdown listings for clients accepting text/markdown.
	Markdown bool
}

// Serve builds the response for req. Missing and escaping paths yield 404 and
// 403 responses. Errors are returned only for I/O failures after the path was
// authorized, in which case no response should be sent.
func (h *Handler) Serve(req *request.Request) (*response.Response, error) {
	root, err := h.Root()
	if err != nil {
		return nil, fmt.Errorf("determine root: %w", err)
	}

	res, err := resolver.Resolve(root, req.Resource.Path)
	if err != nil {
		return nil, err
	}

	switch res.Outcome {
	case resolver.NotFound:
		return response.NotFound(), nil
	case resolver.Forbidden:
		return response.Forbidden(), nil
	}

	if res.Info.IsDir() {
		return h.serveDirectory(req, res)
	}
	return serveFile(res.Path, filepath.Base(res.Candidate))
}

func (h *Handler) serveDirectory(req *request.Request, res resolver.Result) (*response.Response, error) {
	entries, err := listing.Read(res.Path, res.Root)
	if err != nil {
		return nil, err
	}

	page, err := listing.HTML(listing.URLPath(res.Root, res.Path), entries)
	if err != nil {
		return nil, err
	}

	if h.Markdown && wantsMarkdown(req) {
		out, err := listing.Markdown(page)
		if err != nil {
			return nil, err
		}
		return response.OK(out, "text/markdown"), nil
	}
	return response.OK(page, "text/html"), nil
}

// serveFile reads path whole. name is the file name as requested, which
// differs from the base of path when a symlink was followed.
func serveFile(path, name string) (*response.Response, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	contentType := mimetype.ByName(name)

	resp := response.OK(content, contentType)
	resp.AddHeader("Content-Disposition", mimetype.Disposition(contentType, name))
	return resp, nil
}

func wantsMarkdown(req *request.Request) bool {
	accept, ok := req.Header("Accept")
	return ok && strings.Contains(accept, "text/markdown")
}
