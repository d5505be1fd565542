// Package resolver maps request paths onto the filesystem and keeps them
// inside the serving root.
package resolver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Outcome is the routing decision for a resolved path.
type Outcome int

const (
	// Authorized means the path exists and lies inside the root.
	Authorized Outcome = iota
	// NotFound means the candidate path could not be probed.
	NotFound
	// Forbidden means the path exists but escapes the root.
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Authorized:
		return "authorized"
	case NotFound:
		return "not found"
	case Forbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes where a request path landed.
type Result struct {
	// Outcome is the routing decision. The remaining fields are set only
	// when it is Authorized.
	Outcome Outcome
	// Candidate is the joined path before symlinks are evaluated.
	Candidate string
	// Path is the absolute path with symlinks evaluated.
	Path string
	// Root is the root directory with symlinks evaluated.
	Root string
	// Info is the stat of Path.
	Info fs.FileInfo
}

// IsRoot reports whether the result is the root directory itself.
func (r Result) IsRoot() bool {
	return r.Outcome == Authorized && r.Path == r.Root
}

// Resolve maps rawPath, as received on the request line, onto root.
//
// The path is percent-decoded, one leading slash is stripped and the rest is
// joined onto root. A candidate that cannot be probed is NotFound. An existing
// candidate is checked for containment after its symlinks are evaluated, so
// links pointing outside root are Forbidden.
func Resolve(root, rawPath string) (Result, error) {
	rel := strings.TrimPrefix(Decode(rawPath), "/")
	candidate := filepath.Join(root, filepath.FromSlash(rel))

	if _, err := os.Stat(candidate); err != nil {
		return Result{Outcome: NotFound}, nil
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate root %s: %w", root, err)
	}
	realPath, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate %s: %w", candidate, err)
	}

	if !Within(realRoot, realPath) {
		return Result{Outcome: Forbidden}, nil
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", realPath, err)
	}

	return Result{
		Outcome:   Authorized,
		Candidate: candidate,
		Path:      realPath,
		Root:      realRoot,
		Info:      info,
	}, nil
}

// Within reports whether path equals root or is a descendant of it.
// The comparison is made on path components, so /srv-old is not within /srv.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
