// Package listing enumerates a directory one level deep and renders the
// result as an HTML or Markdown page.
package listing

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParentName is the display name of the link to the enclosing directory.
const ParentName = "Parent Directory"

// Entry is one line of a directory listing.
type Entry struct {
	// Name is the display name.
	Name string
	// Href is the escaped, root-relative URL path of the entry.
	Href string
	// IsDir is true for directories, including symlinks to directories.
	IsDir bool
	// Size is the file size in bytes. It is zero for directories.
	Size int64
	// Parent marks the synthetic entry linking to the enclosing directory.
	Parent bool
}

// Read lists the immediate children of dir. root is the serving root; dir
// must be root or lie inside it. A parent entry is added unless dir is root.
// Entries that vanish or cannot be inspected while reading are skipped.
func Read(dir, root string) ([]Entry, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(children)+1)
	if dir != root {
		entries = append(entries, Entry{
			Name:   ParentName,
			Href:   Href(root, filepath.Dir(dir), true),
			IsDir:  true,
			Parent: true,
		})
	}

	for _, child := range children {
		full := filepath.Join(dir, child.Name())
		info, err := child.Info()
		if err != nil {
			continue
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(full); err == nil {
				info = target
			}
		}

		e := Entry{
			Name:  child.Name(),
			Href:  Href(root, full, info.IsDir()),
			IsDir: info.IsDir(),
		}
		if !e.IsDir {
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}

	Sort(entries)
	return entries, nil
}

// Sort orders entries: the parent entry first, then directories, then files,
// each group by byte-wise comparison of names.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Parent != b.Parent {
			return a.Parent
		}
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
}

// URLPath returns the unescaped URL path under which path is served.
func URLPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}

// Href returns the escaped URL path of path. Directory links end in a slash.
func Href(root, path string, isDir bool) string {
	p := URLPath(root, path)
	if isDir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return (&url.URL{Path: p}).EscapedPath()
}
