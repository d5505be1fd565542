// Package mimetype maps file names to content types and decides whether a
// file is shown inline or offered as a download.
package mimetype

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default is the content type of files with an unknown extension.
const Default = "application/octet-stream"

var types = map[string]string{
	"txt":  "text/plain",
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"mp3":  "audio/mpeg",
	"mp4":  "video/mp4",
}

var inlineCategories = map[string]bool{
	"text":  true,
	"image": true,
	"audio": true,
	"video": true,
}

var inlineTypes = map[string]bool{
	"application/pdf":  true,
	"application/json": true,
	"application/xml":  true,
}

// ByExtension returns the content type for ext, given with or without the
// leading dot. The lookup ignores case.
func ByExtension(ext string) string {
	if t, ok := types[cases.Lower(language.Und).String(strings.TrimPrefix(ext, "."))]; ok {
		return t
	}
	return Default
}

// ByName returns the content type for the extension of name.
func ByName(name string) string {
	return ByExtension(filepath.Ext(name))
}

// Inline reports whether browsers should display contentType in place.
func Inline(contentType string) bool {
	if inlineTypes[contentType] {
		return true
	}
	category, _, _ := strings.Cut(contentType, "/")
	return inlineCategories[category]
}

// Disposition returns the Content-Disposition value for a file named name.
// The name is quoted as is; embedded quotes are not escaped.
func Disposition(contentType, name string) string {
	if Inline(contentType) {
		return "inline"
	}
	return fmt.Sprintf("attachment; filename=\"%s\"", name)
}
