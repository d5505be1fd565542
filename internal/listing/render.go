package listing

import (
	"bytes"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const stylesheet = `
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
h1 { border-bottom: 1px solid #ccc; padding-bottom: 10px; }
ul { list-style-type: none; padding: 0; }
li { margin-bottom: 10px; }
a { text-decoration: none; color: #0066cc; display: flex; align-items: center; }
a:hover { text-decoration: underline; }
.icon { margin-right: 10px; font-size: 1.2em; }
.name { flex-grow: 1; }
.size { color: #888; font-size: 0.9em; }
`

const (
	dirIcon  = "📁"
	fileIcon = "📄"
)

// HTML renders entries as a complete HTML document titled after urlPath.
func HTML(urlPath string, entries []Entry) ([]byte, error) {
	title := "Directory listing for " + urlPath

	head := element(atom.Head,
		element(atom.Meta, attr("charset", "utf-8")),
		element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")),
		element(atom.Title, text(title)),
		element(atom.Style, text(stylesheet)),
	)

	list := element(atom.Ul)
	for _, e := range entries {
		list.AppendChild(item(e))
	}

	body := element(atom.Body,
		element(atom.H1, text(title)),
		list,
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html, attr("lang", "en"), head, body))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render listing: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown converts a rendered HTML listing to Markdown.
func Markdown(page []byte) ([]byte, error) {
	conv := md.NewConverter("", true, nil)
	conv.Remove("style", "title")
	out, err := conv.ConvertBytes(page)
	if err != nil {
		return nil, fmt.Errorf("convert listing to markdown: %w", err)
	}
	return out, nil
}

func item(e Entry) *html.Node {
	icon := fileIcon
	if e.IsDir {
		icon = dirIcon
	}

	link := element(atom.A, attr("href", e.Href),
		element(atom.Span, attr("class", "icon"), text(icon)),
		element(atom.Span, attr("class", "name"), text(e.Name)),
	)
	if !e.IsDir {
		link.AppendChild(element(atom.Span, attr("class", "size"), text(humanize.Bytes(uint64(e.Size)))))
	}
	return element(atom.Li, link)
}

// element builds a node from a mix of html.Attribute and *html.Node children.
func element(a atom.Atom, parts ...interface{}) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, p := range parts {
		switch v := p.(type) {
		case html.Attribute:
			n.Attr = append(n.Attr, v)
		case *html.Node:
			n.AppendChild(v)
		}
	}
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
