// Package page adapts captured HTML snapshots of the service's web page to
// the detector's document tree, and watches the snapshot file for changes.
package page

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"tableflip.dev/switcher/pkg/detect"
)

// Parse reads an HTML document and returns its body as a detect.Node.
// Declarative shadow roots (<template shadowrootmode>) become attached
// subtrees of their host element.
func Parse(r io.Reader) (detect.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	if body := findBody(doc); body != nil {
		return &node{n: body}, nil
	}
	return &node{n: doc}, nil
}

// ParseFile parses the snapshot stored at path.
func ParseFile(path string) (detect.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("page: open snapshot: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// node wraps an html.Node. For a shadow root it wraps the template element,
// whose children are the encapsulated content.
type node struct {
	n *html.Node
}

func (p *node) Text() (string, bool) {
	if p.n.Type != html.TextNode {
		return "", false
	}
	return p.n.Data, true
}

func (p *node) Children() []detect.Node {
	var out []detect.Node
	for c := p.n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			out = append(out, &node{n: c})
		case html.ElementNode:
			if hidden(c) {
				continue
			}
			out = append(out, &node{n: c})
		}
	}
	return out
}

func (p *node) ShadowRoot() detect.Node {
	if p.n.Type != html.ElementNode {
		return nil
	}
	for c := p.n.FirstChild; c != nil; c = c.NextSibling {
		if isShadowTemplate(c) {
			return &node{n: c}
		}
	}
	return nil
}

// hidden reports elements whose text is never rendered. Shadow templates are
// reached through ShadowRoot instead.
func hidden(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Head, atom.Template:
		return true
	}
	return hasAttr(n, "hidden")
}

func isShadowTemplate(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Template {
		return false
	}
	return hasAttr(n, "shadowrootmode") || hasAttr(n, "shadowroot")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}
