package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Profile is the signed-in user's display name and plan as shown on the page.
type Profile struct {
	Name string
	Plan string
}

// Empty reports whether nothing was found.
func (p Profile) Empty() bool {
	return p.Name == "" && p.Plan == ""
}

// ReadProfile finds the account menu in an HTML snapshot. The menu renders
// the name and the plan in consecutive truncated labels; the plan label is
// the last one mentioning " plan".
func ReadProfile(r io.Reader) (Profile, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Profile{}, fmt.Errorf("page: parse: %w", err)
	}

	var labels []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.Contains(attr(n, "class"), "truncate") {
			labels = append(labels, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(labels) < 2 {
		return Profile{}, nil
	}
	for i := len(labels) - 1; i >= 0; i-- {
		text := strings.TrimSpace(textContent(labels[i]))
		if !strings.Contains(strings.ToLower(text), " plan") {
			continue
		}
		p := Profile{Plan: text}
		if i > 0 {
			p.Name = strings.TrimSpace(textContent(labels[i-1]))
		}
		return p, nil
	}
	return Profile{}, nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
