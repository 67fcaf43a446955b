// Package htmlform adapts forms inside a parsed HTML document to the
// scribeai engine: it discovers fillable fields, resolves their labels,
// writes elicited values back into the node tree and synthesizes the
// change/input/submit notifications the engine requires.
package htmlform

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps a parsed HTML tree. The tree is owned by the document and
// mutated in place by write-backs.
type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the current tree, including any written-back values.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Forms wraps every form element of the document, in document order, running
// field discovery on each.
func (d *Document) Forms(opts DiscoverOptions) []*Form {
	var forms []*Form
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Form {
			forms = append(forms, newForm(d, n, opts))
		}
	})
	return forms
}

// DetectForms applies the auto-detection rule: only forms with at least two
// eligible fields qualify.
func (d *Document) DetectForms(opts DiscoverOptions) []*Form {
	var out []*Form
	for _, f := range d.Forms(opts) {
		if len(f.fields) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// FormByID wraps the form element with the given id attribute.
func (d *Document) FormByID(id string, opts DiscoverOptions) (*Form, error) {
	var node *html.Node
	walk(d.root, func(n *html.Node) {
		if node == nil && n.Type == html.ElementNode && n.DataAtom == atom.Form && attr(n, "id") == id {
			node = n
		}
	})
	if node == nil {
		return nil, fmt.Errorf("form not found with id %q", id)
	}
	return newForm(d, node, opts), nil
}

// walk visits every node depth-first in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// textContent concatenates the text nodes under n, the parsed-tree analog of
// a live element's innerText.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
