package htmlform

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pablobispo/scribeai"
)

// fallbackLabel is the generic token used when no label source matches.
const fallbackLabel = "Campo"

// DiscoverOptions controls field eligibility for elements without a usable
// identifier.
type DiscoverOptions struct {
	// RequireID skips elements that carry neither an id nor a name attribute
	// (strict mode). When false a unique id is generated and written onto the
	// element so write-backs can find it.
	RequireID bool
}

// discover scans the form subtree in document order and derives the field
// list. Disabled, read-only and excluded-kind elements never qualify.
func discover(doc *Document, formNode *html.Node, opts DiscoverOptions) ([]scribeai.Field, map[string]*html.Node) {
	var fields []scribeai.Field
	elems := make(map[string]*html.Node)

	walk(formNode, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		var kind string
		switch n.DataAtom {
		case atom.Input:
			kind = strings.ToLower(attr(n, "type"))
			if kind == "" {
				kind = "text"
			}
		case atom.Textarea:
			kind = "textarea"
		case atom.Select:
			kind = "select"
		default:
			return
		}
		if hasAttr(n, "disabled") || hasAttr(n, "readonly") || scribeai.ExcludedKinds[kind] {
			return
		}

		name := attr(n, "name")
		id := attr(n, "id")
		if id == "" {
			id = name
		}
		if id == "" {
			if opts.RequireID {
				return
			}
			id = fmt.Sprintf("field_%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
			setAttr(n, "id", id)
		}

		fields = append(fields, scribeai.Field{
			ID:    id,
			Name:  name,
			Label: resolveLabel(doc, n, name, id),
			Kind:  scribeai.FieldKind(kind),
		})
		elems[id] = n
	})

	return fields, elems
}

// resolveLabel walks the priority chain, first match wins: an associated
// label element, the placeholder, the accessibility label, the text of an
// ancestor label with the field's own value subtracted out, then the name,
// the id, and finally a generic token.
func resolveLabel(doc *Document, field *html.Node, name, id string) string {
	if domID := attr(field, "id"); domID != "" {
		if lbl := findLabelFor(doc.root, domID); lbl != nil {
			if text := strings.TrimSpace(textContent(lbl)); text != "" {
				return text
			}
		}
	}
	if p := attr(field, "placeholder"); p != "" {
		return p
	}
	if a := attr(field, "aria-label"); a != "" {
		return a
	}
	for p := field.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Label {
			text := textContent(p)
			if value := fieldValue(field); value != "" {
				text = strings.Replace(text, value, "", 1)
			}
			if text = strings.TrimSpace(text); text != "" {
				return text
			}
		}
	}
	if name != "" {
		return name
	}
	if id != "" {
		return id
	}
	return fallbackLabel
}

func findLabelFor(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && n.DataAtom == atom.Label && attr(n, "for") == id {
			found = n
		}
	})
	return found
}

// fieldValue reads the element's current value the way the label chain needs
// it: the value attribute for inputs, the text for textareas, the selected
// option's text for selects.
func fieldValue(field *html.Node) string {
	switch field.DataAtom {
	case atom.Input:
		return attr(field, "value")
	case atom.Textarea:
		return strings.TrimSpace(textContent(field))
	case atom.Select:
		for c := field.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Option && hasAttr(c, "selected") {
				return strings.TrimSpace(textContent(c))
			}
		}
	}
	return ""
}
