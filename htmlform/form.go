package htmlform

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pablobispo/scribeai"
)

// Event is a synthesized notification dispatched against the form. Only
// submit events honor cancelation.
type Event struct {
	Kind     scribeai.EventKind
	FieldID  string
	Value    string
	canceled bool
}

// Cancel vetoes the event. Meaningful for submit events, where it prevents
// native submission.
func (e *Event) Cancel() { e.canceled = true }

func (e *Event) Canceled() bool { return e.canceled }

// Listener observes synthesized notifications.
type Listener func(*Event)

// Form adapts one form element to scribeai.HostForm. Discovery runs once at
// construction; the field list is stable afterwards even if the tree changes.
type Form struct {
	doc       *Document
	node      *html.Node
	fields    []scribeai.Field
	elems     map[string]*html.Node
	listeners map[scribeai.EventKind][]Listener
	submitFn  func(*Form) error
}

var _ scribeai.HostForm = (*Form)(nil)

func newForm(doc *Document, node *html.Node, opts DiscoverOptions) *Form {
	fields, elems := discover(doc, node, opts)
	return &Form{
		doc:       doc,
		node:      node,
		fields:    fields,
		elems:     elems,
		listeners: make(map[scribeai.EventKind][]Listener),
	}
}

// ID returns the form element's id attribute, if any.
func (f *Form) ID() string { return attr(f.node, "id") }

func (f *Form) Fields() []scribeai.Field {
	out := make([]scribeai.Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Listen registers a listener for the given notification kind.
func (f *Form) Listen(kind scribeai.EventKind, fn Listener) {
	f.listeners[kind] = append(f.listeners[kind], fn)
}

// SetSubmitFunc installs the native submission routine invoked when a submit
// notification is not canceled. Without one, Submit still reports success
// once the notification passes.
func (f *Form) SetSubmitFunc(fn func(*Form) error) { f.submitFn = fn }

func (f *Form) dispatch(e *Event) bool {
	for _, fn := range f.listeners[e.Kind] {
		fn(e)
	}
	return !e.canceled
}

// WriteValue sets the element's value in the tree, then dispatches change and
// input notifications. Both fire even when nothing listens.
func (f *Form) WriteValue(id, value string) error {
	elem, ok := f.elems[id]
	if !ok {
		return fmt.Errorf("unknown field %q", id)
	}

	switch elem.DataAtom {
	case atom.Textarea:
		for elem.FirstChild != nil {
			elem.RemoveChild(elem.FirstChild)
		}
		elem.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case atom.Select:
		selectOption(elem, value)
	default:
		setAttr(elem, "value", value)
	}

	f.dispatch(&Event{Kind: scribeai.EventChange, FieldID: id, Value: value})
	f.dispatch(&Event{Kind: scribeai.EventInput, FieldID: id, Value: value})
	return nil
}

// selectOption marks the option matching the value (by value attribute, then
// by text) and clears any other selection. With no match, the value lands on
// the select element itself so the answer is not lost.
func selectOption(sel *html.Node, value string) {
	var match *html.Node
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Option {
			continue
		}
		if attr(c, "value") == value || textContent(c) == value {
			match = c
			break
		}
	}
	if match == nil {
		setAttr(sel, "value", value)
		return
	}
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Option {
			removeAttr(c, "selected")
		}
	}
	setAttr(match, "selected", "")
}

// Submit dispatches a cancelable submit notification, then runs the native
// submission routine iff no listener canceled. This is what lets the host's
// own validation or interception logic veto the engine.
func (f *Form) Submit() (bool, error) {
	if !f.dispatch(&Event{Kind: scribeai.EventSubmit}) {
		return false, nil
	}
	if f.submitFn != nil {
		if err := f.submitFn(f); err != nil {
			return false, fmt.Errorf("native submission failed: %w", err)
		}
	}
	return true, nil
}

// Value reads a field's current value back out of the tree.
func (f *Form) Value(id string) (string, error) {
	elem, ok := f.elems[id]
	if !ok {
		return "", fmt.Errorf("unknown field %q", id)
	}
	return fieldValue(elem), nil
}
