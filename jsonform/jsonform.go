// Package jsonform adapts a JSON document to the scribeai engine for
// embedders that have no HTML at all: the form is described by field
// descriptors and every write-back is applied to the document as an RFC 6902
// operation.
package jsonform

import (
	"fmt"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/pablobispo/scribeai"
)

// FieldDef binds one conversational field to a JSON pointer in the document.
type FieldDef struct {
	Field   scribeai.Field
	Pointer string
}

// Event mirrors the host-form notification contract; only submit honors
// cancelation.
type Event struct {
	Kind     scribeai.EventKind
	FieldID  string
	Value    string
	canceled bool
}

func (e *Event) Cancel()        { e.canceled = true }
func (e *Event) Canceled() bool { return e.canceled }

type Listener func(*Event)

// Form holds the document and applies write-backs as patches.
type Form struct {
	fields    []scribeai.Field
	pointers  map[string]string
	doc       []byte
	listeners map[scribeai.EventKind][]Listener
	submitFn  func(doc []byte) error
}

var _ scribeai.HostForm = (*Form)(nil)

// New builds a form over the initial document (an empty JSON object when
// nil). Every field needs a pointer; descriptor order is field order.
func New(defs []FieldDef, initial []byte) (*Form, error) {
	f := &Form{
		pointers:  make(map[string]string, len(defs)),
		doc:       initial,
		listeners: make(map[scribeai.EventKind][]Listener),
	}
	if f.doc == nil {
		f.doc = []byte("{}")
	}
	for _, def := range defs {
		if def.Pointer == "" {
			return nil, fmt.Errorf("field %q has no JSON pointer", def.Field.ID)
		}
		f.fields = append(f.fields, def.Field)
		f.pointers[def.Field.ID] = def.Pointer
	}
	return f, nil
}

func (f *Form) Fields() []scribeai.Field {
	out := make([]scribeai.Field, len(f.fields))
	copy(out, f.fields)
	return out
}

func (f *Form) Listen(kind scribeai.EventKind, fn Listener) {
	f.listeners[kind] = append(f.listeners[kind], fn)
}

// SetSubmitFunc installs the routine that receives the final document when an
// uncanceled submit notification fires.
func (f *Form) SetSubmitFunc(fn func(doc []byte) error) { f.submitFn = fn }

func (f *Form) dispatch(e *Event) bool {
	for _, fn := range f.listeners[e.Kind] {
		fn(e)
	}
	return !e.canceled
}

type operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

// WriteValue applies one add operation at the field's pointer. RFC 6902 add
// replaces an existing object member, so it covers both first writes and
// corrections.
func (f *Form) WriteValue(id, value string) error {
	pointer, ok := f.pointers[id]
	if !ok {
		return fmt.Errorf("unknown field %q", id)
	}

	patchJSON, err := sonic.Marshal([]operation{{Op: "add", Path: pointer, Value: value}})
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return fmt.Errorf("failed to decode patch: %w", err)
	}
	modified, err := patch.Apply(f.doc)
	if err != nil {
		return fmt.Errorf("failed to apply patch: %w", err)
	}
	f.doc = modified

	f.dispatch(&Event{Kind: scribeai.EventChange, FieldID: id, Value: value})
	f.dispatch(&Event{Kind: scribeai.EventInput, FieldID: id, Value: value})
	return nil
}

func (f *Form) Submit() (bool, error) {
	if !f.dispatch(&Event{Kind: scribeai.EventSubmit}) {
		return false, nil
	}
	if f.submitFn != nil {
		if err := f.submitFn(f.Document()); err != nil {
			return false, fmt.Errorf("native submission failed: %w", err)
		}
	}
	return true, nil
}

// Document returns a copy of the current JSON document.
func (f *Form) Document() []byte {
	out := make([]byte, len(f.doc))
	copy(out, f.doc)
	return out
}
