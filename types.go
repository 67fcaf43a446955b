package scribeai

// FieldKind mirrors the interactive element type of the host form field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindTel      FieldKind = "tel"
	KindURL      FieldKind = "url"
	KindDate     FieldKind = "date"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
)

// ExcludedKinds lists the element types that are never offered to the
// conversation, regardless of their enabled state.
var ExcludedKinds = map[string]bool{
	"submit": true,
	"button": true,
	"reset":  true,
	"hidden": true,
	"image":  true,
	"file":   true,
}

// Field describes one fillable element of the host form. Fields are created
// at discovery time, ordered by document position, and never change for the
// lifetime of a session.
type Field struct {
	ID    string    `json:"id"`
	Name  string    `json:"name,omitempty"`
	Label string    `json:"label"`
	Kind  FieldKind `json:"type"`
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one transcript entry. The transcript is append-only; entries are
// never mutated or removed.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Status is the conversation controller state.
type Status string

const (
	// StatusIdle means the session exists but the opening round trip has not
	// succeeded yet. Start may be called (or retried) in this state.
	StatusIdle Status = "idle"
	// StatusAwaitingModel means a round trip is in flight.
	StatusAwaitingModel Status = "awaiting_model"
	// StatusAwaitingUser means the assistant has asked about the current field
	// and the session accepts user input.
	StatusAwaitingUser Status = "awaiting_user"
	// StatusComplete means every field has been addressed and submission was
	// triggered. Terminal.
	StatusComplete Status = "complete"
	// StatusInactive means discovery found no eligible fields. Terminal.
	StatusInactive Status = "inactive"
)
