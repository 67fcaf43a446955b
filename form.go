package scribeai

// EventKind identifies a notification synthesized against the host form.
type EventKind string

const (
	EventChange EventKind = "change"
	EventInput  EventKind = "input"
	EventSubmit EventKind = "submit"
)

// HostForm adapts one externally owned form to the engine. Implementations
// must dispatch change and input notifications on every write even when the
// host registered no listeners, and must let a submit listener veto native
// submission.
type HostForm interface {
	// Fields returns the eligible fields in document order. The result is
	// computed once at discovery time and stable afterwards.
	Fields() []Field

	// WriteValue sets the value of the field identified by id and dispatches
	// change and input notifications.
	WriteValue(id, value string) error

	// Submit dispatches a cancelable submit notification and performs the
	// host's native submission iff no listener canceled it. It reports
	// whether native submission ran.
	Submit() (bool, error)
}
