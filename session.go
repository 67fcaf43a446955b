package scribeai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Canned user-facing strings, verbatim from the original assistant.
const (
	apologyMessage  = "Desculpe, ocorreu um erro ao processar sua resposta."
	inactiveMessage = "Nenhum campo preenchível foi encontrado neste formulário."
)

var (
	// ErrBusy is returned while a round trip is in flight. New submissions
	// are rejected until the pending one settles.
	ErrBusy = errors.New("scribeai: round trip already in flight")
	// ErrInactive is returned for sessions whose discovery found no fields.
	ErrInactive = errors.New("scribeai: session is inactive")
	// ErrComplete is returned once every field has been addressed.
	ErrComplete = errors.New("scribeai: conversation already complete")
	// ErrNotStarted is returned when Send is called before the opening round
	// trip succeeded.
	ErrNotStarted = errors.New("scribeai: conversation not started")
	// ErrEmptyMessage is returned for user input that trims to nothing.
	ErrEmptyMessage = errors.New("scribeai: empty user message")
)

// Session is one independent conversation bound to one host form. It drives
// the turn state machine: one round trip per turn, one field advanced per
// successfully completed turn. All exported methods are safe for concurrent
// use; internally at most one round trip is ever in flight.
type Session struct {
	id        string
	form      HostForm
	generator Generator

	mu         sync.Mutex
	fields     []Field
	index      int
	responses  map[string]string
	transcript []Message
	status     Status
	busy       bool
	submitted  bool
}

// NewSession discovers the form's fields and creates the session. When
// discovery yields no eligible fields the session is created in the terminal
// inactive state with a single informative transcript entry.
func NewSession(form HostForm, gen Generator) *Session {
	s := &Session{
		id:        uuid.NewString(),
		form:      form,
		generator: gen,
		fields:    form.Fields(),
		responses: make(map[string]string),
		status:    StatusIdle,
	}
	if len(s.fields) == 0 {
		s.status = StatusInactive
		s.transcript = append(s.transcript, Message{Sender: SenderAssistant, Text: inactiveMessage})
		slog.Warn("no fillable fields found in form", "session", s.id)
	}
	return s
}

// Start issues the opening round trip: the initial briefing with no context
// and no user message. On success the assistant's opening question is
// appended and the session accepts user input. On failure the apology is
// appended and the session returns to idle so Start may be called again.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.status == StatusInactive:
		s.mu.Unlock()
		return ErrInactive
	case s.busy:
		s.mu.Unlock()
		return ErrBusy
	case s.status != StatusIdle:
		s.mu.Unlock()
		return fmt.Errorf("scribeai: conversation already started (status %s)", s.status)
	}
	s.busy = true
	s.status = StatusAwaitingModel
	req := &Request{Prompt: InitialPrompt(s.fields)}
	s.mu.Unlock()

	text, err := s.generator.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		slog.Error("opening round trip failed", "session", s.id, "err", err)
		s.transcript = append(s.transcript, Message{Sender: SenderAssistant, Text: apologyMessage})
		s.status = StatusIdle
		return fmt.Errorf("round trip failed: %w", err)
	}
	s.transcript = append(s.transcript, Message{Sender: SenderAssistant, Text: text})
	s.status = StatusAwaitingUser
	return nil
}

// Send runs one user turn. The trimmed text is appended to the transcript and
// a round trip carrying the follow-up prompt, the current progress context and
// the text is issued. On success the assistant's reply is appended, the
// current field's answer is recorded and written back, and the cursor
// advances; advancement is unconditional on the reply's content. When the
// last field is advanced past, the session completes and submission is
// triggered exactly once. On failure the apology is appended and the cursor
// stays put, leaving the turn open for a retry.
func (s *Session) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	switch {
	case s.status == StatusInactive:
		s.mu.Unlock()
		return ErrInactive
	case s.status == StatusComplete:
		s.mu.Unlock()
		return ErrComplete
	case s.busy:
		s.mu.Unlock()
		return ErrBusy
	case s.status != StatusAwaitingUser:
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.transcript = append(s.transcript, Message{Sender: SenderUser, Text: text})
	s.busy = true
	s.status = StatusAwaitingModel
	req := &Request{
		Prompt: FollowUpPrompt(s.fields),
		Context: &TurnContext{
			FormFields:        s.fields,
			CurrentFieldIndex: s.index,
			TotalFields:       len(s.fields),
		},
		UserMessage: text,
	}
	s.mu.Unlock()

	reply, err := s.generator.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		slog.Error("round trip failed", "session", s.id, "field_index", s.index, "err", err)
		s.transcript = append(s.transcript, Message{Sender: SenderAssistant, Text: apologyMessage})
		s.status = StatusAwaitingUser
		return fmt.Errorf("round trip failed: %w", err)
	}
	s.transcript = append(s.transcript, Message{Sender: SenderAssistant, Text: reply})

	field := s.fields[s.index]
	s.responses[field.ID] = text
	if wErr := s.form.WriteValue(field.ID, text); wErr != nil {
		// Write-back problems don't stall the conversation; the answer is
		// still recorded and the cursor still advances.
		slog.Warn("write-back failed", "session", s.id, "field", field.ID, "err", wErr)
	}

	s.index++
	if s.index < len(s.fields) {
		s.status = StatusAwaitingUser
		return nil
	}

	s.status = StatusComplete
	submitted, sErr := s.form.Submit()
	if sErr != nil {
		slog.Warn("submission failed", "session", s.id, "err", sErr)
		return nil
	}
	s.submitted = submitted
	slog.Info("form complete", "session", s.id, "fields", len(s.fields), "submitted", submitted)
	return nil
}

// ID returns the generated session identifier.
func (s *Session) ID() string { return s.id }

// Status returns the controller state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Busy reports whether a round trip is in flight. Presentation layers may use
// this to show a typing placeholder without touching the transcript.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Complete reports whether every field has been addressed.
func (s *Session) Complete() bool {
	return s.Status() == StatusComplete
}

// Submitted reports whether native submission ran (false when a submit
// listener canceled it or the session is not complete).
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Fields returns a copy of the discovered fields in document order.
func (s *Session) Fields() []Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// CurrentIndex returns the field cursor, in [0, len(fields)].
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Responses returns a copy of the recorded answers keyed by field id.
func (s *Session) Responses() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.responses))
	for k, v := range s.responses {
		out[k] = v
	}
	return out
}

// Transcript returns a copy of the message log in order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}
