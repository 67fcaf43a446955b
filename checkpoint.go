package scribeai

import (
	"fmt"

	"github.com/bytedance/sonic"
)

const checkpointVersion = "1.0"

// Checkpoint is a serializable snapshot of a session, letting a conversation
// survive widget teardown and resume against a compatible host form.
type Checkpoint struct {
	Version    string            `json:"version"`
	Fields     []Field           `json:"fields"`
	Index      int               `json:"current_index"`
	Responses  map[string]string `json:"responses"`
	Transcript []Message         `json:"transcript"`
	Status     Status            `json:"status"`
	Submitted  bool              `json:"submitted"`
}

// CreateCheckpoint serializes the session state. It fails while a round trip
// is in flight, since the pending turn has no meaningful snapshot.
func (s *Session) CreateCheckpoint() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return nil, ErrBusy
	}
	cp := Checkpoint{
		Version:    checkpointVersion,
		Fields:     s.fields,
		Index:      s.index,
		Responses:  s.responses,
		Transcript: s.transcript,
		Status:     s.status,
		Submitted:  s.submitted,
	}
	data, err := sonic.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	return data, nil
}

// RestoreCheckpoint loads a snapshot into the session. The checkpoint must
// come from a session over a form with the same field list; the current
// host form is kept for future write-backs.
func (s *Session) RestoreCheckpoint(data []byte) error {
	var cp Checkpoint
	if err := sonic.Unmarshal(data, &cp); err != nil {
		return fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	if cp.Version != checkpointVersion {
		return fmt.Errorf("incompatible checkpoint version: %s (expected %s)", cp.Version, checkpointVersion)
	}
	if cp.Index < 0 || cp.Index > len(cp.Fields) {
		return fmt.Errorf("checkpoint index %d out of range for %d fields", cp.Index, len(cp.Fields))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	if len(cp.Fields) != len(s.fields) {
		return fmt.Errorf("checkpoint has %d fields, form has %d", len(cp.Fields), len(s.fields))
	}
	s.fields = cp.Fields
	s.index = cp.Index
	s.responses = cp.Responses
	if s.responses == nil {
		s.responses = make(map[string]string)
	}
	s.transcript = cp.Transcript
	s.status = cp.Status
	s.submitted = cp.Submitted
	return nil
}
