package scribeai

import "testing"

func TestAttachAllSkipsSmallForms(t *testing.T) {
	t.Parallel()
	m := NewManager()
	gen := &stubGenerator{reply: "oi"}

	small := &stubForm{fields: []Field{{ID: "only", Label: "Só um", Kind: KindText}}}
	big := twoFieldForm()
	empty := &stubForm{}

	sessions := m.AttachAll([]HostForm{small, big, empty}, gen)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 auto-detected session, got %d", len(sessions))
	}
	if got := len(sessions[0].Fields()); got != 2 {
		t.Errorf("expected the two-field form, got %d fields", got)
	}
}

func TestManagerRegistry(t *testing.T) {
	t.Parallel()
	m := NewManager()
	gen := &stubGenerator{reply: "oi"}

	s := m.Create(twoFieldForm(), gen)
	got, ok := m.Get(s.ID())
	if !ok || got != s {
		t.Fatalf("expected to find session %s", s.ID())
	}
	if len(m.Sessions()) != 1 {
		t.Errorf("expected 1 registered session, got %d", len(m.Sessions()))
	}

	m.Remove(s.ID())
	if _, ok := m.Get(s.ID()); ok {
		t.Error("expected session to be removed")
	}
}
