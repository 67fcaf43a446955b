package scribeai

import "sync"

// minAutoDetectFields is the auto-detection threshold: forms with fewer
// eligible fields are not worth a guided conversation and are skipped.
const minAutoDetectFields = 2

// Manager is a registry of independent sessions keyed by their generated
// identifiers. Sessions never share state; the registry itself is the only
// thing the mutex guards.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create builds a session for the form and registers it.
func (m *Manager) Create(form HostForm, gen Generator) *Session {
	s := NewSession(form, gen)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

// AttachAll creates one session per host form, applying the auto-detection
// rule: forms with fewer than two eligible fields are ignored.
func (m *Manager) AttachAll(forms []HostForm, gen Generator) []*Session {
	var out []*Session
	for _, form := range forms {
		if len(form.Fields()) < minAutoDetectFields {
			continue
		}
		out = append(out, m.Create(form, gen))
	}
	return out
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sessions returns the registered sessions in no particular order.
func (m *Manager) Sessions() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}
