package calc

import (
	"sync"
)

// ChangeFunc is called after every handled button with the state before and
// after it. It runs with the session lock held and must not call back into
// the session.
type ChangeFunc func(from, to State, b Button)

// Session serializes button presses from concurrent callers onto a single
// Engine.
type Session struct {
	mu        sync.Mutex
	engine    *Engine
	observers []ChangeFunc
}

func NewSession(opts ...Option) *Session {
	return &Session{
		engine: New(opts...),
	}
}

// Configure applies options to the running engine without resetting it.
func (s *Session) Configure(opts ...Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range opts {
		o(s.engine)
	}
}

// OnChange registers an observer for state transitions.
func (s *Session) OnChange(f ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, f)
}

// Press applies buttons in order as one atomic batch and returns the final
// state.
func (s *Session) Press(buttons ...Button) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.State()
	for _, b := range buttons {
		from := state
		state = s.engine.Handle(b)
		for _, f := range s.observers {
			f(from, state, b)
		}
	}
	return state
}

// Reset is a Clear press.
func (s *Session) Reset() State {
	return s.Press(Clear)
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Phase returns the engine's current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Phase()
}
