package engine

import (
	"errors"
	"fmt"
	"sync"
)

// Session is a stack of process-wide side effects. Every acquisition
// pushes its release; Close runs them in reverse order exactly once.
type Session struct {
	mu       sync.Mutex
	releases []release
	closed   bool
}

type release struct {
	name string
	fn   func() error
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Acquire runs acquire and, on success, registers the release it returns.
// Acquiring on a closed session fails without calling acquire.
func (s *Session) Acquire(name string, acquire func() (func() error, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("engine: acquire %s: %w", name, ErrClosed)
	}
	s.mu.Unlock()

	rel, err := acquire()
	if err != nil {
		return fmt.Errorf("engine: acquire %s: %w", name, err)
	}
	s.Defer(name, rel)
	return nil
}

// Defer registers a release. On a closed session fn runs immediately.
func (s *Session) Defer(name string, fn func() error) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = fn()
		return
	}
	s.releases = append(s.releases, release{name: name, fn: fn})
	s.mu.Unlock()
}

// Len returns the number of pending releases.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.releases)
}

// Close releases everything, last acquired first. Every release runs even
// when earlier ones fail; failures are joined. Later calls return nil.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	rels := s.releases
	s.releases = nil
	s.mu.Unlock()

	var errs []error
	for i := len(rels) - 1; i >= 0; i-- {
		if err := rels[i].run(); err != nil {
			errs = append(errs, fmt.Errorf("engine: release %s: %w", rels[i].name, err))
		}
	}
	return errors.Join(errs...)
}

func (r release) run() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.fn()
}
