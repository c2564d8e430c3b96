package console

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Service runs a Session as a lifecycle service reading from in.
type Service struct {
	session *Session
	in      io.Reader

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewService wraps session for use with a lifecycle.
func NewService(session *Session, in io.Reader) *Service {
	return &Service{session: session, in: in}
}

// Start runs the session until the user quits or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	err := s.session.Run(ctx, s.in)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop interrupts a running session.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}
