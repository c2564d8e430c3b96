package resources

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrSuperseded is returned by Search when a newer search started before
// this one finished. Its results were discarded.
var ErrSuperseded = errors.New("resources: search superseded by a newer query")

// State is what the front end displays for the resource finder.
type State struct {
	Query       string
	Results     []Resource
	Err         string
	Loading     bool
	HasSearched bool
}

// Service runs resource queries and tracks the displayed State. It is safe
// for concurrent use; only the latest search may update the results.
type Service struct {
	provider Provider
	logger   *zap.Logger

	mu    sync.Mutex
	gen   uint64
	state State
}

// NewService returns a Service using p. A nil p makes every search fail
// with a QueryError wrapping ErrNoProvider.
func NewService(p Provider, logger *zap.Logger) *Service {
	return &Service{provider: p, logger: logger}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool { return s.provider != nil }

// State returns a snapshot of the displayed state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Search runs query against the provider.
//
// A blank query is ignored and leaves the state untouched. Otherwise the
// previous results and error are cleared before the provider is called.
//
// Postcondition: On failure the results stay empty, State().Err holds the
// single user-facing message and the returned error is a *QueryError. If a
// newer search started meanwhile, ErrSuperseded is returned and the state
// is left to the newer search.
func (s *Service) Search(ctx context.Context, query string) (State, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.State(), nil
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = State{Query: query, Loading: true, HasSearched: true}
	s.mu.Unlock()

	results, err := s.find(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.logger.Debug("discarding superseded resource search", zap.String("query", query), zap.Uint64("generation", gen))
		return s.snapshot(), ErrSuperseded
	}
	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		s.logger.Warn("resource search failed", zap.String("query", query), zap.Error(errors.Unwrap(err)))
		return s.snapshot(), err
	}
	s.state.Results = results
	s.logger.Info("resource search finished", zap.String("query", query), zap.Int("results", len(results)))
	return s.snapshot(), nil
}

func (s *Service) find(ctx context.Context, query string) ([]Resource, error) {
	if s.provider == nil {
		return nil, &QueryError{Err: ErrNoProvider}
	}
	results, err := s.provider.FindResources(ctx, query)
	if err != nil {
		var qe *QueryError
		if errors.As(err, &qe) {
			return nil, qe
		}
		return nil, &QueryError{Provider: s.provider.Name(), Err: err}
	}
	return results, nil
}

func (s *Service) snapshot() State {
	st := s.state
	st.Results = append([]Resource(nil), s.state.Results...)
	return st
}
