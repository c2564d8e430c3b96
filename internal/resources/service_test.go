package resources_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/schoolstock/internal/resources"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]resources.Resource
	err     error
	// block, when set, holds the named query until its channel is closed.
	block   map[string]chan struct{}
	started chan string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FindResources(ctx context.Context, query string) ([]resources.Resource, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	wait := f.block[query]
	f.mu.Unlock()
	if f.started != nil {
		f.started <- query
	}
	if wait != nil {
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

var library = resources.Resource{Title: "Main Library", Summary: "Books.", Category: "Facilities"}

func TestSearch_Success(t *testing.T) {
	p := &fakeProvider{results: map[string][]resources.Resource{"library": {library}}}
	svc := resources.NewService(p, zaptest.NewLogger(t))

	st, err := svc.Search(context.Background(), "  library ")
	require.NoError(t, err)
	assert.Equal(t, resources.State{
		Query:       "library",
		Results:     []resources.Resource{library},
		HasSearched: true,
	}, st)
	assert.Equal(t, st, svc.State())
}

func TestSearch_BlankIgnored(t *testing.T) {
	p := &fakeProvider{}
	svc := resources.NewService(p, zaptest.NewLogger(t))

	st, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, st.HasSearched)
	assert.Empty(t, p.calls)
}

func TestSearch_FailureClearsResults(t *testing.T) {
	p := &fakeProvider{results: map[string][]resources.Resource{"library": {library}}}
	svc := resources.NewService(p, zaptest.NewLogger(t))
	_, err := svc.Search(context.Background(), "library")
	require.NoError(t, err)

	cause := errors.New("503 unavailable")
	p.err = cause
	st, err := svc.Search(context.Background(), "library")

	var qe *resources.QueryError
	require.ErrorAs(t, err, &qe)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fake", qe.Provider)
	assert.Empty(t, st.Results)
	assert.False(t, st.Loading)
	assert.Equal(t, "Failed to fetch resources. The model may be unavailable or the query could not be processed.", st.Err)
}

func TestSearch_ClearsErrorOnNextSearch(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	svc := resources.NewService(p, zaptest.NewLogger(t))
	_, err := svc.Search(context.Background(), "library")
	require.Error(t, err)

	p.err = nil
	p.results = map[string][]resources.Resource{"library": {library}}
	st, err := svc.Search(context.Background(), "library")
	require.NoError(t, err)
	assert.Empty(t, st.Err)
	assert.Len(t, st.Results, 1)
}

func TestSearch_NoProvider(t *testing.T) {
	svc := resources.NewService(nil, zaptest.NewLogger(t))
	st, err := svc.Search(context.Background(), "library")
	assert.ErrorIs(t, err, resources.ErrNoProvider)
	assert.NotEmpty(t, st.Err)
}

func TestSearch_LoadingWhileInFlight(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)

	release := make(chan struct{})
	p := &fakeProvider{
		results: map[string][]resources.Resource{"slow": {library}},
		block:   map[string]chan struct{}{"slow": release},
		started: make(chan string, 1),
	}
	svc := resources.NewService(p, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background(), "slow")
		done <- err
	}()
	<-p.started
	st := svc.State()
	assert.True(t, st.Loading)
	assert.Empty(t, st.Results)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, svc.State().Loading)
}

func TestSearch_StaleResponseDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)

	release := make(chan struct{})
	pool := resources.Resource{Title: "Swimming Pool", Summary: "50m.", Category: "Sports"}
	p := &fakeProvider{
		results: map[string][]resources.Resource{"slow": {library}, "fast": {pool}},
		block:   map[string]chan struct{}{"slow": release},
		started: make(chan string, 2),
	}
	svc := resources.NewService(p, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background(), "slow")
		done <- err
	}()
	require.Equal(t, "slow", <-p.started)

	st, err := svc.Search(context.Background(), "fast")
	require.NoError(t, err)
	<-p.started
	assert.Equal(t, []resources.Resource{pool}, st.Results)

	close(release)
	assert.ErrorIs(t, <-done, resources.ErrSuperseded)

	final := svc.State()
	assert.Equal(t, "fast", final.Query)
	assert.Equal(t, []resources.Resource{pool}, final.Results)
}

func TestSearch_ContextCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)

	p := &fakeProvider{block: map[string]chan struct{}{"slow": make(chan struct{})}}
	svc := resources.NewService(p, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, "slow")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, svc.State().Loading)
}

func TestWithTimeout(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)

	p := &fakeProvider{block: map[string]chan struct{}{"slow": make(chan struct{})}}
	assert.Same(t, p, resources.WithTimeout(p, 0))
	assert.Nil(t, resources.WithTimeout(nil, time.Second))

	svc := resources.NewService(resources.WithTimeout(p, 20*time.Millisecond), zaptest.NewLogger(t))
	_, err := svc.Search(context.Background(), "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "fake", resources.WithTimeout(p, time.Second).Name())
}
