// Package lookup runs debounced address searches against a caller-supplied
// provider. Network access stays with the provider; this package only
// schedules calls, cancels superseded ones and delivers results.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultDelay is the debounce applied when none is configured.
const DefaultDelay = 300 * time.Millisecond

// ErrClosed is reported when searching on a closed Searcher.
var ErrClosed = errors.New("lookup: searcher closed")

// Candidate is one address returned by a provider.
type Candidate struct {
	ID      string
	Name    string
	Address map[string]any
}

// Func queries a provider. It must honour ctx cancellation.
type Func func(ctx context.Context, query string) ([]Candidate, error)

// Result is delivered once per settled search.
type Result struct {
	Query      string
	Candidates []Candidate
	Err        error
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithDelay overrides the debounce delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(s *Searcher) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithLogger injects a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Searcher debounces queries. Only the latest query is executed and only its
// result is delivered; an in-flight call is cancelled when a newer query
// arrives. Results are delivered on a background goroutine. Once Search or
// Close returns, no result for an earlier query is delivered. The result
// callback must not call Search or Close.
type Searcher struct {
	fn       Func
	onResult func(Result)
	delay    time.Duration
	logger   *slog.Logger

	// deliverMu is held across the result callback; mu is taken after it.
	deliverMu sync.Mutex
	mu        sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewSearcher builds a searcher that reports to onResult.
func NewSearcher(fn Func, onResult func(Result), opts ...Option) *Searcher {
	s := &Searcher{
		fn:       fn,
		onResult: onResult,
		delay:    DefaultDelay,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Search schedules query after the debounce delay, replacing any pending or
// running search. An empty query settles with no candidates and no provider
// call. Search waits for a result callback that is running.
func (s *Searcher) Search(ctx context.Context, query string) error {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.stopLocked()
	s.seq++
	seq := s.seq
	query = strings.TrimSpace(query)

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		defer cancel()
		s.run(runCtx, seq, query)
	})
	return nil
}

// Close cancels pending work and waits for running searches to return.
func (s *Searcher) Close() {
	s.deliverMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.deliverMu.Unlock()
		return
	}
	s.closed = true
	s.stopLocked()
	s.mu.Unlock()
	s.deliverMu.Unlock()

	s.wg.Wait()
}

func (s *Searcher) stopLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) run(ctx context.Context, seq uint64, query string) {
	if query == "" {
		s.deliver(seq, Result{Query: query})
		return
	}
	if s.fn == nil {
		return
	}

	candidates, err := s.fn(ctx, query)
	if ctx.Err() != nil {
		s.logger.Debug("address lookup superseded", "query", query)
		return
	}
	if err != nil {
		s.logger.Warn("address lookup failed", "query", query, "error", err)
	}
	s.deliver(seq, Result{Query: query, Candidates: candidates, Err: err})
}

func (s *Searcher) deliver(seq uint64, res Result) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	s.mu.Lock()
	current := seq == s.seq && !s.closed
	s.mu.Unlock()
	if !current || s.onResult == nil {
		return
	}
	s.onResult(res)
}
