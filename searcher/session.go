package searcher

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Session runs searches for interactive input. Keystrokes are debounced, a new query cancels the
// previous run, and results are delivered asynchronously on Results.
type Session struct {
	searcher *Searcher
	debounce time.Duration
	logger   *zap.Logger
	latest   *atomic.String
	results  chan Results

	ctx  context.Context
	stop context.CancelFunc

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	// generation counts Input calls. A fired timer only runs if no input came after it.
	generation uint64
}

// NewSession creates a Session issuing queries once input has been idle for debounce
func NewSession(searcher *Searcher, debounce time.Duration, logger *zap.Logger) *Session {
	ctx, stop := context.WithCancel(context.Background())
	return &Session{
		searcher: searcher,
		debounce: debounce,
		logger:   logger,
		latest:   atomic.NewString(""),
		results:  make(chan Results, 1),
		ctx:      ctx,
		stop:     stop,
	}
}

// Results delivers finished searches. It is never closed, use Done to stop reading.
func (s *Session) Results() <-chan Results {
	return s.results
}

// Done is closed once the session is closed
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Latest returns the most recently issued query
func (s *Session) Latest() string {
	return s.latest.Load()
}

// Accept reports whether r answers the latest issued query. Older results must be discarded.
func (s *Session) Accept(r Results) bool {
	return r.Query == s.latest.Load()
}

// Input records the current query text
func (s *Session) Input(query string) {
	query = strings.TrimSpace(query)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputLocked(query)
}

// inputLocked schedules query. Requires s.mu.
func (s *Session) inputLocked(query string) {
	if s.closed {
		return
	}
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if query == "" {
		s.issueLocked("")
		go s.publish(Results{Query: "", Packages: []Result{}})
		return
	}
	generation := s.generation
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(query, generation)
	})
}

// issueLocked cancels the in-flight run and marks query as the latest. Requires s.mu.
func (s *Session) issueLocked(query string) context.Context {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.latest.Store(query)
	return ctx
}

func (s *Session) run(query string, generation uint64) {
	s.mu.Lock()
	if s.closed || generation != s.generation || query == s.latest.Load() {
		s.mu.Unlock()
		return
	}
	ctx := s.issueLocked(query)
	s.mu.Unlock()

	results := s.searcher.Search(ctx, query)
	if ctx.Err() != nil {
		s.logger.Debug("Search cancelled", zap.String("query", query))
		return
	}
	s.publish(results)
}

func (s *Session) publish(results Results) {
	select {
	case s.results <- results:
	case <-s.ctx.Done():
	}
}

// Close stops pending timers and cancels the in-flight search
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.stop()
	return nil
}
