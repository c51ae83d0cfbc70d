package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"otpctl/pkg/graphql"
	"otpctl/pkg/otp"

	"github.com/bluele/gcache"
	"github.com/charmbracelet/log"
)

// ErrSuperseded is returned by Trigger when a newer search started while the
// request was in flight. Its response is discarded.
var ErrSuperseded = errors.New("superseded by a newer search")

// TripFetcher is satisfied by *otp.API.
type TripFetcher interface {
	Trip(ctx context.Context, vars otp.TripQueryVariables) (*otp.TripQueryResult, error)
}

// Observer is notified about cache hits and discarded responses.
type Observer interface {
	ObserveCacheHit()
	ObserveStaleResponse()
}

// State is a snapshot of the trip query store.
type State struct {
	Variables *otp.TripQueryVariables
	// Result is the most recently completed search; it stays visible while a new one loads.
	Result     *otp.TripQueryResult
	Loading    bool
	Err        error
	Generation uint64
}

// TripQuery owns the current search variables and the latest result.
type TripQuery struct {
	fetcher  TripFetcher
	logger   *log.Logger
	observer Observer
	cache    gcache.Cache

	mu          sync.Mutex
	vars        *otp.TripQueryVariables
	result      *otp.TripQueryResult
	loading     bool
	err         error
	generation  uint64
	cancel      context.CancelFunc
	subscribers map[chan State]struct{}
}

// TripOption configures a TripQuery.
type TripOption func(*TripQuery)

// WithLogger sets the logger used for warnings.
func WithLogger(l *log.Logger) TripOption {
	return func(q *TripQuery) { q.logger = l }
}

// WithObserver registers a metrics hook.
func WithObserver(o Observer) TripOption {
	return func(q *TripQuery) { q.observer = o }
}

// WithCache keeps up to size results for ttl, keyed by search variables.
// Only searches with a fixed DateTime are cached. A size of zero disables the
// cache.
func WithCache(size int, ttl time.Duration) TripOption {
	return func(q *TripQuery) {
		if size <= 0 {
			q.cache = nil
			return
		}
		q.cache = gcache.New(size).LRU().Expiration(ttl).Build()
	}
}

func NewTripQuery(fetcher TripFetcher, opts ...TripOption) *TripQuery {
	q := &TripQuery{
		fetcher:     fetcher,
		logger:      log.Default(),
		subscribers: make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// SetVariables replaces the search variables. It does not trigger a search.
func (q *TripQuery) SetVariables(vars otp.TripQueryVariables) {
	v := vars
	v.Modes = append([]string(nil), vars.Modes...)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.vars = &v
	q.notifyLocked()
}

// ClearVariables forgets the current search.
func (q *TripQuery) ClearVariables() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.vars = nil
	q.notifyLocked()
}

// Variables returns a copy of the current search variables, or nil.
func (q *TripQuery) Variables() *otp.TripQueryVariables {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.copyVarsLocked()
}

// Snapshot returns the current state.
func (q *TripQuery) Snapshot() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Subscribe returns a channel that receives the latest state after every
// change. Slow readers only see the newest state. Call the returned func to
// stop receiving.
func (q *TripQuery) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	q.mu.Lock()
	q.subscribers[ch] = struct{}{}
	q.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.subscribers, ch)
			q.mu.Unlock()
			close(ch)
		})
	}
}

// Trigger runs a search with the current variables and blocks until it
// completes. The previous result stays visible while loading. Starting a new
// search cancels the one in flight; a response that still arrives for it is
// discarded and its Trigger returns ErrSuperseded.
func (q *TripQuery) Trigger(ctx context.Context) error {
	q.mu.Lock()
	if q.vars == nil {
		err := graphql.NewValidationError("no search variables set")
		q.err = err
		q.notifyLocked()
		q.mu.Unlock()
		q.logger.Warn("trip search triggered without variables")
		return err
	}
	vars := *q.copyVarsLocked()

	if q.cancel != nil {
		q.cancel()
	}
	q.generation++
	gen := q.generation
	reqCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel

	// searches without a fixed time mean "now" and always go to the server
	cacheable := q.cache != nil && vars.DateTime != nil
	if cacheable {
		if v, err := q.cache.Get(vars.Key()); err == nil {
			if cached, ok := v.(*otp.TripQueryResult); ok {
				q.result = cached
				q.err = nil
				q.loading = false
				q.cancel = nil
				cancel()
				q.notifyLocked()
				q.mu.Unlock()
				if q.observer != nil {
					q.observer.ObserveCacheHit()
				}
				return nil
			}
		}
	}

	q.loading = true
	q.notifyLocked()
	q.mu.Unlock()

	result, err := q.fetcher.Trip(reqCtx, vars)
	cancel()

	q.mu.Lock()
	defer q.mu.Unlock()

	if gen != q.generation {
		q.logger.Debug("discarding response of superseded trip search", "generation", gen, "latest", q.generation)
		if q.observer != nil {
			q.observer.ObserveStaleResponse()
		}
		return ErrSuperseded
	}

	q.loading = false
	q.cancel = nil
	if err != nil {
		q.err = typed(err)
		q.notifyLocked()
		return q.err
	}

	q.result = result
	q.err = nil
	if cacheable {
		_ = q.cache.Set(vars.Key(), result)
	}
	q.notifyLocked()
	return nil
}

// typed makes sure every failure stored in the state is a *graphql.Error.
func typed(err error) error {
	var gqlErr *graphql.Error
	if errors.As(err, &gqlErr) {
		return err
	}
	return &graphql.Error{Kind: graphql.KindNetwork, Message: err.Error(), Err: err}
}

func (q *TripQuery) copyVarsLocked() *otp.TripQueryVariables {
	if q.vars == nil {
		return nil
	}
	v := *q.vars
	v.Modes = append([]string(nil), q.vars.Modes...)
	return &v
}

func (q *TripQuery) snapshotLocked() State {
	return State{
		Variables:  q.copyVarsLocked(),
		Result:     q.result,
		Loading:    q.loading,
		Err:        q.err,
		Generation: q.generation,
	}
}

func (q *TripQuery) notifyLocked() {
	if len(q.subscribers) == 0 {
		return
	}
	s := q.snapshotLocked()
	for ch := range q.subscribers {
		// keep only the newest state in the buffer
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}
