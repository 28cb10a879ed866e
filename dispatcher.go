package dispatcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// tokenState tracks a callback's progress within the active dispatch.
// A single enum replaces separate pending/handled maps so the two can
// never disagree.
type tokenState uint8

const (
	stateNotStarted tokenState = iota
	statePending               // invocation started, not yet finished
	stateHandled               // invocation finished successfully
)

// Dispatcher broadcasts payloads to registered callbacks synchronously,
// in registration order, with explicit inter-callback ordering via WaitFor.
//
// At most one dispatch is active at a time. Registry mutations and the
// dispatch entry/exit are mutex-guarded so the invariant holds even when
// the host calls Dispatch from multiple goroutines; the per-dispatch
// bookkeeping is only ever touched by the dispatching goroutine.
//
// Example:
//
//	d := dispatcher.New(dispatcher.WithLogger(logger))
//	tok := d.Register(func(ctx context.Context, payload any) error {
//	    fmt.Println("received:", payload)
//	    return nil
//	})
//	err := d.Dispatch(ctx, "hello")
type Dispatcher struct {
	mu        sync.Mutex
	callbacks map[Token]Callback
	order     []Token
	lastID    uint64
	prefix    string
	logger    *slog.Logger

	// Active dispatch state. Valid only while dispatching is true;
	// states/payload/ctx are owned by the dispatching goroutine.
	dispatching bool
	states      map[Token]tokenState
	payload     any
	ctx         context.Context
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// New creates a dispatcher with the given options.
//
// Example:
//
//	d := dispatcher.New(
//	    dispatcher.WithLogger(logger),
//	    dispatcher.WithTokenPrefix("store_"),
//	)
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		callbacks: make(map[Token]Callback),
		prefix:    defaultTokenPrefix,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Register stores the callback under a freshly minted token and returns
// the token. Tokens are unique for the dispatcher's lifetime and are
// never reused. Default invocation order is registration order.
func (d *Dispatcher) Register(cb Callback) Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastID++
	tok := newToken(d.prefix, d.lastID)
	d.callbacks[tok] = cb
	d.order = append(d.order, tok)

	return tok
}

// Unregister removes the callback registered under tok.
// Returns ErrUnknownToken if tok is not currently registered.
//
// Calling Unregister for another token mid-dispatch is tolerated: the
// removed callback is simply never revisited by the active dispatch.
func (d *Dispatcher) Unregister(tok Token) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.callbacks[tok]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownToken, tok)
	}

	delete(d.callbacks, tok)
	if i := slices.Index(d.order, tok); i >= 0 {
		d.order = slices.Delete(d.order, i, i+1)
	}

	return nil
}

// Dispatch broadcasts payload to every callback registered at the time of
// the call, in registration order, skipping callbacks already pulled
// forward by a WaitFor during the same pass. Each callback runs exactly
// once per dispatch.
//
// Returns ErrAlreadyDispatching if a dispatch is already active; reentrant
// calls are rejected before any state is touched. A callback error aborts
// the dispatch and propagates unchanged. The active flag and payload are
// always cleared before Dispatch returns, even on failure; per-token
// bookkeeping is left stale after a failed dispatch and fully
// re-initialized by the next call.
func (d *Dispatcher) Dispatch(ctx context.Context, payload any) error {
	d.mu.Lock()
	if d.dispatching {
		d.mu.Unlock()
		return ErrAlreadyDispatching
	}

	order := slices.Clone(d.order)
	d.states = make(map[Token]tokenState, len(order))
	for _, tok := range order {
		d.states[tok] = stateNotStarted
	}

	ctx = withDispatchMeta(ctx)
	d.ctx = ctx
	d.payload = payload
	d.dispatching = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.payload = nil
		d.ctx = nil
		d.dispatching = false
		d.mu.Unlock()
	}()

	d.logger.DebugContext(ctx, "dispatch started",
		slog.String("dispatch_id", DispatchID(ctx)),
		slog.Int("callback_count", len(order)))

	for _, tok := range order {
		if d.states[tok] != stateNotStarted {
			continue
		}

		d.mu.Lock()
		cb, ok := d.callbacks[tok]
		d.mu.Unlock()
		if !ok {
			// Unregistered mid-dispatch; not revisited.
			continue
		}

		if err := d.invoke(ctx, tok, cb); err != nil {
			return err
		}
	}

	d.logger.DebugContext(ctx, "dispatch completed",
		slog.String("dispatch_id", DispatchID(ctx)))

	return nil
}

// WaitFor runs the callbacks registered under toks, in the given order,
// before returning. Callable only from a callback while a dispatch is
// active; returns ErrNotDispatching otherwise.
//
// Already-handled tokens are skipped. A token whose invocation is pending
// means the wait chain loops back on itself: WaitFor fails with
// ErrCircularDependency naming that token. Unknown tokens fail with
// ErrUnknownToken. Otherwise the token's callback is invoked eagerly,
// depth-first, with the active dispatch's context and payload.
func (d *Dispatcher) WaitFor(toks ...Token) error {
	d.mu.Lock()
	if !d.dispatching {
		d.mu.Unlock()
		return ErrNotDispatching
	}
	ctx := d.ctx
	d.mu.Unlock()

	for _, tok := range toks {
		switch d.states[tok] {
		case stateHandled:
			continue
		case statePending:
			return fmt.Errorf("%w: %s", ErrCircularDependency, tok)
		}

		d.mu.Lock()
		cb, ok := d.callbacks[tok]
		d.mu.Unlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownToken, tok)
		}

		if err := d.invoke(ctx, tok, cb); err != nil {
			return err
		}
	}

	return nil
}

// IsDispatching reports whether a dispatch is currently active.
func (d *Dispatcher) IsDispatching() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dispatching
}

// Reset clears the registry and all bookkeeping back to the initial
// state, regardless of current activity. Intended for test isolation.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callbacks = make(map[Token]Callback)
	d.order = nil
	// Fresh map, not nil: a dispatch interrupted by Reset may still mark
	// the in-flight token on the way out.
	d.states = make(map[Token]tokenState)
	d.payload = nil
	d.ctx = nil
	d.dispatching = false
}

// invoke runs one callback with the active payload. The token stays
// pending if the callback fails, which is what lets a later WaitFor on it
// during the same failed chain surface a circular dependency instead of
// silently re-running a partially failed callback.
func (d *Dispatcher) invoke(ctx context.Context, tok Token, cb Callback) error {
	d.states[tok] = statePending

	start := time.Now()
	if err := cb(ctx, d.payload); err != nil {
		d.logger.ErrorContext(ctx, "callback failed",
			slog.String("dispatch_id", DispatchID(ctx)),
			slog.String("token", string(tok)),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return err
	}

	d.states[tok] = stateHandled

	d.logger.DebugContext(ctx, "callback completed",
		slog.String("dispatch_id", DispatchID(ctx)),
		slog.String("token", string(tok)),
		slog.Duration("duration", time.Since(start)))

	return nil
}
