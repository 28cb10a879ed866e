// Package dispatcher provides a synchronous callback broadcaster with
// explicit inter-callback ordering control. Independent subscribers
// register interest in dispatched payloads, and a subscriber can declare
// "run these before me" dependencies on other subscribers while a
// dispatch is in flight. Dependency chains are resolved eagerly and
// depth-first, circular wait chains are detected and reported, and a
// dispatch can never be re-entered while in progress.
//
// # Core Components
//
// Dispatcher owns the callback registry and the per-dispatch bookkeeping.
// Register returns an opaque Token; Dispatch delivers one payload to every
// registered callback in registration order; WaitFor, called from inside a
// callback, guarantees the named tokens' callbacks have completed before it
// returns.
//
// Callback is the untyped subscriber signature. NewCallbackFunc adapts a
// typed function with automatic payload conversion.
//
// Action is an optional named envelope (UUID, type-derived name, timestamp)
// for hosts that want flux-style named actions; the dispatcher itself
// delivers any payload value unchanged.
//
// Decorator wraps callbacks with cross-cutting concerns such as logging
// and panic recovery.
//
// # Basic Usage
//
//	import (
//		"context"
//		"log/slog"
//		"os"
//
//		"github.com/GunnarSturla/dispatcher"
//	)
//
//	type PriceChanged struct {
//		Symbol string
//		Price  float64
//	}
//
//	func main() {
//		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//		d := dispatcher.New(dispatcher.WithLogger(logger))
//
//		// A store that needs another store's state first.
//		var ledgerTok dispatcher.Token
//		d.Register(func(ctx context.Context, payload any) error {
//			if err := d.WaitFor(ledgerTok); err != nil {
//				return err
//			}
//			// ledger is guaranteed up to date here
//			return nil
//		})
//
//		ledgerTok = d.Register(dispatcher.NewCallbackFunc(
//			func(ctx context.Context, p PriceChanged) error {
//				return nil
//			},
//		))
//
//		if err := d.Dispatch(context.Background(), PriceChanged{Symbol: "ACME", Price: 42}); err != nil {
//			logger.Error("dispatch failed", "error", err)
//		}
//	}
//
// # Ordering Semantics
//
// Dispatch snapshots the registration order at entry and invokes each
// callback exactly once. A callback pulled forward by WaitFor is marked
// and skipped when the main iteration reaches it. WaitFor on a token whose
// callback is mid-invocation means the wait chain loops back on itself and
// fails with ErrCircularDependency; waiting on an already-completed token
// is a no-op.
//
// # Error Semantics
//
// All failures are immediate and synchronous: ErrAlreadyDispatching on
// reentrant Dispatch, ErrNotDispatching on WaitFor outside a dispatch,
// ErrUnknownToken on references to unregistered tokens, and
// ErrCircularDependency on cyclic waits. A callback error aborts the
// dispatch and propagates unchanged. The active-dispatch flag and payload
// are always cleared on the way out, so a failed dispatch never blocks the
// next one; per-token bookkeeping is fully re-initialized by the next
// Dispatch call.
//
// # Concurrency Model
//
// Delivery is fully synchronous in the caller's goroutine: no worker
// pools, no channels, no suspension points. Registry mutation and the
// dispatch entry/exit flag are mutex-guarded so a multi-goroutine host
// keeps the one-active-dispatch invariant; the ordering WaitFor provides
// is logical ordering among synchronous callbacks within one dispatch,
// not parallel execution.
package dispatcher
