package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
)

// Callback receives every dispatched payload. The context carries the
// dispatch metadata (see DispatchID, DispatchTime) and is shared by all
// callbacks invoked during one dispatch. A returned error aborts the
// dispatch and propagates unchanged to the Dispatch caller.
type Callback func(ctx context.Context, payload any) error

// CallbackFunc is a type-safe callback signature for payloads of type T.
type CallbackFunc[T any] func(ctx context.Context, payload T) error

// NewCallbackFunc adapts a typed function into a Callback with automatic
// payload conversion. Payloads that are not type T (directly, wrapped in
// an Action, or as raw JSON bytes) are rejected with an error.
//
// Example:
//
//	tok := d.Register(dispatcher.NewCallbackFunc(
//	    func(ctx context.Context, p OrderPlaced) error {
//	        return store.apply(p)
//	    },
//	))
func NewCallbackFunc[T any](fn CallbackFunc[T]) Callback {
	return func(ctx context.Context, payload any) error {
		typed, err := coercePayload[T](payload)
		if err != nil {
			return err
		}
		return fn(ctx, typed)
	}
}

// coercePayload attempts to convert payload to type T. Handles pre-typed
// payloads, Action envelopes carrying a T, and []byte holding JSON.
func coercePayload[T any](payload any) (T, error) {
	var zero T

	// Already the correct type
	if v, ok := payload.(T); ok {
		return v, nil
	}

	// Action envelope carrying the correct type
	if act, ok := payload.(Action); ok {
		if v, ok := act.Payload.(T); ok {
			return v, nil
		}
	}

	// Raw JSON bytes
	if data, ok := payload.([]byte); ok {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return zero, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		return v, nil
	}

	return zero, fmt.Errorf("unexpected payload type: %T", payload)
}
