package dispatcher

import "errors"

var (
	// ErrUnknownToken is returned when an operation references a token
	// that is not currently registered.
	ErrUnknownToken = errors.New("token is not registered")

	// ErrAlreadyDispatching is returned when Dispatch is called while
	// another dispatch is active.
	ErrAlreadyDispatching = errors.New("dispatch already in progress")

	// ErrNotDispatching is returned when WaitFor is called outside an
	// active dispatch.
	ErrNotDispatching = errors.New("no dispatch in progress")

	// ErrCircularDependency is returned when a WaitFor chain resolves to
	// a token whose callback is still pending, meaning the chain waits on
	// itself.
	ErrCircularDependency = errors.New("circular dependency detected while waiting for token")
)
