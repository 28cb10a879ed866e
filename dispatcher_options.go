package dispatcher

import "log/slog"

// WithLogger sets the logger for the dispatcher.
// If not set, logging is discarded.
//
// Example:
//
//	d := dispatcher.New(dispatcher.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTokenPrefix sets the prefix used when minting registration tokens.
// Useful when tokens surface in logs from several dispatcher instances.
//
// Example:
//
//	d := dispatcher.New(dispatcher.WithTokenPrefix("store_"))
func WithTokenPrefix(prefix string) Option {
	return func(d *Dispatcher) {
		if prefix != "" {
			d.prefix = prefix
		}
	}
}
