package debug

import "log/slog"

// DispatcherBuilderOption is a functional option applied to the dispatcher during construction
// via NewDispatcher.
type DispatcherBuilderOption func(*dispatcherImpl)

// WithLogger sets the logger Emit reports to.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - DispatcherBuilderOption: a function that applies the logger option to a dispatcher
func WithLogger(logger *slog.Logger) DispatcherBuilderOption {
	return func(d *dispatcherImpl) {
		if logger != nil {
			d.logger = logger
		}
	}
}
