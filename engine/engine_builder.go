package engine

import "log/slog"

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithLogger sets the logger for loop lifecycle, frame failures and recovered panics.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithKeyHandler adds a key handler that runs before the orbit controls see the key. A
// handler returning true consumes the key.
//
// Parameters:
//   - handler: the key handler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeyHandler(handler func(key int) bool) EngineBuilderOption {
	return func(e *engine) {
		if handler != nil {
			e.keyHandlers = append(e.keyHandlers, handler)
		}
	}
}
