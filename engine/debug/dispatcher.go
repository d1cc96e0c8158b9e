package debug

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrUnhandled is returned by Dispatch when no handler is registered for the event's kind.
	ErrUnhandled = errors.New("debug: no handler for event")

	// ErrUnknownTarget is returned by handlers when an event names a node that does not exist.
	ErrUnknownTarget = errors.New("debug: unknown target")
)

// Handler applies one event.
type Handler func(e Event) error

// dispatcherImpl is the implementation of the Dispatcher interface.
type dispatcherImpl struct {
	mu       *sync.RWMutex
	logger   *slog.Logger
	handlers map[Kind][]Handler
}

// Dispatcher routes debug events to handlers by kind.
type Dispatcher interface {
	// Handle registers h for events of kind k. Handlers run in registration order.
	//
	// Parameters:
	//   - k: the event kind
	//   - h: the handler
	Handle(k Kind, h Handler)

	// Dispatch delivers e to every handler registered for its kind. All handlers run even if
	// one fails; the errors are joined.
	//
	// Parameters:
	//   - e: the event
	//
	// Returns:
	//   - error: ErrUnhandled if nothing handles the kind, otherwise the joined handler errors
	Dispatch(e Event) error

	// Emit dispatches e and logs a failure instead of returning it. Input callbacks use Emit.
	//
	// Parameters:
	//   - e: the event
	Emit(e Event)
}

var _ Dispatcher = &dispatcherImpl{}

// NewDispatcher creates an empty Dispatcher.
//
// Parameters:
//   - options: a variadic list of DispatcherBuilderOption functions
//
// Returns:
//   - Dispatcher: the new dispatcher
func NewDispatcher(options ...DispatcherBuilderOption) Dispatcher {
	d := &dispatcherImpl{
		mu:       &sync.RWMutex{},
		logger:   slog.Default(),
		handlers: make(map[Kind][]Handler),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *dispatcherImpl) Handle(k Kind, h Handler) {
	if h == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[k] = append(d.handlers[k], h)
}

func (d *dispatcherImpl) Dispatch(e Event) error {
	if e == nil {
		return fmt.Errorf("%w: nil event", ErrUnhandled)
	}
	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[e.Kind()]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return fmt.Errorf("%w: %s", ErrUnhandled, e.Kind())
	}
	var errs []error
	for _, h := range handlers {
		if err := h(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *dispatcherImpl) Emit(e Event) {
	if err := d.Dispatch(e); err != nil {
		d.logger.Warn("debug event failed", "event", fmt.Sprintf("%+v", e), "error", err)
		return
	}
	d.logger.Debug("debug event", "kind", e.Kind().String(), "event", fmt.Sprintf("%+v", e))
}
