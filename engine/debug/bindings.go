package debug

import (
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
)

// Bindings maps key presses to debug events.
type Bindings struct {
	mu   sync.Mutex
	disp Dispatcher
	keys map[int]func() Event
}

// NewBindings creates an empty key map that emits into disp.
//
// Parameters:
//   - disp: the dispatcher events are emitted to
//
// Returns:
//   - *Bindings: the key map
func NewBindings(disp Dispatcher) *Bindings {
	return &Bindings{
		disp: disp,
		keys: make(map[int]func() Event),
	}
}

// Bind makes key emit the event returned by fn. The event is built at press time so it can
// depend on current state.
//
// Parameters:
//   - key: the key code
//   - fn: builds the event
func (b *Bindings) Bind(key int, fn func() Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if fn == nil {
		delete(b.keys, key)
		return
	}
	b.keys[key] = fn
}

// KeyDown emits the event bound to key.
//
// Parameters:
//   - key: the key code
//
// Returns:
//   - bool: true if key is bound
func (b *Bindings) KeyDown(key int) bool {
	b.mu.Lock()
	fn, ok := b.keys[key]
	b.mu.Unlock()
	if !ok {
		return false
	}
	if e := fn(); e != nil {
		b.disp.Emit(e)
	}
	return true
}

// DefaultBindings binds H to toggle the node named axes and D to flip damping on d.
//
// Parameters:
//   - disp: the dispatcher
//   - axes: name of the axes helper node
//   - d: the orbit controller, may be nil
//
// Returns:
//   - *Bindings: the key map
func DefaultBindings(disp Dispatcher, axes string, d Damper) *Bindings {
	b := NewBindings(disp)
	b.Bind(common.KeyH, func() Event { return ToggleVisibility{Target: axes} })
	if d != nil {
		b.Bind(common.KeyD, func() Event { return SetDamping{Enabled: !d.DampingEnabled()} })
	}
	return b
}
