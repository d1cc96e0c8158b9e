package debug

import (
	"fmt"

	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// Damper is the part of the orbit controller the damping handler drives.
type Damper interface {
	DampingEnabled() bool
	SetDampingEnabled(enabled bool)
}

// VisibilityHandler applies ToggleVisibility and SetVisibility events to nodes of s found by
// name.
//
// Parameters:
//   - s: the scene to look nodes up in
//
// Returns:
//   - Handler: the handler, to be registered for both visibility kinds
func VisibilityHandler(s scene.Scene) Handler {
	return func(e Event) error {
		switch ev := e.(type) {
		case ToggleVisibility:
			n := s.Find(ev.Target)
			if n == nil {
				return fmt.Errorf("%w: %q", ErrUnknownTarget, ev.Target)
			}
			n.SetVisible(!n.Visible())
		case SetVisibility:
			n := s.Find(ev.Target)
			if n == nil {
				return fmt.Errorf("%w: %q", ErrUnknownTarget, ev.Target)
			}
			n.SetVisible(ev.Visible)
		}
		return nil
	}
}

// DampingHandler applies SetDamping events to the controller.
//
// Parameters:
//   - d: the controller
//
// Returns:
//   - Handler: the handler
func DampingHandler(d Damper) Handler {
	return func(e Event) error {
		if ev, ok := e.(SetDamping); ok {
			d.SetDampingEnabled(ev.Enabled)
		}
		return nil
	}
}

// Register wires the visibility handlers for s and the damping handler for d into disp.
//
// Parameters:
//   - disp: the dispatcher
//   - s: the scene
//   - d: the orbit controller, may be nil
func Register(disp Dispatcher, s scene.Scene, d Damper) {
	vh := VisibilityHandler(s)
	disp.Handle(KindToggleVisibility, vh)
	disp.Handle(KindSetVisibility, vh)
	if d != nil {
		disp.Handle(KindSetDamping, DampingHandler(d))
	}
}
