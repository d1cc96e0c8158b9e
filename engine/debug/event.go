// Package debug implements the developer panel as typed events. Controls emit events, and a
// Dispatcher routes each event to the handlers registered for its kind.
package debug

// Kind identifies an event type.
type Kind int

const (
	KindToggleVisibility Kind = iota
	KindSetVisibility
	KindSetDamping
)

func (k Kind) String() string {
	switch k {
	case KindToggleVisibility:
		return "toggle-visibility"
	case KindSetVisibility:
		return "set-visibility"
	case KindSetDamping:
		return "set-damping"
	}
	return "unknown"
}

// Event is a debug panel action.
type Event interface {
	Kind() Kind
}

// ToggleVisibility flips the visibility of the scene node named Target.
type ToggleVisibility struct {
	Target string
}

// SetVisibility shows or hides the scene node named Target.
type SetVisibility struct {
	Target  string
	Visible bool
}

// SetDamping enables or disables orbit damping.
type SetDamping struct {
	Enabled bool
}

func (ToggleVisibility) Kind() Kind { return KindToggleVisibility }
func (SetVisibility) Kind() Kind    { return KindSetVisibility }
func (SetDamping) Kind() Kind       { return KindSetDamping }
