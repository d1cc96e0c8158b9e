package debug_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/debug"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDamper struct{ enabled bool }

func (f *fakeDamper) DampingEnabled() bool           { return f.enabled }
func (f *fakeDamper) SetDampingEnabled(enabled bool) { f.enabled = enabled }

func newScene(t *testing.T) scene.Scene {
	t.Helper()
	s := scene.NewScene("test")
	require.NoError(t, s.Add(scene.NewNode(scene.WithName("axes"))))
	return s
}

func TestDispatchRoutesByKind(t *testing.T) {
	s := newScene(t)
	damper := &fakeDamper{enabled: true}
	disp := debug.NewDispatcher()
	debug.Register(disp, s, damper)

	Convey("Given a scene with an axes helper and a damped controller", t, func() {
		axes := s.Find("axes")
		So(axes, ShouldNotBeNil)

		Convey("ToggleVisibility flips the node", func() {
			So(disp.Dispatch(debug.ToggleVisibility{Target: "axes"}), ShouldBeNil)
			So(axes.Visible(), ShouldBeFalse)
			So(disp.Dispatch(debug.ToggleVisibility{Target: "axes"}), ShouldBeNil)
			So(axes.Visible(), ShouldBeTrue)
		})

		Convey("SetVisibility is idempotent", func() {
			So(disp.Dispatch(debug.SetVisibility{Target: "axes", Visible: false}), ShouldBeNil)
			So(disp.Dispatch(debug.SetVisibility{Target: "axes", Visible: false}), ShouldBeNil)
			So(axes.Visible(), ShouldBeFalse)
			So(disp.Dispatch(debug.SetVisibility{Target: "axes", Visible: true}), ShouldBeNil)
			So(axes.Visible(), ShouldBeTrue)
		})

		Convey("SetDamping reaches the controller", func() {
			So(disp.Dispatch(debug.SetDamping{Enabled: false}), ShouldBeNil)
			So(damper.enabled, ShouldBeFalse)
		})
	})
}

func TestDispatchErrors(t *testing.T) {
	disp := debug.NewDispatcher()
	assert.ErrorIs(t, disp.Dispatch(debug.SetDamping{}), debug.ErrUnhandled)
	assert.ErrorIs(t, disp.Dispatch(nil), debug.ErrUnhandled)

	debug.Register(disp, newScene(t), nil)
	assert.ErrorIs(t, disp.Dispatch(debug.ToggleVisibility{Target: "ghost"}), debug.ErrUnknownTarget)
	assert.ErrorIs(t, disp.Dispatch(debug.SetDamping{}), debug.ErrUnhandled)
}

func TestDispatchRunsAllHandlers(t *testing.T) {
	disp := debug.NewDispatcher()
	boom := errors.New("boom")
	calls := 0
	disp.Handle(debug.KindSetDamping, func(debug.Event) error { calls++; return boom })
	disp.Handle(debug.KindSetDamping, func(debug.Event) error { calls++; return nil })

	err := disp.Dispatch(debug.SetDamping{Enabled: true})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDefaultBindings(t *testing.T) {
	s := newScene(t)
	damper := &fakeDamper{enabled: true}
	disp := debug.NewDispatcher()
	debug.Register(disp, s, damper)
	b := debug.DefaultBindings(disp, "axes", damper)

	assert.True(t, b.KeyDown(common.KeyH))
	assert.False(t, s.Find("axes").Visible())

	assert.True(t, b.KeyDown(common.KeyD))
	assert.False(t, damper.enabled)
	assert.True(t, b.KeyDown(common.KeyD))
	assert.True(t, damper.enabled)

	assert.False(t, b.KeyDown(common.KeyP))

	b.Bind(common.KeyH, nil)
	assert.False(t, b.KeyDown(common.KeyH))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "toggle-visibility", debug.ToggleVisibility{}.Kind().String())
	assert.Equal(t, "set-visibility", debug.SetVisibility{}.Kind().String())
	assert.Equal(t, "set-damping", debug.SetDamping{}.Kind().String())
	assert.Equal(t, "unknown", debug.Kind(99).String())
}
