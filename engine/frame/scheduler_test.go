package frame_test

import (
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/frame"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
)

func TestFlushRunsQueuedInOrder(t *testing.T) {
	s := frame.NewScheduler()
	var got []int
	s.Request(func() { got = append(got, 1) })
	s.Request(func() { got = append(got, 2) })

	assert.Equal(t, 2, s.Flush())
	assert.Equal(t, []int{1, 2}, got)
	assert.Zero(t, s.Flush())
}

func TestCancel(t *testing.T) {
	s := frame.NewScheduler()
	ran := false
	id := s.Request(func() { ran = true })
	assert.NotZero(t, id)

	s.Cancel(id)
	s.Cancel(id)
	s.Cancel(12345)
	assert.Zero(t, s.Flush())
	assert.False(t, ran)
}

func TestSelfReschedulingRunsOncePerFlush(t *testing.T) {
	s := frame.NewScheduler()
	count := 0
	var tick func()
	tick = func() {
		count++
		s.Request(tick)
	}
	s.Request(tick)

	for range 5 {
		assert.Equal(t, 1, s.Flush())
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, 1, s.Pending())
}

func TestHiddenSuspendsCallbacks(t *testing.T) {
	Convey("Given a self-rescheduling callback", t, func() {
		s := frame.NewScheduler()
		count := 0
		var tick func()
		tick = func() {
			count++
			s.Request(tick)
		}
		s.Request(tick)
		s.Flush()
		So(count, ShouldEqual, 1)

		Convey("no callbacks fire while hidden", func() {
			s.SetVisible(false)
			for range 10 {
				So(s.Flush(), ShouldEqual, 0)
			}
			So(count, ShouldEqual, 1)
			So(s.Pending(), ShouldEqual, 1)

			Convey("exactly one fires on the first refresh after becoming visible", func() {
				s.SetVisible(true)
				So(s.Flush(), ShouldEqual, 1)
				So(count, ShouldEqual, 2)
			})
		})
	})
}
