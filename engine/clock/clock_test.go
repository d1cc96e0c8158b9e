package clock_test

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/haunted-house/engine/clock"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
)

// fakeSource is a manually advanced time source.
type fakeSource struct {
	now time.Duration
}

func (f *fakeSource) read() time.Duration { return f.now }

func TestClockAdvance(t *testing.T) {
	src := &fakeSource{}
	c := clock.NewClock(clock.WithSource(src.read))

	c.Advance()
	assert.Zero(t, c.Delta(), "first advance has no previous sample")
	assert.Zero(t, c.Elapsed())

	src.now += 16 * time.Millisecond
	c.Advance()
	assert.Equal(t, 16*time.Millisecond, c.Delta())
	assert.Equal(t, 16*time.Millisecond, c.Elapsed())

	src.now += 17 * time.Millisecond
	c.Advance()
	assert.Equal(t, 17*time.Millisecond, c.Delta())
	assert.Equal(t, 33*time.Millisecond, c.Elapsed())
	assert.Equal(t, uint64(3), c.Frames())
}

func TestClockDeltaNeverNegative(t *testing.T) {
	Convey("Given a clock over a source that can stall, jump and run backwards", t, func() {
		src := &fakeSource{}
		c := clock.NewClock(clock.WithSource(src.read), clock.WithMaxDelta(100*time.Millisecond))
		c.Advance()

		steps := []time.Duration{
			16 * time.Millisecond,
			0,
			-5 * time.Millisecond,
			10 * time.Minute, // simulated suspend
			16 * time.Millisecond,
		}

		Convey("every delta is within [0, MaxDelta] and elapsed never decreases", func() {
			prev := c.Elapsed()
			for _, step := range steps {
				src.now += step
				c.Advance()
				So(c.Delta(), ShouldBeGreaterThanOrEqualTo, time.Duration(0))
				So(c.Delta(), ShouldBeLessThanOrEqualTo, 100*time.Millisecond)
				So(c.Elapsed(), ShouldBeGreaterThanOrEqualTo, prev)
				prev = c.Elapsed()
			}
		})

		Convey("a long pause is clamped to MaxDelta", func() {
			src.now += time.Hour
			c.Advance()
			So(c.Delta(), ShouldEqual, 100*time.Millisecond)
		})
	})
}

func TestClockResume(t *testing.T) {
	src := &fakeSource{}
	c := clock.NewClock(clock.WithSource(src.read), clock.WithMaxDelta(0))
	c.Advance()
	src.now += 10 * time.Millisecond
	c.Advance()

	c.Resume()
	src.now += 5 * time.Second
	c.Advance()
	assert.Zero(t, c.Delta(), "hidden interval is discarded")
	assert.Equal(t, 10*time.Millisecond, c.Elapsed())

	src.now += 20 * time.Millisecond
	c.Advance()
	assert.Equal(t, 20*time.Millisecond, c.Delta())
}

func TestClockTimescale(t *testing.T) {
	src := &fakeSource{}
	c := clock.NewClock(clock.WithSource(src.read), clock.WithTimescale(2))
	c.Advance()
	src.now += 10 * time.Millisecond
	c.Advance()
	assert.Equal(t, 20*time.Millisecond, c.Delta())

	c.SetTimescale(-1)
	src.now += 10 * time.Millisecond
	c.Advance()
	assert.Zero(t, c.Delta())
}

func TestDefaultSourceIsMonotonic(t *testing.T) {
	c := clock.NewClock()
	c.Advance()
	time.Sleep(2 * time.Millisecond)
	c.Advance()
	assert.Greater(t, c.Delta(), time.Duration(0))
}
