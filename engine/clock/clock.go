package clock

import "time"

// DefaultMaxDelta bounds the delta reported for a single frame. A stalled or suspended
// process resumes with at most this much simulated time.
const DefaultMaxDelta = 100 * time.Millisecond

// Source returns a monotonically increasing reading. Readings are compared only to each
// other, never to wall-clock time.
type Source func() time.Duration

// clockImpl is the implementation of the Clock interface.
type clockImpl struct {
	source    Source
	maxDelta  time.Duration
	timescale float64

	started bool
	last    time.Duration
	elapsed time.Duration
	delta   time.Duration
	frames  uint64
}

// Clock tracks elapsed and per-frame delta time across render loop iterations.
// Advance must be called exactly once per rendered frame, before anything reads time.
type Clock interface {
	// Advance samples the source and updates elapsed and delta.
	// The first call after construction or Resume reports a zero delta.
	Advance()

	// Resume discards the interval since the last Advance, so the next Advance reports a
	// zero delta. Used when rendering restarts after the surface was hidden.
	Resume()

	// Elapsed returns the accumulated, clamped and scaled time across all advances.
	//
	// Returns:
	//   - time.Duration: total elapsed time
	Elapsed() time.Duration

	// Delta returns the time attributed to the most recent Advance.
	//
	// Returns:
	//   - time.Duration: never negative, never more than MaxDelta * Timescale
	Delta() time.Duration

	// Frames returns how many times Advance has been called.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// SetTimescale scales subsequent deltas. Negative values are treated as 0.
	//
	// Parameters:
	//   - scale: the multiplier applied to raw deltas
	SetTimescale(scale float64)
}

var _ Clock = &clockImpl{}

// NewClock creates a Clock backed by Go's monotonic clock unless another source is
// supplied with WithSource.
//
// Parameters:
//   - options: functional options to configure the clock
//
// Returns:
//   - Clock: the new clock
func NewClock(options ...ClockBuilderOption) Clock {
	start := time.Now()
	c := &clockImpl{
		source:    func() time.Duration { return time.Since(start) },
		maxDelta:  DefaultMaxDelta,
		timescale: 1,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *clockImpl) Advance() {
	now := c.source()
	c.frames++

	if !c.started {
		c.started = true
		c.last = now
		c.delta = 0
		return
	}

	raw := now - c.last
	c.last = now
	if raw < 0 {
		raw = 0
	}
	if c.maxDelta > 0 && raw > c.maxDelta {
		raw = c.maxDelta
	}

	c.delta = time.Duration(float64(raw) * c.timescale)
	c.elapsed += c.delta
}

func (c *clockImpl) Resume() {
	c.started = false
}

func (c *clockImpl) Elapsed() time.Duration {
	return c.elapsed
}

func (c *clockImpl) Delta() time.Duration {
	return c.delta
}

func (c *clockImpl) Frames() uint64 {
	return c.frames
}

func (c *clockImpl) SetTimescale(scale float64) {
	c.timescale = max(scale, 0)
}
