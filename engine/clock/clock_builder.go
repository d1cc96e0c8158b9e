package clock

import "time"

// ClockBuilderOption is a functional option for configuring a Clock.
type ClockBuilderOption func(*clockImpl)

// WithSource replaces the monotonic time source. Intended for tests and replays.
//
// Parameters:
//   - source: the time source
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithSource(source Source) ClockBuilderOption {
	return func(c *clockImpl) {
		if source != nil {
			c.source = source
		}
	}
}

// WithMaxDelta sets the per-frame delta clamp. Zero or negative disables clamping.
//
// Parameters:
//   - d: the maximum delta reported for one frame
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithMaxDelta(d time.Duration) ClockBuilderOption {
	return func(c *clockImpl) {
		c.maxDelta = d
	}
}

// WithTimescale sets the initial delta multiplier.
//
// Parameters:
//   - scale: the multiplier (negative treated as 0)
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithTimescale(scale float64) ClockBuilderOption {
	return func(c *clockImpl) {
		c.timescale = max(scale, 0)
	}
}
