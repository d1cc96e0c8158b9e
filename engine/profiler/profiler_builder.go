package profiler

import (
	"log/slog"
	"time"
)

// ProfilerBuilderOption is a functional option applied to the profiler during construction via
// NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the logger reports go to.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logger option to a profiler
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often statistics are reported. Non-positive values are ignored.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval option to a profiler
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithNow replaces the wall clock.
//
// Parameters:
//   - now: the time source
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the clock option to a profiler
func WithNow(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithMemStats enables or disables reading runtime memory statistics. Enabled by default.
//
// Parameters:
//   - enabled: whether to read memory statistics
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the option to a profiler
func WithMemStats(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.readMemStats = enabled
	}
}
