package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one reporting interval's measurements.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler counts rendered frames and reports frame rate and memory statistics through the
// logger once per interval.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	readMemStats   bool
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a Profiler. The interval defaults to 1 second.
//
// Parameters:
//   - options: a variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the new profiler
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
		readMemStats:   true,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick records one frame and logs statistics when the interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	s := Stats{FPS: float64(p.frameCount) / elapsed.Seconds()}
	if p.readMemStats {
		runtime.ReadMemStats(&p.memStats)
		s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
		s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		// PauseNs is a ring of the last 256 pauses.
		s.NumGC = p.memStats.NumGC
		if s.NumGC > 0 {
			s.LastPauseUs = p.memStats.PauseNs[(s.NumGC-1)%256] / 1000
			start := p.lastGCCount
			if s.NumGC-start > 256 {
				start = s.NumGC - 256
			}
			for i := start; i < s.NumGC; i++ {
				if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
					s.MaxPauseUs = pause
				}
			}
		}
		p.lastGCCount = s.NumGC
		p.lastTotalAlloc = p.memStats.TotalAlloc
	}

	p.logger.Info("profiler",
		"fps", s.FPS,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb_s", s.AllocRateMB,
		"gc", s.NumGC,
		"gc_last_pause_us", s.LastPauseUs,
		"gc_max_pause_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.last = s
	return true
}

// Last returns the most recently reported statistics.
//
// Returns:
//   - Stats: the last report, zero before the first
func (p *Profiler) Last() Stats {
	return p.last
}
