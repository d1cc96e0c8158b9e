package profiler_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/haunted-house/engine/profiler"
	"github.com/stretchr/testify/assert"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var out bytes.Buffer
	p := profiler.NewProfiler(
		profiler.WithLogger(slog.New(slog.NewTextHandler(&out, nil))),
		profiler.WithNow(func() time.Time { return now }),
		profiler.WithInterval(time.Second),
		profiler.WithMemStats(false),
	)

	for i := 0; i < 59; i++ {
		now = now.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	now = time.Unix(1, 0)
	assert.True(t, p.Tick())
	assert.InDelta(t, 60, p.Last().FPS, 0.01)
	assert.Contains(t, out.String(), "fps=")

	now = now.Add(time.Second / 2)
	assert.False(t, p.Tick())
}

func TestTickReadsMemStats(t *testing.T) {
	now := time.Unix(0, 0)
	p := profiler.NewProfiler(
		profiler.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		profiler.WithNow(func() time.Time { return now }),
	)
	now = now.Add(2 * time.Second)
	assert.True(t, p.Tick())
	assert.InDelta(t, 0.5, p.Last().FPS, 1e-9)
	assert.Greater(t, p.Last().SysMB, 0.0)
}
