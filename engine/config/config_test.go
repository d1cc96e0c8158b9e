package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/haunted-house/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := `
window:
  width: 800
  height: 600
clock:
  max_delta: 250ms
debug: true
textures:
  door: textures/door.png
props:
  - path: models/grave.glb
    position: [4, 0, 1]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Haunted House", cfg.Window.Title)
	assert.Equal(t, 250*time.Millisecond, cfg.Clock.MaxDelta)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Controls.Damping)
	assert.InDelta(t, 0.05, cfg.Controls.DampingFactor, 1e-9)
	assert.Equal(t, "textures/door.png", cfg.Textures["door"])
	require.Len(t, cfg.Props, 1)
	assert.Equal(t, [3]float32{4, 0, 1}, cfg.Props[0].Position)
	assert.Equal(t, [3]float32{}, cfg.Props[0].Scale)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("window: [1, 2"), 0o644))
	_, err := config.Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("controls:\n  damping_factor: 1.5\n"), 0o644))
	cfg, err := config.Load(invalid)
	assert.ErrorContains(t, err, "damping_factor")
	assert.Equal(t, config.Default(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	cfg := config.Default()
	cfg.Window.Title = "Spooky"
	cfg.Profiler.Enabled = true
	cfg.Props = []config.Prop{{Path: "a.gltf", Scale: [3]float32{2, 2, 2}}}

	require.NoError(t, config.Save(path, cfg))
	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
