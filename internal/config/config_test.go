package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("SECTORS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[circle]
initial_n = 12
initial_mode = "Merge"

[tone]
enabled = false
frequency = 440
duration = "20ms"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("SECTORS_CONFIG", path)

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 12, c.Circle.InitialN)
	require.Equal(t, "merge", c.Circle.InitialMode)
	require.False(t, c.Tone.Enabled)
	require.Equal(t, 440.0, c.Tone.Frequency)
	require.Equal(t, 20*time.Millisecond, c.Tone.Duration)
	require.Equal(t, Default().Tone.Volume, c.Tone.Volume)
}

func TestLoadEnvOverrideIsNormalized(t *testing.T) {
	t.Setenv("SECTORS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("SECTORS_CIRCLE_INITIAL_N", "30")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, MaxSectors, c.Circle.InitialN)
}

func TestLoadWindowSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[window]
width = 1440
height = 100
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("SECTORS_CONFIG", path)
	t.Setenv("SECTORS_WINDOW_WIDTH", "1280")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1280, c.Window.Width)
	require.Equal(t, WindowHeight, c.Window.Height)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[circle\ninitial_n = "), 0o644))
	t.Setenv("SECTORS_CONFIG", path)

	c, err := Load()
	require.Error(t, err)
	require.Equal(t, Default(), c)
}

func TestNormalize(t *testing.T) {
	c := Normalize(Config{
		Circle: CircleConfig{InitialN: -3, InitialMode: "spin"},
		Window: WindowConfig{Width: 0, Height: -1},
		Tone:   ToneConfig{Volume: 4, Duration: -time.Second},
		Export: ExportConfig{Dir: "  /tmp/out "},
	})
	require.Equal(t, MinSectors, c.Circle.InitialN)
	require.Equal(t, "cut", c.Circle.InitialMode)
	require.Equal(t, WindowConfig{Width: WindowWidth, Height: WindowHeight}, c.Window)
	require.Equal(t, 800.0, c.Tone.Frequency)
	require.Equal(t, 50*time.Millisecond, c.Tone.Duration)
	require.Equal(t, 0.3, c.Tone.Volume)
	require.Equal(t, 44100, c.Tone.SampleRate)
	require.Equal(t, "/tmp/out", c.Export.Dir)
}

func TestWriteExampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.Circle.InitialN = 9
	want.Circle.InitialMode = "tap"
	want.Window = WindowConfig{Width: 1920, Height: 1080}
	want.Tone.Duration = 75 * time.Millisecond
	require.NoError(t, WriteExample(path, want))

	t.Setenv("SECTORS_CONFIG", path)
	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteExampleReportsWriteErrors(t *testing.T) {
	err := writeExample(failingWriter{}, Default())
	require.ErrorContains(t, err, "disk full")

	// A directory in place of the file fails before anything is written.
	dir := t.TempDir()
	require.Error(t, WriteExample(dir, Default()))
}
