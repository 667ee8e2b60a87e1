package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

const (
	WindowWidth  = 960
	WindowHeight = 560

	MinSectors = 1
	MaxSectors = 24

	// Circle area (left side of the window)
	CircleX       = 20
	CircleY       = 20
	CircleSize    = 520
	CirclePadding = 10

	// Control panel (right side of the window)
	PanelX       = 580
	PanelY       = 40
	PanelWidth   = 350
	ButtonHeight = 36
	ButtonGap    = 12

	// Cosmetic fade/grow after each re-render, in frames
	AnimationFrames = 18
)

// Config holds runtime settings.
type Config struct {
	Circle CircleConfig `mapstructure:"circle" toml:"circle"`
	Window WindowConfig `mapstructure:"window" toml:"window"`
	Tone   ToneConfig   `mapstructure:"tone" toml:"tone"`
	Export ExportConfig `mapstructure:"export" toml:"export"`
}

// CircleConfig holds the state the window starts with.
type CircleConfig struct {
	InitialN    int    `mapstructure:"initial_n" toml:"initial_n"`
	InitialMode string `mapstructure:"initial_mode" toml:"initial_mode"`
}

// WindowConfig is the outer window size in device-independent pixels.
// The game still lays itself out at WindowWidth x WindowHeight and ebiten scales it.
type WindowConfig struct {
	Width  int `mapstructure:"width" toml:"width"`
	Height int `mapstructure:"height" toml:"height"`
}

// ToneConfig controls the tap feedback tone.
type ToneConfig struct {
	Enabled    bool          `mapstructure:"enabled" toml:"enabled"`
	Frequency  float64       `mapstructure:"frequency" toml:"frequency"`
	Duration   time.Duration `mapstructure:"duration" toml:"duration"`
	Volume     float64       `mapstructure:"volume" toml:"volume"`
	SampleRate int           `mapstructure:"sample_rate" toml:"sample_rate"`
}

// ExportConfig controls where SVG exports are suggested.
type ExportConfig struct {
	Dir string `mapstructure:"dir" toml:"dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Circle: CircleConfig{
			InitialN:    4,
			InitialMode: "cut",
		},
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
		},
		Tone: ToneConfig{
			Enabled:    true,
			Frequency:  800,
			Duration:   50 * time.Millisecond,
			Volume:     0.3,
			SampleRate: 44100,
		},
	}
}

// Path returns the config file location: $SECTORS_CONFIG or ~/.config/sectors/config.toml.
func Path() string {
	if p := os.Getenv("SECTORS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "sectors", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix SECTORS_.
func Load() (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("circle.initial_n", d.Circle.InitialN)
	v.SetDefault("circle.initial_mode", d.Circle.InitialMode)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("tone.enabled", d.Tone.Enabled)
	v.SetDefault("tone.frequency", d.Tone.Frequency)
	v.SetDefault("tone.duration", d.Tone.Duration)
	v.SetDefault("tone.volume", d.Tone.Volume)
	v.SetDefault("tone.sample_rate", d.Tone.SampleRate)
	v.SetDefault("export.dir", d.Export.Dir)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("SECTORS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine; a broken one is not
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(Path()); statErr == nil {
			return Default(), fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Default(), fmt.Errorf("unmarshal config: %w", err)
	}
	return Normalize(c), nil
}

// Normalize replaces out-of-range values so the rest of the program never sees them.
func Normalize(c Config) Config {
	out := c
	d := Default()

	if out.Circle.InitialN < MinSectors {
		out.Circle.InitialN = MinSectors
	}
	if out.Circle.InitialN > MaxSectors {
		out.Circle.InitialN = MaxSectors
	}
	switch m := strings.ToLower(strings.TrimSpace(out.Circle.InitialMode)); m {
	case "cut", "merge", "tap":
		out.Circle.InitialMode = m
	default:
		out.Circle.InitialMode = d.Circle.InitialMode
	}

	// at least half the layout size
	if out.Window.Width < WindowWidth/2 {
		out.Window.Width = d.Window.Width
	}
	if out.Window.Height < WindowHeight/2 {
		out.Window.Height = d.Window.Height
	}

	if out.Tone.Frequency <= 0 {
		out.Tone.Frequency = d.Tone.Frequency
	}
	if out.Tone.Duration <= 0 {
		out.Tone.Duration = d.Tone.Duration
	}
	if out.Tone.Volume <= 0 || out.Tone.Volume > 1 {
		out.Tone.Volume = d.Tone.Volume
	}
	if out.Tone.SampleRate <= 0 {
		out.Tone.SampleRate = d.Tone.SampleRate
	}
	out.Export.Dir = strings.TrimSpace(out.Export.Dir)
	return out
}

// WriteExample writes cfg as TOML to path, creating the directory if needed.
func WriteExample(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := writeExample(f, cfg); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	return nil
}

func writeExample(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(exampleFile(cfg)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// exampleTone mirrors ToneConfig with the duration written as "50ms".
type exampleTone struct {
	Enabled    bool    `toml:"enabled"`
	Frequency  float64 `toml:"frequency"`
	Duration   string  `toml:"duration"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

type example struct {
	Circle CircleConfig `toml:"circle"`
	Window WindowConfig `toml:"window"`
	Tone   exampleTone  `toml:"tone"`
	Export ExportConfig `toml:"export"`
}

func exampleFile(c Config) example {
	c = Normalize(c)
	return example{
		Circle: c.Circle,
		Window: c.Window,
		Tone: exampleTone{
			Enabled:    c.Tone.Enabled,
			Frequency:  c.Tone.Frequency,
			Duration:   c.Tone.Duration.String(),
			Volume:     c.Tone.Volume,
			SampleRate: c.Tone.SampleRate,
		},
		Export: c.Export,
	}
}
