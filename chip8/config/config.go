// Package config handles the optional chip8.toml configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the file layout:
//
//	[machine]
//	cycle_rate = 600
//	font = "fonts/alt.bin"
//	seed = 42
//
//	[display]
//	scale = 10
//	foreground = "#33FF66"
//	background = "#000000"
//
//	[keys]
//	Up = "5"
type Config struct {
	Machine Machine           `toml:"machine"`
	Display Display           `toml:"display"`
	Keys    map[string]string `toml:"keys"`

	// Dir is the directory containing the file, relative paths resolve
	// against it (set at load time).
	Dir string `toml:"-"`
}

// Machine configures the interpreter.
type Machine struct {
	CycleRate int     `toml:"cycle_rate"`
	Font      string  `toml:"font"`
	Seed      *uint64 `toml:"seed"`
}

// Display configures rendering.
type Display struct {
	Scale      int    `toml:"scale"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Machine: Machine{CycleRate: chip8.DefaultCycleRate},
		Display: Display{
			Scale:      10,
			Foreground: "#FFFFFF",
			Background: "#000000",
		},
	}
}

// Load reads and validates the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes and validates TOML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("Ignoring unknown config key", "key", key.String())
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if c.Machine.CycleRate < timing.TimerFrequency {
		return fmt.Errorf("%w: machine.cycle_rate must be at least %d, got %d", ErrInvalid, timing.TimerFrequency, c.Machine.CycleRate)
	}
	if c.Display.Scale < 1 {
		return fmt.Errorf("%w: display.scale must be positive, got %d", ErrInvalid, c.Display.Scale)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := input.NewKeyMap(c.Keys); err != nil {
		return fmt.Errorf("%w: keys: %v", ErrInvalid, err)
	}
	return nil
}

// Palette returns the display colors.
func (c *Config) Palette() (video.Palette, error) {
	on, err := video.ParseColor(c.Display.Foreground)
	if err != nil {
		return video.Palette{}, fmt.Errorf("display.foreground: %w", err)
	}
	off, err := video.ParseColor(c.Display.Background)
	if err != nil {
		return video.Palette{}, fmt.Errorf("display.background: %w", err)
	}
	return video.Palette{On: on, Off: off}, nil
}

// KeyMap returns the default key map with the [keys] overrides applied.
func (c *Config) KeyMap() (input.KeyMap, error) {
	return input.NewKeyMap(c.Keys)
}

// FontPath returns the font file path resolved against Dir, or "" when the
// built-in font is used.
func (c *Config) FontPath() string {
	if c.Machine.Font == "" || filepath.IsAbs(c.Machine.Font) {
		return c.Machine.Font
	}
	return filepath.Join(c.Dir, c.Machine.Font)
}

// MachineOptions translates the [machine] section into machine options.
func (c *Config) MachineOptions() ([]chip8.Option, error) {
	opts := []chip8.Option{chip8.WithCycleRate(c.Machine.CycleRate)}

	if path := c.FontPath(); path != "" {
		font, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read font %s: %w", path, err)
		}
		if len(font) != memory.FontSize {
			return nil, fmt.Errorf("font %s: %w", path, chip8.ErrInvalidFont)
		}
		opts = append(opts, chip8.WithFont(font))
	}

	if c.Machine.Seed != nil {
		opts = append(opts, chip8.WithRandom(cpu.NewRandom(*c.Machine.Seed)))
	}

	return opts, nil
}
