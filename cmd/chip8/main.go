package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/backend/window"
	"github.com/valerio/go-chip8/chip8/config"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 interpreter"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Backend to use (terminal, headless, window)",
			Value: "terminal",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a TOML configuration file",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "cycle-rate",
			Usage: "Instructions executed per second (overrides the config file)",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "Seed for the CXKK random source (overrides the config file)",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale factor (overrides the config file)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:  "pacing",
			Usage: "Frame pacing for the terminal backend (adaptive, ticker)",
			Value: "adaptive",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Minimum log level (debug, info, warn, error)",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Show the debug panels on start",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	opts, err := cfg.MachineOptions()
	if err != nil {
		return err
	}
	if c.IsSet("seed") {
		opts = append(opts, chip8.WithRandom(cpu.NewRandom(c.Uint64("seed"))))
	}

	palette, err := cfg.Palette()
	if err != nil {
		return err
	}
	keys, err := cfg.KeyMap()
	if err != nil {
		return err
	}

	emu, err := chip8.NewWithFile(romPath, opts...)
	if err != nil {
		return err
	}

	runnerOpts := []chip8.RunnerOption{chip8.WithPalette(palette), chip8.WithLevelVar(levelVar)}

	var b backend.Backend
	switch c.String("backend") {
	case "terminal":
		limiter, err := newLimiter(c.String("pacing"))
		if err != nil {
			return err
		}
		b = terminal.New()
		runnerOpts = append(runnerOpts, chip8.WithLimiter(limiter), chip8.WithPauseOnError())
	case "headless":
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}
		snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return err
		}
		b = headless.New(frames, snapshots).WithStderrLogging()
	case "window":
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar})))
		b = window.New()
	default:
		return fmt.Errorf("unknown backend %q", c.String("backend"))
	}

	runner := chip8.NewRunner(emu, b, runnerOpts...)

	err = b.Init(backend.Config{
		Title:         "CHIP-8 - " + romPath,
		Scale:         cfg.Display.Scale,
		Palette:       palette,
		ShowDebug:     c.Bool("debug"),
		KeyMap:        keys,
		LogLevel:      level,
		DebugProvider: runner.DebugData,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	slog.Info("Starting emulation", "rom", romPath, "backend", c.String("backend"), "cycle_rate", emu.CycleRate())
	return runner.Run()
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("cycle-rate") {
		cfg.Machine.CycleRate = c.Int("cycle-rate")
	}
	if c.IsSet("scale") {
		cfg.Display.Scale = c.Int("scale")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLimiter(name string) (timing.Limiter, error) {
	switch name {
	case "adaptive":
		return timing.NewAdaptiveLimiter(), nil
	case "ticker":
		return timing.NewTickerLimiter(), nil
	default:
		return nil, fmt.Errorf("unknown pacing %q", name)
	}
}
