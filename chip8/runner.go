package chip8

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Runner drives an Emulator against a Backend, one 60Hz frame at a time.
type Runner struct {
	emu     Emulator
	backend backend.Backend
	limiter timing.Limiter
	input   *input.Manager
	palette video.Palette
	level   *slog.LevelVar

	pauseOnError bool

	paused          bool
	stepInstruction bool
	stepFrame       bool
	quit            bool
	frames          uint64
	lastErr         error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLimiter sets the frame pacing. The default never waits.
func WithLimiter(l timing.Limiter) RunnerOption {
	return func(r *Runner) { r.limiter = l }
}

// WithPalette sets the colors used for snapshots taken from the keyboard.
func WithPalette(p video.Palette) RunnerOption {
	return func(r *Runner) { r.palette = p }
}

// WithLevelVar lets the log level keys adjust level.
func WithLevelVar(level *slog.LevelVar) RunnerOption {
	return func(r *Runner) { r.level = level }
}

// WithPauseOnError pauses on a cycle error instead of stopping, keeping the
// faulting state on screen for inspection.
func WithPauseOnError() RunnerOption {
	return func(r *Runner) { r.pauseOnError = true }
}

func NewRunner(emu Emulator, b backend.Backend, opts ...RunnerOption) *Runner {
	r := &Runner{
		emu:     emu,
		backend: b,
		limiter: timing.NewNoOpLimiter(),
		input:   input.NewManager(emu),
		palette: video.DefaultPalette,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.registerActions()
	return r
}

func (r *Runner) registerActions() {
	r.input.On(action.EmulatorQuit, event.Press, func() {
		r.quit = true
	})
	r.input.On(action.EmulatorPauseToggle, event.Press, func() {
		r.paused = !r.paused
		r.limiter.Reset()
		slog.Info("Pause toggled", "paused", r.paused)
	})
	r.input.On(action.EmulatorStepInstruction, event.Press, func() {
		r.paused = true
		r.stepInstruction = true
	})
	r.input.On(action.EmulatorStepFrame, event.Press, func() {
		r.paused = true
		r.stepFrame = true
	})
	r.input.On(action.EmulatorReset, event.Press, func() {
		if err := r.emu.Reset(); err != nil {
			slog.Error("Reset failed", "error", err)
			return
		}
		r.lastErr = nil
	})
	r.input.On(action.EmulatorSnapshot, event.Press, func() {
		debug.TakeSnapshot(r.emu.Frame(), r.palette)
	})
	r.input.On(action.DebugLogLevelIncrease, event.Press, func() {
		r.changeLogLevel(-4)
	})
	r.input.On(action.DebugLogLevelDecrease, event.Press, func() {
		r.changeLogLevel(4)
	})

	if handler, ok := r.backend.(backend.ActionHandler); ok {
		for _, act := range []action.Action{
			action.EmulatorDebugToggle,
			action.DebugLogLevelIncrease,
			action.DebugLogLevelDecrease,
		} {
			r.input.On(act, event.Press, func() { handler.HandleAction(act) })
		}
	}
}

// changeLogLevel moves the level by delta, between debug and error.
func (r *Runner) changeLogLevel(delta slog.Level) {
	if r.level == nil {
		return
	}

	level := r.level.Level() + delta
	if level < slog.LevelDebug || level > slog.LevelError {
		return
	}
	r.level.Set(level)
	slog.Info("Log level changed", "level", level)
}

// Run executes frames until a quit is requested or a cycle fails.
func (r *Runner) Run() error {
	if owner, ok := r.backend.(backend.LoopOwner); ok {
		return owner.Loop(r.Frame)
	}

	r.limiter.Reset()
	for {
		quit, err := r.Frame()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		r.limiter.WaitForNextFrame()
	}
}

// Frame runs one frame worth of cycles (or a single step when paused),
// hands the frame to the backend and dispatches the returned input.
func (r *Runner) Frame() (bool, error) {
	var err error
	switch {
	case r.lastErr != nil:
		// halted on an error until reset
	case r.stepInstruction:
		err = r.emu.Cycle()
	case r.stepFrame, !r.paused:
		err = r.emu.RunFrame()
	}
	r.stepInstruction, r.stepFrame = false, false

	if err != nil {
		slog.Error("Emulation stopped", "error", err)
		if !r.pauseOnError {
			return true, err
		}
		r.lastErr = err
		r.paused = true
	}

	r.frames++
	events, err := r.backend.Update(r.emu.Frame())
	if err != nil {
		return true, fmt.Errorf("backend update: %w", err)
	}

	for _, evt := range events {
		r.input.Trigger(evt.Action, evt.Type)
	}

	return r.quit, nil
}

// DebugData returns the emulator state annotated with the runner's state.
func (r *Runner) DebugData() *debug.CompleteDebugData {
	data := r.emu.ExtractDebugData()
	if data == nil {
		return nil
	}

	data.LastError = r.lastErr
	switch {
	case r.stepInstruction:
		data.DebuggerState = debug.DebuggerStepInstruction
	case r.stepFrame:
		data.DebuggerState = debug.DebuggerStepFrame
	case r.paused:
		data.DebuggerState = debug.DebuggerPaused
	default:
		data.DebuggerState = debug.DebuggerRunning
	}
	return data
}

// Paused reports whether execution is paused.
func (r *Runner) Paused() bool {
	return r.paused
}

// Frames returns the number of frames handed to the backend.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Err returns the error the runner is halted on, if any.
func (r *Runner) Err() error {
	return r.lastErr
}
