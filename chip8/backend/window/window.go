//go:build ebiten

package window

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend renders into a scaled ebiten window. Ebiten owns the main loop,
// so the runner drives it through Loop.
type Backend struct {
	config backend.Config
	keys   input.KeyMap
	frame  video.Snapshot
	image  *ebiten.Image
	pixels []byte
}

func New() *Backend {
	return &Backend{}
}

func (w *Backend) Init(config backend.Config) error {
	if config.Scale <= 0 {
		config.Scale = DefaultScale
	}
	if config.Palette == (video.Palette{}) {
		config.Palette = video.DefaultPalette
	}
	if config.Title == "" {
		config.Title = "CHIP-8"
	}

	w.config = config
	w.keys = config.Keys()
	w.pixels = make([]byte, video.FramebufferWidth*video.FramebufferHeight*bytesPerPixel)

	ebiten.SetWindowSize(video.FramebufferWidth*config.Scale, video.FramebufferHeight*config.Scale)
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(timing.TimerFrequency)

	slog.Info("Window backend initialized", "scale", config.Scale)
	return nil
}

// Update stores frame for the next Draw and polls the keyboard. It runs
// inside ebiten's Update, where inpututil state is valid.
func (w *Backend) Update(frame video.Snapshot) ([]backend.InputEvent, error) {
	w.frame = frame

	var events []backend.InputEvent
	for key, name := range keyNames {
		act, ok := w.keys.Lookup(name)
		if !ok {
			continue
		}

		_, isKeypad := action.KeypadKey(act)
		switch {
		case inpututil.IsKeyJustPressed(key):
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		case isKeypad && inpututil.IsKeyJustReleased(key):
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		case isKeypad && ebiten.IsKeyPressed(key):
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	if ebiten.IsWindowBeingClosed() {
		events = append(events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	}

	return events, nil
}

func (w *Backend) Cleanup() error {
	return nil
}

// Loop runs the ebiten game loop, calling frame once per tick.
func (w *Backend) Loop(frame backend.FrameFunc) error {
	return ebiten.RunGame(&game{backend: w, frame: frame})
}

func (w *Backend) draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(video.FramebufferWidth, video.FramebufferHeight)
	}

	fillPixels(w.pixels, w.frame, w.config.Palette)
	w.image.WritePixels(w.pixels)
	screen.DrawImage(w.image, nil)
}

type game struct {
	backend *Backend
	frame   backend.FrameFunc
}

func (g *game) Update() error {
	quit, err := g.frame()
	if err != nil {
		return err
	}
	if quit {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.backend.draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return video.FramebufferWidth, video.FramebufferHeight
}

// keyNames converts ebiten keys to key names used in key maps
var keyNames = map[ebiten.Key]string{
	ebiten.KeyA: "a", ebiten.KeyB: "b", ebiten.KeyC: "c", ebiten.KeyD: "d",
	ebiten.KeyE: "e", ebiten.KeyF: "f", ebiten.KeyG: "g", ebiten.KeyH: "h",
	ebiten.KeyI: "i", ebiten.KeyJ: "j", ebiten.KeyK: "k", ebiten.KeyL: "l",
	ebiten.KeyM: "m", ebiten.KeyN: "n", ebiten.KeyO: "o", ebiten.KeyP: "p",
	ebiten.KeyQ: "q", ebiten.KeyR: "r", ebiten.KeyS: "s", ebiten.KeyT: "t",
	ebiten.KeyU: "u", ebiten.KeyV: "v", ebiten.KeyW: "w", ebiten.KeyX: "x",
	ebiten.KeyY: "y", ebiten.KeyZ: "z",

	ebiten.KeyDigit0: "0", ebiten.KeyDigit1: "1", ebiten.KeyDigit2: "2",
	ebiten.KeyDigit3: "3", ebiten.KeyDigit4: "4", ebiten.KeyDigit5: "5",
	ebiten.KeyDigit6: "6", ebiten.KeyDigit7: "7", ebiten.KeyDigit8: "8",
	ebiten.KeyDigit9: "9",

	ebiten.KeySpace:      "Space",
	ebiten.KeyEnter:      "Enter",
	ebiten.KeyEscape:     "Escape",
	ebiten.KeyTab:        "Tab",
	ebiten.KeyBackspace:  "Backspace",
	ebiten.KeyArrowUp:    "Up",
	ebiten.KeyArrowDown:  "Down",
	ebiten.KeyArrowLeft:  "Left",
	ebiten.KeyArrowRight: "Right",
	ebiten.KeyEqual:      "=",
	ebiten.KeyMinus:      "-",
	ebiten.KeyF1:         "F1",
	ebiten.KeyF2:         "F2",
	ebiten.KeyF3:         "F3",
	ebiten.KeyF4:         "F4",
	ebiten.KeyF5:         "F5",
	ebiten.KeyF6:         "F6",
	ebiten.KeyF7:         "F7",
	ebiten.KeyF8:         "F8",
	ebiten.KeyF9:         "F9",
	ebiten.KeyF10:        "F10",
	ebiten.KeyF11:        "F11",
	ebiten.KeyF12:        "F12",
}

var _ backend.LoopOwner = (*Backend)(nil)
