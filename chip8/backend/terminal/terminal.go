package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	gameAreaWidth  = video.FramebufferWidth
	gameAreaHeight = video.FramebufferHeight / 2
	registerHeight = 10
	disasmHeight   = 9
	minTermWidth   = gameAreaWidth + 30
	minTermHeight  = gameAreaHeight + 4

	logCapacity = 200

	// keyTimeout is how long a key counts as held after its last key event.
	// Terminals only report presses and auto-repeat, never releases.
	keyTimeout = 150 * time.Millisecond
)

// Backend renders to the terminal with tcell, two pixels per cell.
type Backend struct {
	screen    tcell.Screen
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	config    backend.Config
	keys      input.KeyMap

	eventQueue []backend.InputEvent
	keyStates  map[action.Action]time.Time // last key event per keypad action
	activeKeys map[action.Action]bool      // keypad actions held in the previous frame
	signals    chan os.Signal

	now func() time.Time
}

// New creates a terminal backend on the process terminal.
func New() *Backend {
	return &Backend{now: time.Now}
}

// NewWithScreen creates a backend drawing on screen, e.g. a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen, now: time.Now}
}

func (t *Backend) Init(config backend.Config) error {
	t.config = config
	t.keys = config.Keys()
	t.logLevel = config.LogLevel
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// everything is captured, the panel filters by level
	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	slog.Info("Terminal backend initialized", "debug", config.ShowDebug)
	return nil
}

// Update polls the terminal, renders frame and returns the collected events.
func (t *Backend) Update(frame video.Snapshot) ([]backend.InputEvent, error) {
	now := t.now()

	select {
	case sig := <-t.signals:
		slog.Info("Received signal", "signal", sig)
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	default:
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.keypadEvents(now)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	t.render(frame)
	t.screen.Show()

	return events, nil
}

// keypadEvents turns the key timestamps into press/hold/release events.
func (t *Backend) keypadEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	current := make(map[action.Action]bool)

	for act, last := range t.keyStates {
		if now.Sub(last) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		current[act] = true
		if t.activeKeys[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		} else {
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !current[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = current
	return events
}

func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorDebugToggle:
		t.config.ShowDebug = !t.config.ShowDebug
		slog.Info("Debug display toggled", "enabled", t.config.ShowDebug)
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(-4)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(4)
	}
}

func (t *Backend) changeLogLevel(delta slog.Level) {
	level := t.logLevel + delta
	if level < slog.LevelDebug || level > slog.LevelError {
		return
	}
	slog.Info("Log filter changed", "from", t.logLevel, "to", level)
	t.logLevel = level
}

// keyName converts a tcell key event to the name used by input.KeyMap.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "Space"
		}
		return strings.ToLower(string(ev.Rune()))
	case tcell.KeyCtrlC:
		return "Ctrl+C"
	default:
		return tcellKeyNameMap[ev.Key()]
	}
}

// tcellKeyNameMap converts tcell keys to key names used in key maps
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:     "Enter",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyEscape:    "Escape",
	tcell.KeyTab:       "Tab",
	tcell.KeyBackspace: "Backspace",
	tcell.KeyF1:        "F1",
	tcell.KeyF2:        "F2",
	tcell.KeyF3:        "F3",
	tcell.KeyF4:        "F4",
	tcell.KeyF5:        "F5",
	tcell.KeyF6:        "F6",
	tcell.KeyF7:        "F7",
	tcell.KeyF8:        "F8",
	tcell.KeyF9:        "F9",
	tcell.KeyF10:       "F10",
	tcell.KeyF11:       "F11",
	tcell.KeyF12:       "F12",
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	name := keyName(ev)
	if name == "Ctrl+C" {
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
		return
	}

	act, ok := t.keys.Lookup(name)
	if !ok {
		return
	}

	if _, isKeypad := action.KeypadKey(act); isKeypad {
		t.keyStates[act] = now
		return
	}

	slog.Debug("UI event", "key", name, "action", act)
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) render(frame video.Snapshot) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	dividerX := gameAreaWidth + 1
	panelX := dividerX + 2
	panelWidth := termWidth - panelX

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawFrame(frame)

	switch {
	case !t.config.ShowDebug:
		t.drawHelp(panelX, 1, panelWidth)
	case t.config.DebugProvider != nil:
		if data := t.config.DebugProvider(); data != nil {
			t.drawRegisters(data, panelX, 1, panelWidth)
			t.drawDisassembly(data, panelX, registerHeight+2, panelWidth)
		}
	}

	t.drawLogs(0, gameAreaHeight+2, dividerX, termHeight-gameAreaHeight-3)
}

func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= width {
			break
		}
		t.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}
	for x := 0; x < dividerX; x++ {
		t.screen.SetContent(x, gameAreaHeight+1, '─', nil, borderStyle)
	}
	t.screen.SetContent(dividerX, gameAreaHeight+1, '┤', nil, borderStyle)

	t.drawText(1, 0, dividerX-1, " CHIP-8 ", titleStyle)
	t.drawText(1, gameAreaHeight+1, dividerX-1, fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel), titleStyle)

	if t.config.ShowDebug {
		t.drawText(dividerX+2, 0, termWidth, " Registers ", titleStyle)
		t.drawText(dividerX+2, registerHeight+1, termWidth, " Disassembly ", titleStyle)
	}

	help := " F10=debug SPACE=pause N=step M=frame F5=reset F9=snapshot ESC=quit "
	t.drawText(0, termHeight-1, termWidth, help, borderStyle)
}

func (t *Backend) drawFrame(frame video.Snapshot) {
	on := tcellColor(t.config.Palette.On, tcell.ColorWhite)
	off := tcellColor(t.config.Palette.Off, tcell.ColorBlack)

	cells := render.HalfBlocks(frame)
	for row := range cells {
		for x, cell := range cells[row] {
			// the glyph covers the top half, so fg is the top pixel
			fg, bg := off, off
			if cell.Top {
				fg = on
			}
			if cell.Bottom {
				bg = on
			}
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			t.screen.SetContent(x, row+1, '▀', nil, style)
		}
	}
}

func (t *Backend) drawHelp(x, y, width int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	lines := []string{
		"Keypad:",
		"  1 2 3 4    1 2 3 C",
		"  q w e r    4 5 6 D",
		"  a s d f    7 8 9 E",
		"  z x c v    A 0 B F",
	}
	for i, line := range lines {
		t.drawText(x, y+i, width, line, style)
	}
}

func (t *Backend) drawRegisters(data *debug.CompleteDebugData, x, y, width int) {
	if data.CPU == nil {
		return
	}
	cpu := data.CPU

	lines := []string{fmt.Sprintf("Status: %s", data.DebuggerState)}
	for row := 0; row < 4; row++ {
		var sb strings.Builder
		for col := 0; col < 4; col++ {
			r := row*4 + col
			fmt.Fprintf(&sb, "V%X:%02X ", r, cpu.V[r])
		}
		lines = append(lines, strings.TrimSpace(sb.String()))
	}

	stack := make([]string, len(cpu.Stack))
	for i, address := range cpu.Stack {
		stack[i] = fmt.Sprintf("%03X", address)
	}

	keys := make([]byte, 0, len(data.Keys))
	for k, pressed := range data.Keys {
		if pressed {
			keys = append(keys, "0123456789ABCDEF"[k])
		} else {
			keys = append(keys, '.')
		}
	}

	lines = append(lines,
		fmt.Sprintf("I:0x%03X PC:0x%03X SP:%d", cpu.I, cpu.PC, cpu.SP),
		fmt.Sprintf("DT:%02X ST:%02X OP:%04X", cpu.DelayTimer, cpu.SoundTimer, cpu.Opcode),
		fmt.Sprintf("Stack: %s", strings.Join(stack, " ")),
		fmt.Sprintf("Keys: %s", keys),
		fmt.Sprintf("Cycles: %d Unknown: %d", cpu.Cycles, cpu.UnknownOpcodes),
	)

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		if i >= registerHeight {
			break
		}
		t.drawText(x, y+i, width, line, style)
	}

	if data.LastError != nil {
		errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		t.drawText(x+len(lines[0])+1, y, width-len(lines[0])-1, data.LastError.Error(), errStyle)
	}
}

func (t *Backend) drawDisassembly(data *debug.CompleteDebugData, x, y, width int) {
	if data.CPU == nil || data.Memory == nil || !data.Memory.Contains(data.CPU.PC) {
		return
	}

	snapshot := data.Memory
	pc := data.CPU.PC

	offset := int(pc-snapshot.StartAddr) - (disasmHeight/2)*disasm.InstructionSize
	for offset < 0 {
		offset += disasm.InstructionSize
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for line := 0; line < disasmHeight && offset < len(snapshot.Bytes); line++ {
		address := snapshot.StartAddr + uint16(offset)
		text, length := disasm.DisassembleBytes(snapshot.Bytes, offset)

		var opcode uint16
		if length == disasm.InstructionSize {
			opcode = uint16(snapshot.Bytes[offset])<<8 | uint16(snapshot.Bytes[offset+1])
		}
		formatted := disasm.FormatDisassemblyLine(disasm.DisassemblyLine{
			Address:     address,
			Opcode:      opcode,
			Instruction: text,
		}, address == pc)

		useStyle := style
		if address == pc {
			useStyle = currentStyle
		}
		t.drawText(x, y+line, width, formatted, useStyle)
		offset += length
	}
}

func (t *Backend) drawLogs(x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(height, t.logLevel) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		text := render.FormatLogEntry(entry)
		if len(text) > width && width > 3 {
			text = text[:width-3] + "..."
		}
		t.drawText(x, y+i, width, text, style)
	}
}
