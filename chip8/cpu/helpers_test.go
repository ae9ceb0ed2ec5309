package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

type testBus struct {
	mem     *memory.Bank
	display *video.FrameBuffer
	keypad  *memory.Keypad
	changes int
}

func newTestBus() *testBus {
	bus := &testBus{
		mem:     memory.New(),
		display: video.NewFrameBuffer(),
		keypad:  memory.NewKeypad(),
	}
	font := memory.DefaultFont
	_ = bus.mem.Load(font[:], memory.FontAddress)
	return bus
}

func (b *testBus) Read(address uint16) (byte, error)      { return b.mem.Read(address) }
func (b *testBus) Write(address uint16, value byte) error { return b.mem.Write(address, value) }
func (b *testBus) Display() *video.FrameBuffer            { return b.display }
func (b *testBus) Keypad() *memory.Keypad                 { return b.keypad }
func (b *testBus) FontAddress() uint16                    { return memory.FontAddress }
func (b *testBus) FramebufferChanged()                    { b.changes++ }

// sequenceRandom returns the given bytes in order, cycling.
type sequenceRandom struct {
	values []byte
	next   int
}

func (r *sequenceRandom) NextByte() byte {
	value := r.values[r.next%len(r.values)]
	r.next++
	return value
}

// newTestCPU loads program at the program address and returns a reset CPU.
func newTestCPU(t *testing.T, program ...byte) (*CPU, *testBus) {
	t.Helper()

	bus := newTestBus()
	require.NoError(t, bus.mem.Load(program, memory.ProgramAddress))

	return New(bus, &sequenceRandom{values: []byte{0xFF}}), bus
}

// steps executes n instructions, failing the test on any error.
func steps(t *testing.T, cpu *CPU, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		require.NoError(t, cpu.Step(), "step %d", i)
	}
}
