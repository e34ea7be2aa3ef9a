package chip8

import (
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

// testMachine returns a machine with a fixed clock (no timer ticks unless a
// test installs its own) and a deterministic random source, loaded with rom.
func testMachine(t *testing.T, rom ...byte) *Chip8 {
	t.Helper()

	c := New(
		WithClock(fixedClock(time.Unix(0, 0))),
		WithRandom(func() byte { return 0xAA }),
	)
	assert.NoError(t, c.Load(rom))
	return c
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// steps runs n instructions, failing the test on any fault.
func steps(t *testing.T, c *Chip8, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		assert.NoError(t, c.Step())
	}
}

func TestNew(t *testing.T) {
	c := New()

	assert.Equal(t, uint16(ProgramStart), c.pc)
	assert.Equal(t, uint8(0), c.sp)
	assert.Equal(t, 0, len(c.stack))
	assert.False(t, c.AudioOn())

	// font glyphs installed at the start of RAM
	for i, b := range fontSet {
		assert.Equal(t, b, c.memory[i])
	}
}

func TestLoad(t *testing.T) {
	c := testMachine(t, 0x6A, 0xFF)

	assert.Equal(t, byte(0x6A), c.memory[ProgramStart])
	assert.Equal(t, byte(0xFF), c.memory[ProgramStart+1])
}

func TestLoadResetsState(t *testing.T) {
	c := testMachine(t)
	c.v[3] = 0x42
	c.i = 0x300
	c.dt = 10
	c.st = 10
	c.pc = 0x400
	c.stack = append(c.stack, 0x200)
	c.sp = 1
	c.screen[0][0] = true
	c.memory[0x300] = 0xFF

	assert.NoError(t, c.Load([]byte{0x00, 0xE0}))

	assert.Equal(t, byte(0), c.v[3])
	assert.Equal(t, uint16(0), c.i)
	assert.Equal(t, byte(0), c.dt)
	assert.Equal(t, byte(0), c.st)
	assert.Equal(t, uint16(ProgramStart), c.pc)
	assert.Equal(t, 0, len(c.stack))
	assert.Equal(t, uint8(0), c.sp)
	assert.False(t, c.screen[0][0])
	assert.Equal(t, byte(0), c.memory[0x300])

	// font survives a reload
	assert.Equal(t, byte(0xF0), c.memory[0])
}

func TestLoadSizeLimit(t *testing.T) {
	c := New()

	assert.NoError(t, c.Load(make([]byte, MaxROMSize)))
	assert.True(t, errors.Is(c.Load(make([]byte, MaxROMSize+1)), ErrROMTooLarge))
}

func TestFaultLatches(t *testing.T) {
	c := testMachine(t, 0x80, 0x08) // 8xy8 is undefined

	err := c.Step()
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, err, c.Fault())

	// the fault latches until reset
	assert.Equal(t, err, c.Step())

	c.Reset()
	assert.NoError(t, c.Fault())
	assert.NoError(t, c.Step())
}

func TestFramebufferSnapshot(t *testing.T) {
	c := testMachine(t,
		0xA0, 0x00, // LD I, 0x000 (glyph 0)
		0xD0, 0x15, // DRW V0, V0, 5
	)
	steps(t, c, 2)

	fb := c.Framebuffer()
	assert.True(t, fb[0][0])

	// the snapshot is a copy, mutating it does not touch the machine
	fb[0][0] = false
	assert.True(t, c.Framebuffer()[0][0])
}

func TestFontGlyphs(t *testing.T) {
	c := New()

	// each hex digit resolves to a 5-byte glyph in low RAM
	for digit := 0; digit < 16; digit++ {
		addr := digit * glyphSize
		for row := 0; row < glyphSize; row++ {
			assert.Equal(t, fontSet[addr+row], c.memory[addr+row])
		}
	}

	// the "0" glyph matches the documented pattern
	assert.Equal(t, byte(0xF0), c.memory[0])
	assert.Equal(t, byte(0x90), c.memory[1])
	assert.Equal(t, byte(0x90), c.memory[2])
	assert.Equal(t, byte(0x90), c.memory[3])
	assert.Equal(t, byte(0xF0), c.memory[4])
}
