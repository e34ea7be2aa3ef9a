package chip8

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func compatMachine(t *testing.T, compat Compat, rom ...byte) *Chip8 {
	t.Helper()

	c := New(
		WithClock(fixedClock(time.Unix(0, 0))),
		WithCompat(compat),
	)
	assert.NoError(t, c.Load(rom))
	return c
}

// The Super-CHIP shift variant shifts Vy into Vx instead of Vx in place.
func TestCompatShiftUsesVy(t *testing.T) {
	rom := []byte{
		0x60, 0x01, // LD V0, 1
		0x61, 0x81, // LD V1, 0x81
		0x80, 0x16, // SHR V0, V1
	}

	c := compatMachine(t, Compat{}, rom...)
	steps(t, c, 3)
	assert.Equal(t, byte(0x00), c.v[0]) // classic: Vy ignored
	assert.Equal(t, byte(1), c.v[0xF])

	c = compatMachine(t, Compat{ShiftUsesVy: true}, rom...)
	steps(t, c, 3)
	assert.Equal(t, byte(0x40), c.v[0])
	assert.Equal(t, byte(1), c.v[0xF])

	rom[4], rom[5] = 0x80, 0x1E // SHL V0, V1
	c = compatMachine(t, Compat{ShiftUsesVy: true}, rom...)
	steps(t, c, 3)
	assert.Equal(t, byte(0x02), c.v[0])
	assert.Equal(t, byte(1), c.v[0xF])
}

// The Super-CHIP jump variant uses Vx instead of V0 as the offset register.
func TestCompatJumpUsesVx(t *testing.T) {
	rom := []byte{
		0x60, 0x10, // LD V0, 0x10
		0x63, 0x20, // LD V3, 0x20
		0xB3, 0x00, // JP 0x300 family
	}

	c := compatMachine(t, Compat{}, rom...)
	steps(t, c, 3)
	assert.Equal(t, uint16(0x310), c.pc) // classic: nnn + V0

	c = compatMachine(t, Compat{JumpUsesVx: true}, rom...)
	steps(t, c, 3)
	assert.Equal(t, uint16(0x320), c.pc) // xnn + Vx
}

// The original COSMAC interpreter left I advanced past the copied block.
func TestCompatLoadStoreAdvancesI(t *testing.T) {
	rom := []byte{
		0xA3, 0x00, // LD I, 0x300
		0xF2, 0x55, // LD [I], V2
	}

	c := compatMachine(t, Compat{}, rom...)
	steps(t, c, 2)
	assert.Equal(t, uint16(0x300), c.i)

	c = compatMachine(t, Compat{LoadStoreAdvancesI: true}, rom...)
	steps(t, c, 2)
	assert.Equal(t, uint16(0x303), c.i)

	rom[2], rom[3] = 0xF2, 0x65 // LD V2, [I]
	c = compatMachine(t, Compat{LoadStoreAdvancesI: true}, rom...)
	steps(t, c, 2)
	assert.Equal(t, uint16(0x303), c.i)
}
