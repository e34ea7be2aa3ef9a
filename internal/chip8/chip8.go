// Package chip8 implements the CHIP-8 virtual machine: a byte-code
// fetch/decode/execute engine with 4KB of RAM, sixteen 8-bit registers,
// a 16-entry call stack, two 60 Hz countdown timers, a 64x32 monochrome
// framebuffer and a 16-key hex keypad.
//
// The machine is single-threaded and cooperative. A host drives it by
// calling Step in a loop, feeds key events through KeyDown/KeyUp and reads
// the framebuffer and tone state between steps. All outward dependencies
// (random bytes, monotonic time, tone notifications) are injected.
package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer and the call stack are maintained separately from the
// 4KB main memory address space.
const (
	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// MemorySize is the total main memory size in bytes.
	MemorySize = 4096

	// AddressMask masks an address to the 12 bits that are meaningful in the
	// 4KB address space. Every RAM access derived from I or PC is masked with
	// it, so reads and writes can never escape the memory array.
	AddressMask = 0xFFF

	// MaxROMSize is the largest program image that fits the user program space.
	MaxROMSize = MemorySize - ProgramStart

	// FrameWidth and FrameHeight are the framebuffer dimensions in pixels.
	FrameWidth  = 64
	FrameHeight = 32

	// StackDepth is the call stack capacity.
	StackDepth = 16
)

// Chip8 is the complete machine state. It is created by New, mutated only
// through Load, Step, KeyDown, KeyUp and Reset, and is not safe for
// concurrent use.
type Chip8 struct {
	memory [MemorySize]byte
	screen [FrameHeight][FrameWidth]bool
	stack  []uint16
	v      [16]byte

	pc uint16
	sp uint8 // mirrors the stack depth, kept for trace parity
	i  uint16
	dt byte
	st byte

	keypad keypad
	timers timers

	random  func() byte
	audioFn func(on bool)
	traceFn func(pc, word uint16, mnemonic string)
	compat  Compat

	fault error
}

// Compat selects between the classic CHIP-8 instruction variants (all
// defaults) and the Super-CHIP behaviors that some later ROMs expect.
type Compat struct {
	// ShiftUsesVy makes 8xy6/8xyE shift Vy into Vx instead of shifting Vx
	// in place.
	ShiftUsesVy bool

	// JumpUsesVx makes Bnnn jump to xnn+Vx instead of nnn+V0.
	JumpUsesVx bool

	// LoadStoreAdvancesI makes Fx55/Fx65 leave I incremented by x+1.
	LoadStoreAdvancesI bool
}

// Option configures a machine created by New.
type Option func(*Chip8)

// WithRandom injects the random byte source used by the RND instruction.
func WithRandom(f func() byte) Option {
	return func(c *Chip8) { c.random = f }
}

// WithClock injects the monotonic clock that schedules the 60 Hz timer ticks.
func WithClock(f func() time.Time) Option {
	return func(c *Chip8) { c.timers.now = f }
}

// WithAudioCallback registers a callback invoked on every transition of the
// tone state (sound timer > 0). Hosts without a callback poll AudioOn.
func WithAudioCallback(f func(on bool)) Option {
	return func(c *Chip8) { c.audioFn = f }
}

// WithTrace registers a callback invoked before each executed instruction
// with the current PC, the fetched word and its mnemonic.
func WithTrace(f func(pc, word uint16, mnemonic string)) Option {
	return func(c *Chip8) { c.traceFn = f }
}

// WithCompat selects the instruction variant behaviors.
func WithCompat(compat Compat) Option {
	return func(c *Chip8) { c.compat = compat }
}

// New returns a machine in power-on state with the font installed in low RAM
// and PC at the program start address.
func New(opts ...Option) *Chip8 {
	c := &Chip8{
		stack:  make([]uint16, 0, StackDepth),
		pc:     ProgramStart,
		random: func() byte { return byte(rand.UintN(256)) },
	}
	c.timers.now = time.Now
	for _, opt := range opts {
		opt(c)
	}
	copy(c.memory[:], fontSet[:])
	return c
}

// Load copies a program image into RAM at the program start address and
// resets the machine to run it. The font table is preserved; registers,
// stack, timers, I and the framebuffer are cleared and PC is set to the
// program start.
func (c *Chip8) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	c.Reset()
	copy(c.memory[ProgramStart:], rom)
	return nil
}

// Reset restores the power-on state: font installed, everything else
// cleared. It also clears a latched fault.
func (c *Chip8) Reset() {
	c.memory = [MemorySize]byte{}
	copy(c.memory[:], fontSet[:])
	c.screen = [FrameHeight][FrameWidth]bool{}
	c.stack = c.stack[:0]
	c.v = [16]byte{}
	c.pc = ProgramStart
	c.sp = 0
	c.i = 0
	c.dt = 0
	c.setSoundTimer(0)
	c.keypad.reset()
	c.timers.reset()
	c.fault = nil
}

// Step advances the timers that are due and then executes one instruction.
// Timer ticks are applied before the instruction that shares them.
//
// A returned fault (unknown opcode, stack overflow or underflow) halts the
// machine: subsequent calls return the same fault until Reset or Load.
func (c *Chip8) Step() error {
	if c.fault != nil {
		return c.fault
	}
	for range c.timers.advance() {
		c.tickTimers()
	}

	word := uint16(c.memory[c.pc&AddressMask])<<8 | uint16(c.memory[(c.pc+1)&AddressMask])
	op := decode(word)
	if c.traceFn != nil {
		c.traceFn(c.pc, word, op.mnemonic())
	}
	if err := c.execute(op); err != nil {
		c.fault = err
		return err
	}
	return nil
}

// KeyDown feeds a key-down event for a hex key into the keypad model.
// Values outside 0x0-0xF are ignored.
func (c *Chip8) KeyDown(key byte) {
	c.keypad.keyDown(key)
}

// KeyUp feeds a key-up event for a hex key into the keypad model.
func (c *Chip8) KeyUp(key byte) {
	c.keypad.keyUp(key)
}

// Framebuffer returns a snapshot of the 64x32 display, row-major.
func (c *Chip8) Framebuffer() [FrameHeight][FrameWidth]bool {
	return c.screen
}

// AudioOn reports whether the host should be emitting a tone.
func (c *Chip8) AudioOn() bool {
	return c.st > 0
}

// Fault returns the latched machine fault, if any.
func (c *Chip8) Fault() error {
	return c.fault
}

// PC returns the current program counter, for host diagnostics.
func (c *Chip8) PC() uint16 {
	return c.pc
}
