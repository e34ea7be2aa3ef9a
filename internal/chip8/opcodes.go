package chip8

import "fmt"

// execute dispatches one decoded instruction to its handler. PC handling is
// explicit per instruction: most advance by 2, skips advance by 4 when their
// predicate holds, and the flow control instructions set PC absolutely.
func (c *Chip8) execute(op opcode) error {
	switch op.op {
	case 0x0:
		switch op.word {
		case 0x00E0: // CLS
			c.screen = [FrameHeight][FrameWidth]bool{}
			c.pc += 2
		case 0x00EE: // RET
			return c.ret()
		default: // SYS, ignored by modern interpreters
			c.pc += 2
		}

	case 0x1: // JP nnn
		c.pc = op.nnn

	case 0x2: // CALL nnn
		return c.call(op.nnn)

	case 0x3: // SE Vx, kk
		c.skipIf(c.v[op.x] == op.kk)

	case 0x4: // SNE Vx, kk
		c.skipIf(c.v[op.x] != op.kk)

	case 0x5: // SE Vx, Vy
		c.skipIf(c.v[op.x] == c.v[op.y])

	case 0x6: // LD Vx, kk
		c.v[op.x] = op.kk
		c.pc += 2

	case 0x7: // ADD Vx, kk - wraps, no flag change
		c.v[op.x] += op.kk
		c.pc += 2

	case 0x8:
		return c.alu(op)

	case 0x9: // SNE Vx, Vy
		c.skipIf(c.v[op.x] != c.v[op.y])

	case 0xA: // LD I, nnn
		c.i = op.nnn
		c.pc += 2

	case 0xB: // JP V0, nnn
		if c.compat.JumpUsesVx {
			c.pc = op.nnn + uint16(c.v[op.x])
		} else {
			c.pc = op.nnn + uint16(c.v[0])
		}

	case 0xC: // RND Vx, kk
		c.v[op.x] = c.random() & op.kk
		c.pc += 2

	case 0xD: // DRW Vx, Vy, n
		c.draw(op)

	case 0xE:
		return c.key(op)

	case 0xF:
		return c.misc(op)
	}
	return nil
}

// skipIf advances PC by 4 when the predicate holds, else by 2.
func (c *Chip8) skipIf(skip bool) {
	if skip {
		c.pc += 4
	} else {
		c.pc += 2
	}
}

// call pushes the address of the call site and jumps. RET pops it and
// advances past the call.
func (c *Chip8) call(nnn uint16) error {
	if len(c.stack) == StackDepth {
		return fmt.Errorf("%w: CALL at %#04x exceeds depth %d", ErrStackOverflow, c.pc, StackDepth)
	}
	c.stack = append(c.stack, c.pc)
	c.sp++
	c.pc = nnn
	return nil
}

func (c *Chip8) ret() error {
	if len(c.stack) == 0 {
		return fmt.Errorf("%w: RET at %#04x with empty stack", ErrStackUnderflow, c.pc)
	}
	c.pc = c.stack[len(c.stack)-1] + 2
	c.stack = c.stack[:len(c.stack)-1]
	c.sp--
	return nil
}

// alu handles the 8xyn family. All operations work on 8-bit lanes with wrap
// semantics. The flag write is the last side effect, so for x == 0xF the
// flag value is what remains in VF.
func (c *Chip8) alu(op opcode) error {
	x := &c.v[op.x]
	y := c.v[op.y]

	switch op.n {
	case 0x0: // LD Vx, Vy
		*x = y
	case 0x1: // OR Vx, Vy
		*x |= y
	case 0x2: // AND Vx, Vy
		*x &= y
	case 0x3: // XOR Vx, Vy
		*x ^= y
	case 0x4: // ADD Vx, Vy
		sum := uint16(*x) + uint16(y)
		*x = byte(sum)
		c.v[0xF] = flag(sum > 0xFF)
	case 0x5: // SUB Vx, Vy
		noBorrow := *x >= y
		*x -= y
		c.v[0xF] = flag(noBorrow)
	case 0x6: // SHR Vx
		src := *x
		if c.compat.ShiftUsesVy {
			src = y
		}
		*x = src >> 1
		c.v[0xF] = src & 1
	case 0x7: // SUBN Vx, Vy
		noBorrow := y >= *x
		*x = y - *x
		c.v[0xF] = flag(noBorrow)
	case 0xE: // SHL Vx
		src := *x
		if c.compat.ShiftUsesVy {
			src = y
		}
		*x = src << 1
		c.v[0xF] = src >> 7
	default:
		return c.decodeFault(op)
	}
	c.pc += 2
	return nil
}

// draw XORs an n-byte sprite read from RAM at I onto the framebuffer at
// (Vx, Vy), wrapping both axes. VF is set exactly once, after all pixels are
// written, to 1 if any set sprite bit landed on a lit pixel.
func (c *Chip8) draw(op opcode) {
	px := int(c.v[op.x])
	py := int(c.v[op.y])
	collision := false

	for row := 0; row < int(op.n); row++ {
		bits := c.memory[(c.i+uint16(row))&AddressMask]
		sy := (py + row) % FrameHeight
		for col := 0; col < 8; col++ {
			bit := bits>>(7-col)&1 == 1
			sx := (px + col) % FrameWidth
			old := c.screen[sy][sx]
			c.screen[sy][sx] = old != bit
			if old && bit {
				collision = true
			}
		}
	}

	c.v[0xF] = flag(collision)
	c.pc += 2
}

// key handles the Exkk family, testing the low nibble of Vx against the
// held-key set.
func (c *Chip8) key(op opcode) error {
	switch op.kk {
	case 0x9E: // SKP Vx
		c.skipIf(c.keypad.pressed(c.v[op.x] & 0xF))
	case 0xA1: // SKNP Vx
		c.skipIf(!c.keypad.pressed(c.v[op.x] & 0xF))
	default:
		return c.decodeFault(op)
	}
	return nil
}

// misc handles the Fxkk family: timers, the key wait, and the I-relative
// memory operations.
func (c *Chip8) misc(op opcode) error {
	switch op.kk {
	case 0x07: // LD Vx, DT
		c.v[op.x] = c.dt

	case 0x0A: // LD Vx, K
		key, ok := c.keypad.takeEdge()
		if !ok {
			// No key edge yet: leave PC in place so the instruction
			// re-executes on the next step. Timers keep ticking.
			return nil
		}
		c.v[op.x] = key

	case 0x15: // LD DT, Vx
		c.dt = c.v[op.x]

	case 0x18: // LD ST, Vx
		c.setSoundTimer(c.v[op.x])

	case 0x1E: // ADD I, Vx - wraps at 16 bits, no flag
		c.i += uint16(c.v[op.x])

	case 0x29: // LD F, Vx - font glyph address
		c.i = uint16(c.v[op.x]&0xF) * glyphSize

	case 0x33: // LD B, Vx - BCD digits at I, I+1, I+2
		value := c.v[op.x]
		c.memory[c.i&AddressMask] = value / 100
		c.memory[(c.i+1)&AddressMask] = value / 10 % 10
		c.memory[(c.i+2)&AddressMask] = value % 10

	case 0x55: // LD [I], Vx - store V0..Vx
		for r := byte(0); r <= op.x; r++ {
			c.memory[(c.i+uint16(r))&AddressMask] = c.v[r]
		}
		if c.compat.LoadStoreAdvancesI {
			c.i += uint16(op.x) + 1
		}

	case 0x65: // LD Vx, [I] - load V0..Vx
		for r := byte(0); r <= op.x; r++ {
			c.v[r] = c.memory[(c.i+uint16(r))&AddressMask]
		}
		if c.compat.LoadStoreAdvancesI {
			c.i += uint16(op.x) + 1
		}

	default:
		return c.decodeFault(op)
	}
	c.pc += 2
	return nil
}

func (c *Chip8) decodeFault(op opcode) error {
	return fmt.Errorf("%w %#04x at %#04x", ErrUnknownOpcode, op.word, c.pc)
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
