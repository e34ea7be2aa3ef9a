package chip8

import (
	chip8lib "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcode holds the canonical fields of a 16-bit instruction word. All
// decoding is per-nibble: op selects the handler family, the remaining
// fields are interpreted per instruction.
type opcode struct {
	word uint16

	op  byte   // top nibble, selects the dispatch family
	x   byte   // second nibble, usually a Vx register index
	y   byte   // third nibble, usually a Vy register index
	n   byte   // low nibble
	kk  byte   // low byte
	nnn uint16 // low 12 bits, an address
}

// decode splits an instruction word into its canonical fields.
func decode(word uint16) opcode {
	return opcode{
		word: word,
		op:   byte(word >> 12),
		x:    byte(word >> 8 & 0xF),
		y:    byte(word >> 4 & 0xF),
		n:    byte(word & 0xF),
		kk:   byte(word & 0xFF),
		nnn:  word & 0xFFF,
	}
}

// mnemonic resolves the instruction name of the word against the published
// CHIP-8 opcode tables. It returns an empty string for undefined opcodes.
func (o opcode) mnemonic() string {
	for _, row := range chip8lib.Opcodes[int(o.op)] {
		if row.Info.Mask&o.word == row.Info.Value && row.Instruction != nil {
			return row.Instruction.Name
		}
	}
	return ""
}
