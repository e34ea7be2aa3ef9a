package chip8

import "errors"

// Machine faults. A fault latches the machine: Step keeps returning it
// until the host calls Reset or loads a new ROM.
var (
	// ErrROMTooLarge is returned by Load for images that do not fit the
	// user program space.
	ErrROMTooLarge = errors.New("ROM exceeds program memory")

	// ErrUnknownOpcode is returned for undefined opcodes in the
	// 0x8, 0xE and 0xF instruction families.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrStackOverflow is returned for a CALL at the maximum call depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned for a RET with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
)
