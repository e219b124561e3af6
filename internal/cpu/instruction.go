package cpu

import (
	"fmt"
	"regexp"
)

// Instruction is a compiled instruction: a mnemonic bound to the
// routine that executes it.
type Instruction struct {
	name     string
	mnemonic string
	operands []Operand
	length   uint8
	fn       func(c *CPU) error
}

// Name returns the canonical mnemonic, e.g. "LD A,(HL)".
func (i Instruction) Name() string {
	return i.name
}

// Mnemonic returns the bare mnemonic, e.g. "LD".
func (i Instruction) Mnemonic() string {
	return i.mnemonic
}

// Operands returns the operand descriptors bound to the instruction.
func (i Instruction) Operands() []Operand {
	return i.operands
}

// Length returns the encoded length of the instruction in bytes.
func (i Instruction) Length() uint8 {
	return i.length
}

// Defined reports whether the instruction has a routine bound to it.
func (i Instruction) Defined() bool {
	return i.fn != nil
}

// Execute runs the instruction against c. PC is left where the
// routine put it; advancing past the instruction is the job of Step.
func (i Instruction) Execute(c *CPU) error {
	if i.fn == nil {
		return fmt.Errorf("%w: %s", ErrIllegalOpcode, i.name)
	}
	return i.fn(c)
}

// Format renders the instruction with its immediate operands replaced
// by the values read from bus, given the instruction starts at pc.
func (i Instruction) Format(bus Bus, pc uint16) string {
	return immediatePattern.ReplaceAllStringFunc(i.name, func(tok string) string {
		if tok == "nn" {
			return fmt.Sprintf("$%04X", uint16(bus.ReadByte(pc+1))|uint16(bus.ReadByte(pc+2))<<8)
		}
		return fmt.Sprintf("$%02X", bus.ReadByte(pc+1))
	})
}

var immediatePattern = regexp.MustCompile(`\bnn?\b`)
