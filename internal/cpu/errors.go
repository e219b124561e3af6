package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperand is the only failure of the instruction
	// semantics: an operand of the wrong kind or width was passed
	// to a slot. It always points at a bug in the caller.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrIllegalOpcode is returned by Step for the opcodes the
	// SM83 leaves undefined.
	ErrIllegalOpcode = errors.New("illegal opcode")
)

// OperandError describes a rejected operand.
type OperandError struct {
	Op      string  // routine or accessor that rejected the operand
	Operand Operand // the offending operand
	Reason  string
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Operand, ErrInvalidOperand, e.Reason)
}

func (e *OperandError) Unwrap() error {
	return ErrInvalidOperand
}

func invalid(op string, o Operand, format string, args ...interface{}) error {
	return &OperandError{Op: op, Operand: o, Reason: fmt.Sprintf(format, args...)}
}

// OpcodeError describes an opcode the decode tables cannot execute.
type OpcodeError struct {
	Opcode uint8
	CB     bool
	PC     uint16
}

func (e *OpcodeError) Error() string {
	if e.CB {
		return fmt.Sprintf("%s CB %02X at %04X", ErrIllegalOpcode, e.Opcode, e.PC)
	}
	return fmt.Sprintf("%s %02X at %04X", ErrIllegalOpcode, e.Opcode, e.PC)
}

func (e *OpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}
