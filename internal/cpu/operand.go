package cpu

import "fmt"

// Kind is the addressing mode of an Operand.
type Kind uint8

const (
	kindNone Kind = iota
	// KindRegister accesses a register directly.
	KindRegister
	// KindImmediateByte is the byte at PC+1.
	KindImmediateByte
	// KindImmediateWord is the little-endian word at PC+1.
	KindImmediateWord
	// KindFlagTest is a condition that holds when a flag is set.
	KindFlagTest
	// KindNegatedFlagTest is a condition that holds when a flag is clear.
	KindNegatedFlagTest
	// KindByteLiteral is a bit index for BIT, SET and RES.
	KindByteLiteral
	// KindHighByteLiteral is a fixed low-memory vector used by RST.
	KindHighByteLiteral
)

// Operand describes one instruction argument. Operands are small
// immutable values built fresh for each dispatch.
type Operand struct {
	kind         Kind
	reg          Register
	flag         Flag
	literal      uint8
	indirect     bool
	displacement int16
}

// Reg returns an operand that accesses register r.
func Reg(r Register) Operand {
	return Operand{kind: KindRegister, reg: r}
}

// ImmediateByte returns an operand for the byte following the opcode.
func ImmediateByte() Operand {
	return Operand{kind: KindImmediateByte}
}

// ImmediateWord returns an operand for the word following the opcode.
func ImmediateWord() Operand {
	return Operand{kind: KindImmediateWord}
}

// FlagTest returns a condition that holds when f is set.
func FlagTest(f Flag) Operand {
	return Operand{kind: KindFlagTest, flag: f}
}

// NegatedFlagTest returns a condition that holds when f is clear.
func NegatedFlagTest(f Flag) Operand {
	return Operand{kind: KindNegatedFlagTest, flag: f}
}

// ByteLiteral returns a bit index operand.
func ByteLiteral(b uint8) Operand {
	return Operand{kind: KindByteLiteral, literal: b}
}

// HighByteLiteral returns a restart vector operand.
func HighByteLiteral(h uint8) Operand {
	return Operand{kind: KindHighByteLiteral, literal: h}
}

// Indirect returns a copy of o that is read and written through
// the bus at the address o would otherwise produce.
func (o Operand) Indirect() Operand {
	o.indirect = true
	return o
}

// Offset returns a copy of o with d added to its displacement.
func (o Operand) Offset(d int16) Operand {
	o.displacement += d
	return o
}

// Kind returns the addressing mode of o.
func (o Operand) Kind() Kind {
	return o.kind
}

// Register returns the register of a KindRegister operand.
func (o Operand) Register() (Register, bool) {
	return o.reg, o.kind == KindRegister
}

// IsIndirect reports whether o is accessed through the bus.
func (o Operand) IsIndirect() bool {
	return o.indirect
}

// Displacement returns the signed displacement of o.
func (o Operand) Displacement() int16 {
	return o.displacement
}

// direct returns o without its memory indirection.
func (o Operand) direct() Operand {
	o.indirect = false
	return o
}

// Width returns the width of the value o resolves to.
func (o Operand) Width() Width {
	if o.indirect {
		return WidthByte
	}
	switch o.kind {
	case KindRegister:
		return o.reg.Width()
	case KindImmediateWord, KindHighByteLiteral:
		return WidthWord
	}
	return WidthByte
}

// isIndirectHL reports whether o is (HL), with or without displacement.
func (o Operand) isIndirectHL() bool {
	return o.indirect && o.kind == KindRegister && o.reg == HL
}

// String renders o in the mnemonic syntax understood by ParseOperand.
func (o Operand) String() string {
	var s string
	switch o.Kind() {
	case KindRegister:
		s = o.reg.String()
	case KindImmediateByte:
		s = "n"
	case KindImmediateWord:
		s = "nn"
	case KindFlagTest:
		s = o.flag.String()
	case KindNegatedFlagTest:
		s = "N" + o.flag.String()
	case KindByteLiteral:
		s = fmt.Sprintf("%d", o.literal)
	case KindHighByteLiteral:
		s = fmt.Sprintf("%02XH", o.literal)
	default:
		return "-"
	}
	switch d := o.Displacement(); {
	case d > 0:
		s += fmt.Sprintf("+%d", d)
	case d < 0:
		s += fmt.Sprintf("%d", d)
	}
	if o.IsIndirect() {
		s = "(" + s + ")"
	}
	return s
}
