package cpu

import "fmt"

// Width is the size of a value in bytes.
type Width uint8

const (
	WidthByte Width = 1
	WidthWord Width = 2
)

func (w Width) String() string {
	switch w {
	case WidthByte:
		return "byte"
	case WidthWord:
		return "word"
	}
	return fmt.Sprintf("Width(%d)", uint8(w))
}

// Value is the tagged result of reading a register or operand: either
// an 8-bit byte or a 16-bit word, never both. The zero Value is an
// invalid value of no width.
type Value struct {
	width Width
	raw   uint16
}

// Byte returns an 8-bit Value.
func Byte(b uint8) Value {
	return Value{width: WidthByte, raw: uint16(b)}
}

// Word returns a 16-bit Value.
func Word(w uint16) Value {
	return Value{width: WidthWord, raw: w}
}

// Width returns the width of the value.
func (v Value) Width() Width {
	return v.width
}

// Uint8 returns the byte held by v, failing if v is a word.
func (v Value) Uint8() (uint8, error) {
	if v.width != WidthByte {
		return 0, invalid("Uint8", Operand{}, "value %s is a %s", v, v.width)
	}
	return uint8(v.raw), nil
}

// Uint16 returns the word held by v, failing if v is a byte.
func (v Value) Uint16() (uint16, error) {
	if v.width != WidthWord {
		return 0, invalid("Uint16", Operand{}, "value %s is a %s", v, v.width)
	}
	return v.raw, nil
}

// ZeroExtend widens a byte to a word. Words are returned unchanged.
func (v Value) ZeroExtend() Value {
	if v.width == WidthByte {
		return Word(v.raw)
	}
	return v
}

// SignExtend widens a byte to a word, treating the byte as
// two's complement. Words are returned unchanged.
func (v Value) SignExtend() Value {
	if v.width == WidthByte {
		return Word(uint16(int16(int8(v.raw))))
	}
	return v
}

func (v Value) String() string {
	switch v.width {
	case WidthByte:
		return fmt.Sprintf("$%02X", v.raw)
	case WidthWord:
		return fmt.Sprintf("$%04X", v.raw)
	}
	return "<invalid>"
}
