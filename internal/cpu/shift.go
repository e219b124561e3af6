package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// shiftLeftArithmetic shifts n left into carry. The least significant bit
// is reset.
func shiftLeftArithmetic(n, _ uint8) (uint8, bool) {
	return n << 1, n&bits.Bit7 != 0
}

// shiftRightArithmetic shifts n right into carry. The most significant bit
// keeps its value.
func shiftRightArithmetic(n, _ uint8) (uint8, bool) {
	return n>>1 | n&bits.Bit7, n&bits.Bit0 != 0
}

// shiftRightLogical shifts n right into carry. The most significant bit is
// reset.
func shiftRightLogical(n, _ uint8) (uint8, bool) {
	return n >> 1, n&bits.Bit0 != 0
}

// Sla shifts n left into carry.
//
//	SLA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) Sla(arg Operand) error { return c.rotate("SLA", arg, shiftLeftArithmetic) }

// Sra shifts n right into carry, preserving the sign bit.
//
//	SRA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) Sra(arg Operand) error { return c.rotate("SRA", arg, shiftRightArithmetic) }

// Srl shifts n right into carry, zero-filling bit 7.
//
//	SRL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) Srl(arg Operand) error { return c.rotate("SRL", arg, shiftRightLogical) }

// Swap exchanges the upper and lower nibbles of n.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) Swap(arg Operand) error {
	return c.rotate("SWAP", arg, func(n, _ uint8) (uint8, bool) {
		return bits.SwapNibbles(n), false
	})
}
