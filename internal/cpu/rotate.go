package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// rotateLeftCarry rotates n left by 1 bit. The most significant bit is copied
// to both the carry flag and the least significant bit.
func rotateLeftCarry(n, _ uint8) (uint8, bool) {
	return n<<1 | n>>7, n&bits.Bit7 != 0
}

// rotateRightCarry rotates n right by 1 bit. The least significant bit is
// copied to both the carry flag and the most significant bit.
func rotateRightCarry(n, _ uint8) (uint8, bool) {
	return n>>1 | n<<7, n&bits.Bit0 != 0
}

// rotateLeftThroughCarry rotates n left by 1 bit. The carry flag is copied to
// the least significant bit, and the most significant bit is copied to the
// carry flag.
func rotateLeftThroughCarry(n, carry uint8) (uint8, bool) {
	return n<<1 | carry, n&bits.Bit7 != 0
}

// rotateRightThroughCarry rotates n right by 1 bit. The carry flag is copied
// to the most significant bit, and the least significant bit is copied to the
// carry flag.
func rotateRightThroughCarry(n, carry uint8) (uint8, bool) {
	return n>>1 | carry<<7, n&bits.Bit0 != 0
}

// rotation computes a shifted value and the bit shifted out.
type rotation func(n, carry uint8) (uint8, bool)

// rotateA rotates the A Register.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit shifted out.
func (c *CPU) rotateA(fn rotation) error {
	result, carry := fn(c.Reg8(A), c.carry())
	c.setReg8(A, result)
	c.SetFlags(false, false, false, carry)
	return nil
}

// rotate applies fn to arg and writes the result back.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit shifted out.
func (c *CPU) rotate(op string, arg Operand, fn rotation) error {
	n, err := c.resolve8(op, arg)
	if err != nil {
		return err
	}
	if err := c.storable(op, arg, WidthByte); err != nil {
		return err
	}
	result, carry := fn(n, c.carry())
	c.SetFlags(result == 0, false, false, carry)
	return c.Store(arg, Byte(result))
}

// Rlca rotates A left, bit 7 to carry and bit 0.
//
//	RLCA
func (c *CPU) Rlca() error { return c.rotateA(rotateLeftCarry) }

// Rla rotates A left through the carry flag.
//
//	RLA
func (c *CPU) Rla() error { return c.rotateA(rotateLeftThroughCarry) }

// Rrca rotates A right, bit 0 to carry and bit 7.
//
//	RRCA
func (c *CPU) Rrca() error { return c.rotateA(rotateRightCarry) }

// Rra rotates A right through the carry flag.
//
//	RRA
func (c *CPU) Rra() error { return c.rotateA(rotateRightThroughCarry) }

// Rlc rotates n left, bit 7 to carry and bit 0.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
func (c *CPU) Rlc(arg Operand) error { return c.rotate("RLC", arg, rotateLeftCarry) }

// Rl rotates n left through the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
func (c *CPU) Rl(arg Operand) error { return c.rotate("RL", arg, rotateLeftThroughCarry) }

// Rrc rotates n right, bit 0 to carry and bit 7.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
func (c *CPU) Rrc(arg Operand) error { return c.rotate("RRC", arg, rotateRightCarry) }

// Rr rotates n right through the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
func (c *CPU) Rr(arg Operand) error { return c.rotate("RR", arg, rotateRightThroughCarry) }
