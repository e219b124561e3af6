package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// bitIndex resolves a bit position operand, which must be a byte
// literal between 0 and 7.
func (c *CPU) bitIndex(op string, pos Operand) (uint8, error) {
	if pos.kind != KindByteLiteral {
		return 0, c.reject(invalid(op, pos, "bit position must be a byte literal"))
	}
	b, err := c.Literal(pos)
	if err != nil {
		return 0, err
	}
	if b > 7 {
		return 0, c.reject(invalid(op, pos, "bit position %d out of range", b))
	}
	return b, nil
}

// Bit tests the bit at the given position in the given value.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of Register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) Bit(pos, val Operand) error {
	b, err := c.bitIndex("BIT", pos)
	if err != nil {
		return err
	}
	v, err := c.resolve8("BIT", val)
	if err != nil {
		return err
	}
	c.SetFlags(!bits.Test(v, b), false, true, c.CheckFlag(FlagCarry))
	return nil
}

// Set sets the bit at the given position in the given value.
//
//	SET n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected: none.
func (c *CPU) Set(pos, val Operand) error {
	return c.modifyBit("SET", pos, val, bits.Set)
}

// Res resets the bit at the given position in the given value.
//
//	RES n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected: none.
func (c *CPU) Res(pos, val Operand) error {
	return c.modifyBit("RES", pos, val, bits.Reset)
}

func (c *CPU) modifyBit(op string, pos, val Operand, fn func(b, i uint8) uint8) error {
	b, err := c.bitIndex(op, pos)
	if err != nil {
		return err
	}
	v, err := c.resolve8(op, val)
	if err != nil {
		return err
	}
	return c.Store(val, Byte(fn(v, b)))
}
