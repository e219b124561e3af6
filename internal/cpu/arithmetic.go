package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// Add adds src to dst. The width of dst selects the computation: an
// 8-bit wrapping sum, or a 16-bit wrapping sum with a byte src
// zero-extended first.
//
//	ADD A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) Add(dst, src Operand) error {
	if dst.Width() == WidthWord {
		a, err := c.resolve16("ADD", dst)
		if err != nil {
			return err
		}
		v, err := c.Resolve(src)
		if err != nil {
			return err
		}
		b := v.ZeroExtend().raw
		if err := c.storable("ADD", dst, WidthWord); err != nil {
			return err
		}
		c.SetFlags(c.CheckFlag(FlagZero), false, bits.HalfCarryAdd16(a, b), bits.CarryAdd16(a, b))
		return c.Store(dst, Word(a+b))
	}
	return c.add8("ADD", dst, src, 0)
}

// Adc adds src and the carry flag to dst. Only the 8-bit form exists.
//
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) Adc(dst, src Operand) error {
	return c.add8("ADC", dst, src, c.carry())
}

func (c *CPU) add8(op string, dst, src Operand, carry uint8) error {
	a, err := c.resolve8(op, dst)
	if err != nil {
		return err
	}
	b, err := c.resolve8(op, src)
	if err != nil {
		return err
	}
	if err := c.storable(op, dst, WidthByte); err != nil {
		return err
	}
	sum := a + b + carry
	c.SetFlags(sum == 0, false, bits.HalfCarryAdd(a, b, carry), bits.CarryAdd(a, b, carry))
	return c.Store(dst, Byte(sum))
}

// Sub subtracts n from the A Register.
//
//	SUB n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) Sub(src Operand) error {
	return c.sub8("SUB", Reg(A), src, 0, true)
}

// Sbc subtracts src and the carry flag from dst.
//
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) Sbc(dst, src Operand) error {
	return c.sub8("SBC", dst, src, c.carry(), true)
}

// sub8 computes dst - src - carry and sets the flags. The result is
// only written back when store is set, which lets CP share it.
func (c *CPU) sub8(op string, dst, src Operand, carry uint8, store bool) error {
	a, err := c.resolve8(op, dst)
	if err != nil {
		return err
	}
	b, err := c.resolve8(op, src)
	if err != nil {
		return err
	}
	if store {
		if err := c.storable(op, dst, WidthByte); err != nil {
			return err
		}
	}
	diff := a - b - carry
	c.SetFlags(diff == 0, true, bits.HalfBorrowSub(a, b, carry), bits.BorrowSub(a, b, carry))
	if !store {
		return nil
	}
	return c.Store(dst, Byte(diff))
}

// Inc increments arg by 1.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
//
//	INC nn
//	nn = BC, DE, HL, SP
//
// Flags affected: none.
func (c *CPU) Inc(arg Operand) error {
	if arg.Width() == WidthWord {
		v, err := c.resolve16("INC", arg)
		if err != nil {
			return err
		}
		return c.Store(arg, Word(v+1))
	}

	v, err := c.resolve8("INC", arg)
	if err != nil {
		return err
	}
	if err := c.storable("INC", arg, WidthByte); err != nil {
		return err
	}
	result := v + 1
	c.SetFlags(result == 0, false, bits.HalfCarryAdd(v, 1, 0), c.CheckFlag(FlagCarry))
	return c.Store(arg, Byte(result))
}

// Dec decrements arg by 1.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
//
//	DEC nn
//	nn = BC, DE, HL, SP
//
// Flags affected: none.
func (c *CPU) Dec(arg Operand) error {
	if arg.Width() == WidthWord {
		v, err := c.resolve16("DEC", arg)
		if err != nil {
			return err
		}
		return c.Store(arg, Word(v-1))
	}

	v, err := c.resolve8("DEC", arg)
	if err != nil {
		return err
	}
	if err := c.storable("DEC", arg, WidthByte); err != nil {
		return err
	}
	result := v - 1
	c.SetFlags(result == 0, true, bits.HalfBorrowSub(v, 1, 0), c.CheckFlag(FlagCarry))
	return c.Store(arg, Byte(result))
}

// AddSP adds a signed byte to the stack pointer.
//
//	ADD SP, e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) AddSP(offset Operand) error {
	e, err := c.resolve8("ADD SP", offset)
	if err != nil {
		return err
	}
	sp := c.sp
	c.sp = sp + uint16(int16(int8(e)))
	c.setSignedOffsetFlags(sp, e)
	return nil
}

// setSignedOffsetFlags sets the flags of SP+e arithmetic, which are
// computed on the unsigned low byte.
func (c *CPU) setSignedOffsetFlags(base uint16, e uint8) {
	c.SetFlags(false, false, bits.HalfCarryAdd(uint8(base), e, 0), bits.CarryAdd(uint8(base), e, 0))
}

// Daa decimal adjusts the A Register after a BCD addition or
// subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) Daa() error {
	a := c.Reg8(A)
	carry := c.CheckFlag(FlagCarry)
	if !c.CheckFlag(FlagSubtract) {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if c.CheckFlag(FlagHalfCarry) || a&0xF > 0x9 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if c.CheckFlag(FlagHalfCarry) {
			a -= 0x06
		}
	}
	c.setReg8(A, a)
	c.SetFlags(a == 0, c.CheckFlag(FlagSubtract), false, carry)
	return nil
}

// Cpl complements the A Register.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func (c *CPU) Cpl() error {
	c.setReg8(A, ^c.Reg8(A))
	c.SetFlag(FlagSubtract)
	c.SetFlag(FlagHalfCarry)
	return nil
}
