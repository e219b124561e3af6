package cpu

// Ld copies the value of src into dst.
//
//	LD r, r'    LD r, n    LD r, (HL)   LD (HL), r
//	LD (rr), A  LD A, (nn) LD rr, nn    LD SP, HL
//
// Flags affected: none.
func (c *CPU) Ld(dst, src Operand) error {
	v, err := c.Resolve(src)
	if err != nil {
		return err
	}
	return c.Store(dst, v)
}

// Ldi performs Ld and then increments HL.
//
//	LD (HL+), A
//	LD A, (HL+)
func (c *CPU) Ldi(dst, src Operand) error {
	return c.ldAdjust("LDI", dst, src, 1)
}

// Ldd performs Ld and then decrements HL.
//
//	LD (HL-), A
//	LD A, (HL-)
func (c *CPU) Ldd(dst, src Operand) error {
	return c.ldAdjust("LDD", dst, src, 0xFFFF)
}

func (c *CPU) ldAdjust(op string, dst, src Operand, delta uint16) error {
	if !dst.isIndirectHL() && !src.isIndirectHL() {
		return c.reject(invalid(op, dst, "neither operand is (HL)"))
	}
	if err := c.Ld(dst, src); err != nil {
		return err
	}
	c.setReg16(HL, c.Reg16(HL)+delta)
	return nil
}

// Ldhl loads HL with base plus the signed byte offset.
//
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) Ldhl(base, offset Operand) error {
	e, err := c.resolve8("LDHL", offset)
	if err != nil {
		return err
	}
	b, err := c.resolve16("LDHL", base)
	if err != nil {
		return err
	}
	if err := c.Ld(Reg(HL), base.Offset(int16(int8(e)))); err != nil {
		return err
	}
	c.setSignedOffsetFlags(b, e)
	return nil
}

// Ldh moves a byte between A and the high page $FF00-$FFFF. The
// memory side is an indirect byte operand, (n) or (C), whose value is
// the offset into the page.
//
//	LDH (n), A    LDH A, (n)
//	LD (C), A     LD A, (C)
//
// Flags affected: none.
func (c *CPU) Ldh(dst, src Operand) error {
	switch {
	case src.indirect && !dst.indirect:
		address, err := c.highPage(src)
		if err != nil {
			return err
		}
		return c.Store(dst, Byte(c.bus.ReadByte(address)))
	case dst.indirect && !src.indirect:
		v, err := c.resolve8("LDH", src)
		if err != nil {
			return err
		}
		address, err := c.highPage(dst)
		if err != nil {
			return err
		}
		c.bus.WriteByte(address, v)
		return nil
	}
	return c.reject(invalid("LDH", dst, "exactly one operand must be indirect"))
}

func (c *CPU) highPage(o Operand) (uint16, error) {
	n, err := c.resolve8("LDH", o.direct())
	if err != nil {
		return 0, err
	}
	return 0xFF00 | uint16(n), nil
}

// LdWord stores a 16-bit value little-endian at an indirect address.
//
//	LD (nn), SP
//
// Flags affected: none.
func (c *CPU) LdWord(dst, src Operand) error {
	if !dst.indirect {
		return c.reject(invalid("LD16", dst, "destination must be indirect"))
	}
	v, err := c.resolve16("LD16", src)
	if err != nil {
		return err
	}
	if err := c.Store(dst, Byte(uint8(v))); err != nil {
		return err
	}
	return c.Store(dst.Offset(1), Byte(uint8(v>>8)))
}
