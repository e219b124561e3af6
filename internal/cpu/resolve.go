package cpu

// Resolve reads the value an operand describes. Registers and
// immediates resolve at their natural width, literals resolve to the
// embedded value, and indirect operands read a single byte from the
// bus at the base address plus displacement.
func (c *CPU) Resolve(o Operand) (Value, error) {
	if o.indirect {
		address, err := c.address(o)
		if err != nil {
			return Value{}, err
		}
		return Byte(c.bus.ReadByte(address)), nil
	}

	var v Value
	switch o.kind {
	case KindRegister:
		var err error
		if v, err = c.Read(o.reg); err != nil {
			return Value{}, c.reject(err)
		}
	case KindImmediateByte:
		v = Byte(c.bus.ReadByte(c.pc + 1))
	case KindImmediateWord:
		v = Word(uint16(c.bus.ReadByte(c.pc+1)) | uint16(c.bus.ReadByte(c.pc+2))<<8)
	case KindByteLiteral:
		v = Byte(o.literal)
	case KindHighByteLiteral:
		v = Word(uint16(o.literal))
	case KindFlagTest, KindNegatedFlagTest:
		return Value{}, c.reject(invalid("Resolve", o, "flag test is not a value"))
	default:
		return Value{}, c.reject(invalid("Resolve", o, "empty operand"))
	}

	if o.displacement != 0 {
		if v.width != WidthWord {
			return Value{}, c.reject(invalid("Resolve", o, "displacement on a %s operand", v.width))
		}
		v.raw += uint16(o.displacement)
	}
	return v, nil
}

// Store writes v through an operand. Only registers and indirect
// operands can be stored to; indirect stores write a single byte.
func (c *CPU) Store(o Operand, v Value) error {
	if o.indirect {
		// the address is recomputed rather than cached so that HL
		// adjustments made after a previous resolve are observed
		address, err := c.address(o)
		if err != nil {
			return err
		}
		b, err := v.Uint8()
		if err != nil {
			return c.reject(invalid("Store", o, "cannot write a %s to memory", v.width))
		}
		c.bus.WriteByte(address, b)
		return nil
	}

	if o.kind != KindRegister {
		return c.reject(invalid("Store", o, "not a register"))
	}
	if o.displacement != 0 {
		return c.reject(invalid("Store", o, "displacement on a register target"))
	}
	if err := c.Write(o.reg, v); err != nil {
		return c.reject(err)
	}
	if o.reg == PC {
		c.branched = true
	}
	return nil
}

// storable checks that Store would accept a value of width w through
// o. Routines that set flags or move SP call it first, so a rejected
// destination leaves every register untouched.
func (c *CPU) storable(op string, o Operand, w Width) error {
	if o.indirect {
		if w != WidthByte {
			return c.reject(invalid(op, o, "cannot write a %s to memory", w))
		}
		_, err := c.address(o)
		return err
	}
	if o.kind != KindRegister {
		return c.reject(invalid(op, o, "not a register"))
	}
	if o.displacement != 0 {
		return c.reject(invalid(op, o, "displacement on a register target"))
	}
	if o.reg >= registerCount || o.reg.Width() != w {
		return c.reject(invalid(op, o, "cannot write a %s to %s", w, o.reg))
	}
	return nil
}

// Test evaluates a flag-test operand.
func (c *CPU) Test(o Operand) (bool, error) {
	if o.indirect || !o.flag.valid() {
		return false, c.reject(invalid("Test", o, "malformed condition"))
	}
	switch o.kind {
	case KindFlagTest:
		return c.CheckFlag(o.flag), nil
	case KindNegatedFlagTest:
		return !c.CheckFlag(o.flag), nil
	}
	return false, c.reject(invalid("Test", o, "not a flag test"))
}

// Literal returns the value embedded in a literal operand.
func (c *CPU) Literal(o Operand) (uint8, error) {
	if o.indirect {
		return 0, c.reject(invalid("Literal", o, "literal cannot be indirect"))
	}
	switch o.kind {
	case KindByteLiteral, KindHighByteLiteral:
		return o.literal, nil
	}
	return 0, c.reject(invalid("Literal", o, "not a literal"))
}

// address computes the bus address of an indirect operand by
// resolving it as a direct operand and applying its displacement.
func (c *CPU) address(o Operand) (uint16, error) {
	base := o.direct()
	base.displacement = 0
	v, err := c.Resolve(base)
	if err != nil {
		return 0, err
	}
	if v.width != WidthWord {
		return 0, c.reject(invalid("address", o, "indirect base is a %s", v.width))
	}
	return v.raw + uint16(o.displacement), nil
}

// resolve8 resolves an operand that must be a byte.
func (c *CPU) resolve8(op string, o Operand) (uint8, error) {
	v, err := c.Resolve(o)
	if err != nil {
		return 0, err
	}
	if v.width != WidthByte {
		return 0, c.reject(invalid(op, o, "expected a byte operand"))
	}
	return uint8(v.raw), nil
}

// resolve16 resolves an operand that must be a word.
func (c *CPU) resolve16(op string, o Operand) (uint16, error) {
	v, err := c.Resolve(o)
	if err != nil {
		return 0, err
	}
	if v.width != WidthWord {
		return 0, c.reject(invalid(op, o, "expected a word operand"))
	}
	return v.raw, nil
}
