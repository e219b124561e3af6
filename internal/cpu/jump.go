package cpu

// Jp jumps to the resolved target.
//
//	JP nn
//	JP HL
func (c *CPU) Jp(target Operand) error {
	address, err := c.resolve16("JP", target)
	if err != nil {
		return err
	}
	c.jump(address)
	return nil
}

// JpFlag jumps to target if the condition holds.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C
func (c *CPU) JpFlag(cond, target Operand) error {
	return c.conditional(cond, func() error { return c.Jp(target) })
}

// Jr adds a signed byte to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) Jr(offset Operand) error {
	e, err := c.resolve8("JR", offset)
	if err != nil {
		return err
	}
	c.jump(c.pc + uint16(int16(int8(e))))
	return nil
}

// JrFlag performs Jr if the condition holds.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
func (c *CPU) JrFlag(cond, offset Operand) error {
	return c.conditional(cond, func() error { return c.Jr(offset) })
}

// Call pushes the address of the instruction following a 3-byte
// call and jumps to target.
//
//	CALL nn
func (c *CPU) Call(target Operand) error {
	address, err := c.resolve16("CALL", target)
	if err != nil {
		return err
	}
	c.pushStack(c.pc + 3)
	c.jump(address)
	return nil
}

// CallFlag performs Call if the condition holds.
//
//	CALL cc, nn
//	cc = NZ, Z, NC, C
func (c *CPU) CallFlag(cond, target Operand) error {
	return c.conditional(cond, func() error { return c.Call(target) })
}

// Rst pushes the current PC and jumps to a fixed low-memory vector.
//
//	RST n
//	n = 00H, 08H, 10H, 18H, 20H, 28H, 30H, 38H
func (c *CPU) Rst(vector Operand) error {
	n, err := c.Literal(vector)
	if err != nil {
		return err
	}
	c.pushStack(c.pc)
	c.jump(uint16(n))
	return nil
}

// Ret pops the return address into PC.
//
//	RET
func (c *CPU) Ret() error {
	c.jump(c.popStack())
	return nil
}

// RetFlag performs Ret if the condition holds.
//
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) RetFlag(cond Operand) error {
	return c.conditional(cond, c.Ret)
}

// Reti returns and re-enables interrupt delivery.
//
//	RETI
func (c *CPU) Reti() error {
	c.raise(SignalReturnFromInterrupt)
	return c.Ret()
}

// conditional runs fn only when cond holds. A false condition leaves
// PC, SP and the bus untouched.
func (c *CPU) conditional(cond Operand, fn func() error) error {
	ok, err := c.Test(cond)
	if err != nil || !ok {
		return err
	}
	return fn()
}

// Interrupt pushes PC and jumps to an interrupt vector. It is called
// between instructions, when PC already addresses the next opcode.
func (c *CPU) Interrupt(vector uint16) {
	c.pushStack(c.pc)
	c.pc = vector
}
