package cpu

// pushStack pushes a 16 bit value onto the stack, high byte at SP-1
// and low byte at SP-2, so the value sits little-endian in memory.
func (c *CPU) pushStack(value uint16) {
	c.bus.WriteByte(c.sp-1, uint8(value>>8))
	c.bus.WriteByte(c.sp-2, uint8(value))
	c.sp -= 2
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := uint16(c.bus.ReadByte(c.sp))
	upper := uint16(c.bus.ReadByte(c.sp+1)) << 8
	c.sp += 2
	return lower | upper
}

// Push pushes a 16-bit operand onto the stack.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
//
// Flags affected: none.
func (c *CPU) Push(arg Operand) error {
	v, err := c.resolve16("PUSH", arg)
	if err != nil {
		return err
	}
	c.pushStack(v)
	return nil
}

// Pop pops a 16-bit value off the stack into arg.
//
//	POP nn
//	nn = AF, BC, DE, HL
//
// Flags affected: none, except POP AF which loads F from the stack.
func (c *CPU) Pop(arg Operand) error {
	if err := c.storable("POP", arg, WidthWord); err != nil {
		return err
	}
	return c.Store(arg, Word(c.popStack()))
}
