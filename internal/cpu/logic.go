package cpu

// And performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) And(src Operand) error {
	n, err := c.resolve8("AND", src)
	if err != nil {
		return err
	}
	a := c.Reg8(A) & n
	c.setReg8(A, a)
	c.SetFlags(a == 0, false, true, false)
	return nil
}

// Or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) Or(src Operand) error {
	n, err := c.resolve8("OR", src)
	if err != nil {
		return err
	}
	a := c.Reg8(A) | n
	c.setReg8(A, a)
	c.SetFlags(a == 0, false, false, false)
	return nil
}

// Xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) Xor(src Operand) error {
	n, err := c.resolve8("XOR", src)
	if err != nil {
		return err
	}
	a := c.Reg8(A) ^ n
	c.setReg8(A, a)
	c.SetFlags(a == 0, false, false, false)
	return nil
}

// Cp compares n to the A Register. The subtraction result is
// discarded; only the flags change.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) Cp(src Operand) error {
	return c.sub8("CP", Reg(A), src, 0, false)
}
