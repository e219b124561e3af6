package cpu

// Nop does nothing.
func (c *CPU) Nop() error { return nil }

// Halt asks the system to enter low-power mode.
func (c *CPU) Halt() error {
	c.raise(SignalHalt)
	return nil
}

// Stop asks the system to enter stop mode.
func (c *CPU) Stop() error {
	c.raise(SignalStop)
	return nil
}

// Di asks the system to disable interrupts.
func (c *CPU) Di() error {
	c.raise(SignalDisableInterrupts)
	return nil
}

// Ei asks the system to enable interrupts.
func (c *CPU) Ei() error {
	c.raise(SignalEnableInterrupts)
	return nil
}

// Ccf complements the carry flag.
//
//	CCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Complemented.
func (c *CPU) Ccf() error {
	c.SetFlags(c.CheckFlag(FlagZero), false, false, !c.CheckFlag(FlagCarry))
	return nil
}

// Scf sets the carry flag.
//
//	SCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Set.
func (c *CPU) Scf() error {
	c.SetFlags(c.CheckFlag(FlagZero), false, false, true)
	return nil
}
