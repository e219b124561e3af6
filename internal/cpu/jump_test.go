package cpu

import "testing"

func TestJump_NotTaken(t *testing.T) {
	tests := []struct {
		name string
		z, c bool
		fn   func(c *CPU) error
	}{
		{"JP Z,nn", false, true, func(c *CPU) error { return c.JpFlag(FlagTest(FlagZero), ImmediateWord()) }},
		{"JR C,n", true, false, func(c *CPU) error { return c.JrFlag(FlagTest(FlagCarry), ImmediateByte()) }},
		{"CALL NZ,nn", true, false, func(c *CPU) error { return c.CallFlag(NegatedFlagTest(FlagZero), ImmediateWord()) }},
		{"RET NC", false, true, func(c *CPU) error { return c.RetFlag(NegatedFlagTest(FlagCarry)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, m := newTestCPU()
			c.setReg16(PC, 0x0200)
			c.setReg16(SP, 0xFFF0)
			m[0x0201], m[0x0202] = 0x34, 0x12
			m[0xFFF0], m[0xFFF1] = 0x78, 0x56
			c.SetFlags(tt.z, false, false, tt.c)

			before, regs := *m, c.RegisterFile
			must(t, tt.fn(c))
			if c.RegisterFile != regs {
				t.Errorf("expected registers to be unchanged, got %s", c.String())
			}
			if *m != before {
				t.Errorf("expected memory to be unchanged")
			}
			if c.branched {
				t.Errorf("expected no branch")
			}
		})
	}
}

func TestJp(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(PC, 0x0100)
	m[0x0101], m[0x0102] = 0x50, 0x01

	must(t, c.Jp(ImmediateWord()))
	if c.Reg16(PC) != 0x0150 || !c.branched {
		t.Errorf("expected branch to 0150, got %04X", c.Reg16(PC))
	}

	c.setReg16(HL, 0x4000)
	must(t, c.Jp(Reg(HL)))
	if c.Reg16(PC) != 0x4000 {
		t.Errorf("expected PC=4000, got %04X", c.Reg16(PC))
	}
	wantInvalid(t, c.Jp(Reg(A)))
	wantInvalid(t, c.JpFlag(Reg(A), ImmediateWord()))
}

func TestJr(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(PC, 0x0100)
	m[0x0101] = 0xFE

	must(t, c.Jr(ImmediateByte()))
	if c.Reg16(PC) != 0x00FE {
		t.Errorf("expected PC=00FE, got %04X", c.Reg16(PC))
	}

	c.setReg16(PC, 0x0100)
	c.SetFlags(false, false, false, false)
	m[0x0101] = 0x10
	must(t, c.JrFlag(NegatedFlagTest(FlagCarry), ImmediateByte()))
	if c.Reg16(PC) != 0x0110 {
		t.Errorf("expected PC=0110, got %04X", c.Reg16(PC))
	}
}

func TestCallRet(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(PC, 0x0200)
	c.setReg16(SP, 0xFFFE)
	m[0x0201], m[0x0202] = 0x34, 0x12

	must(t, c.Call(ImmediateWord()))
	if c.Reg16(PC) != 0x1234 {
		t.Errorf("expected PC=1234, got %04X", c.Reg16(PC))
	}
	if m[0xFFFD] != 0x02 || m[0xFFFC] != 0x03 {
		t.Errorf("expected return address 0203 on the stack, got %02X%02X", m[0xFFFD], m[0xFFFC])
	}

	must(t, c.Ret())
	if c.Reg16(PC) != 0x0203 || c.Reg16(SP) != 0xFFFE {
		t.Errorf("expected PC=0203 SP=FFFE, got PC=%04X SP=%04X", c.Reg16(PC), c.Reg16(SP))
	}
}

func TestRst(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(PC, 0x0150)
	c.setReg16(SP, 0xFFFE)

	must(t, c.Rst(HighByteLiteral(0x38)))
	if c.Reg16(PC) != 0x0038 {
		t.Errorf("expected PC=0038, got %04X", c.Reg16(PC))
	}
	if m[0xFFFD] != 0x01 || m[0xFFFC] != 0x50 {
		t.Errorf("expected 0150 on the stack, got %02X%02X", m[0xFFFD], m[0xFFFC])
	}
	wantInvalid(t, c.Rst(Reg(A)))
}

func TestReti(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(SP, 0xFFFC)
	m[0xFFFC], m[0xFFFD] = 0x00, 0x02

	must(t, c.Reti())
	if c.Reg16(PC) != 0x0200 {
		t.Errorf("expected PC=0200, got %04X", c.Reg16(PC))
	}
	if !c.TakeSignals().Has(SignalReturnFromInterrupt) {
		t.Errorf("expected RETI to raise its signal")
	}
}

func TestInterrupt(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(PC, 0x0234)
	c.setReg16(SP, 0xFFFE)

	c.Interrupt(0x0040)
	if c.Reg16(PC) != 0x0040 {
		t.Errorf("expected PC=0040, got %04X", c.Reg16(PC))
	}
	if m[0xFFFD] != 0x02 || m[0xFFFC] != 0x34 {
		t.Errorf("expected 0234 on the stack, got %02X%02X", m[0xFFFD], m[0xFFFC])
	}
	if c.branched {
		t.Errorf("expected an interrupt not to mark an instruction branch")
	}
}
