package cpu

import "testing"

// flags returns F as the four flag booleans would set it.
func flags(z, n, h, c bool) uint8 {
	var f uint8
	if z {
		f |= 1 << FlagZero
	}
	if n {
		f |= 1 << FlagSubtract
	}
	if h {
		f |= 1 << FlagHalfCarry
	}
	if c {
		f |= 1 << FlagCarry
	}
	return f
}

func TestAdd8_Exhaustive(t *testing.T) {
	c, _ := newTestCPU()
	for a := 0; a < 0x100; a++ {
		for b := 0; b < 0x100; b++ {
			for carry := 0; carry < 2; carry++ {
				c.setReg8(A, uint8(a))
				c.setReg8(B, uint8(b))
				c.SetFlags(false, true, false, carry == 1)

				if carry == 1 {
					must(t, c.Adc(Reg(A), Reg(B)))
				} else {
					must(t, c.Add(Reg(A), Reg(B)))
				}

				sum := a + b + carry
				want := flags(uint8(sum) == 0, false, (a&0xF)+(b&0xF)+carry > 0xF, sum > 0xFF)
				if got := c.Reg8(A); got != uint8(sum) {
					t.Fatalf("%02X+%02X+%d: expected A=%02X, got %02X", a, b, carry, uint8(sum), got)
				}
				if got := c.Reg8(F); got != want {
					t.Fatalf("%02X+%02X+%d: expected F=%02X, got %02X", a, b, carry, want, got)
				}
			}
		}
	}
}

func TestSub8_Exhaustive(t *testing.T) {
	c, _ := newTestCPU()
	for a := 0; a < 0x100; a++ {
		for b := 0; b < 0x100; b++ {
			for carry := 0; carry < 2; carry++ {
				c.setReg8(A, uint8(a))
				c.setReg8(C, uint8(b))
				c.SetFlags(false, false, false, carry == 1)

				if carry == 1 {
					must(t, c.Sbc(Reg(A), Reg(C)))
				} else {
					must(t, c.Sub(Reg(C)))
				}

				diff := a - b - carry
				want := flags(uint8(diff) == 0, true, (a&0xF)-(b&0xF)-carry < 0, diff < 0)
				if got := c.Reg8(A); got != uint8(diff) {
					t.Fatalf("%02X-%02X-%d: expected A=%02X, got %02X", a, b, carry, uint8(diff), got)
				}
				if got := c.Reg8(F); got != want {
					t.Fatalf("%02X-%02X-%d: expected F=%02X, got %02X", a, b, carry, want, got)
				}
			}
		}
	}
}

func TestAdd16(t *testing.T) {
	tests := []struct {
		name    string
		hl, src uint16
		zero    bool
		want    uint16
		h, c    bool
	}{
		{"simple", 0x1000, 0x0234, false, 0x1234, false, false},
		{"half carry", 0x0FFF, 0x0001, false, 0x1000, true, false},
		{"carry", 0xF000, 0x1000, false, 0x0000, false, true},
		{"both", 0xFFFF, 0x0001, true, 0x0000, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU()
			c.setReg16(HL, tt.hl)
			c.setReg16(DE, tt.src)
			c.SetFlags(tt.zero, true, false, false)

			must(t, c.Add(Reg(HL), Reg(DE)))
			if v := c.Reg16(HL); v != tt.want {
				t.Errorf("expected HL=%04X, got %04X", tt.want, v)
			}
			// Z is left alone even when the result is zero
			if want := flags(tt.zero, false, tt.h, tt.c); c.Reg8(F) != want {
				t.Errorf("expected F=%02X, got %02X", want, c.Reg8(F))
			}
		})
	}
}

func TestAdd16_ZeroExtendsByte(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(HL, 0x1000)
	m[0x0001] = 0xFF
	must(t, c.Add(Reg(HL), ImmediateByte()))
	if v := c.Reg16(HL); v != 0x10FF {
		t.Errorf("expected HL=0x10FF, got 0x%04X", v)
	}
}

func TestAdd_Invalid(t *testing.T) {
	c, _ := newTestCPU()
	wantInvalid(t, c.Add(Reg(A), Reg(BC)))
	wantInvalid(t, c.Add(ImmediateByte(), Reg(B)))
	wantInvalid(t, c.Adc(Reg(HL), Reg(BC)))
	wantInvalid(t, c.Sub(Reg(HL)))
	wantInvalid(t, c.Sbc(Reg(A), FlagTest(FlagZero)))
	wantInvalid(t, c.Add(Reg(A), Operand{}))
}

func TestIncDec_RoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	for v := 0; v < 0x100; v++ {
		for _, carry := range []bool{false, true} {
			c.setReg8(D, uint8(v))
			c.SetFlags(false, false, false, carry)

			must(t, c.Inc(Reg(D)))
			if c.CheckFlag(FlagCarry) != carry {
				t.Fatalf("INC %02X: expected carry to be unaffected", v)
			}
			must(t, c.Dec(Reg(D)))
			if c.CheckFlag(FlagCarry) != carry {
				t.Fatalf("DEC %02X: expected carry to be unaffected", v)
			}
			if got := c.Reg8(D); got != uint8(v) {
				t.Fatalf("expected INC then DEC of %02X to restore it, got %02X", v, got)
			}
		}
	}

	for v := 0; v < 0x10000; v += 0x0101 {
		c.setReg16(BC, uint16(v))
		c.SetFlags(true, true, true, true)
		must(t, c.Inc(Reg(BC)))
		must(t, c.Dec(Reg(BC)))
		if got := c.Reg16(BC); got != uint16(v) {
			t.Fatalf("expected INC then DEC of %04X to restore it, got %04X", v, got)
		}
		if c.Reg8(F) != 0xF0 {
			t.Fatalf("expected 16-bit INC/DEC to leave flags alone, got %02X", c.Reg8(F))
		}
	}
}

func TestIncDec_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		fn   func(c *CPU) error
		in   uint8
		want uint8
		f    uint8
	}{
		{"INC FF", func(c *CPU) error { return c.Inc(Reg(E)) }, 0xFF, 0x00, flags(true, false, true, false)},
		{"INC 0F", func(c *CPU) error { return c.Inc(Reg(E)) }, 0x0F, 0x10, flags(false, false, true, false)},
		{"INC 01", func(c *CPU) error { return c.Inc(Reg(E)) }, 0x01, 0x02, flags(false, false, false, false)},
		{"DEC 00", func(c *CPU) error { return c.Dec(Reg(E)) }, 0x00, 0xFF, flags(false, true, true, false)},
		{"DEC 01", func(c *CPU) error { return c.Dec(Reg(E)) }, 0x01, 0x00, flags(true, true, false, false)},
		{"DEC 10", func(c *CPU) error { return c.Dec(Reg(E)) }, 0x10, 0x0F, flags(false, true, true, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU()
			c.setReg8(E, tt.in)
			must(t, tt.fn(c))
			if got := c.Reg8(E); got != tt.want {
				t.Errorf("expected %02X, got %02X", tt.want, got)
			}
			if got := c.Reg8(F); got != tt.f {
				t.Errorf("expected F=%02X, got %02X", tt.f, got)
			}
		})
	}

	c, _ := newTestCPU()
	c.setReg16(SP, 0xFFFF)
	must(t, c.Inc(Reg(SP)))
	if c.Reg16(SP) != 0 {
		t.Errorf("expected SP to wrap to 0, got %04X", c.Reg16(SP))
	}
	must(t, c.Dec(Reg(SP)))
	if c.Reg16(SP) != 0xFFFF {
		t.Errorf("expected SP to wrap to FFFF, got %04X", c.Reg16(SP))
	}
}

func TestIncDec_Indirect(t *testing.T) {
	c, m := newTestCPU()
	c.setReg16(HL, 0x1234)
	m[0x1234] = 0x42

	must(t, c.Inc(Reg(HL).Indirect()))
	if m[0x1234] != 0x43 {
		t.Errorf("expected memory at 0x1234 to be 0x43, got 0x%02x", m[0x1234])
	}
	must(t, c.Dec(Reg(HL).Indirect()))
	must(t, c.Dec(Reg(HL).Indirect()))
	if m[0x1234] != 0x41 {
		t.Errorf("expected memory at 0x1234 to be 0x41, got 0x%02x", m[0x1234])
	}
	if c.Reg16(HL) != 0x1234 {
		t.Errorf("expected HL to be untouched, got %04X", c.Reg16(HL))
	}
}

func TestAddSP(t *testing.T) {
	tests := []struct {
		sp   uint16
		e    uint8
		want uint16
		f    uint8
	}{
		{0xFFF8, 0x02, 0xFFFA, flags(false, false, false, false)},
		{0xFFF8, 0x08, 0x0000, flags(false, false, true, true)},
		{0x0005, 0xFE, 0x0003, flags(false, false, true, true)},
		{0x0000, 0xFF, 0xFFFF, flags(false, false, false, false)},
	}
	for _, tt := range tests {
		c, m := newTestCPU()
		c.setReg16(SP, tt.sp)
		m[0x0001] = tt.e
		c.SetFlags(true, true, false, false)

		must(t, c.AddSP(ImmediateByte()))
		if got := c.Reg16(SP); got != tt.want {
			t.Errorf("SP=%04X e=%02X: expected SP=%04X, got %04X", tt.sp, tt.e, tt.want, got)
		}
		if got := c.Reg8(F); got != tt.f {
			t.Errorf("SP=%04X e=%02X: expected F=%02X, got %02X", tt.sp, tt.e, tt.f, got)
		}
	}
}

func TestDaa(t *testing.T) {
	tests := []struct {
		name string
		a, f uint8
		want uint8
		wf   uint8
	}{
		{"half carry", 0x0A, flags(false, false, true, false), 0x10, flags(false, false, false, false)},
		{"low nibble", 0x0B, 0, 0x11, 0},
		{"high nibble", 0xA0, 0, 0x00, flags(true, false, false, true)},
		{"after 45+38", 0x7D, 0, 0x83, 0},
		{"subtract", 0x0F, flags(false, true, true, false), 0x09, flags(false, true, false, false)},
		{"subtract carry", 0xA0, flags(false, true, false, true), 0x40, flags(false, true, false, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU()
			c.setReg8(A, tt.a)
			c.setReg8(F, tt.f)
			must(t, c.Daa())
			if got := c.Reg8(A); got != tt.want {
				t.Errorf("expected A=%02X, got %02X", tt.want, got)
			}
			if got := c.Reg8(F); got != tt.wf {
				t.Errorf("expected F=%02X, got %02X", tt.wf, got)
			}
		})
	}
}

func TestCpl(t *testing.T) {
	c, _ := newTestCPU()
	c.setReg8(A, 0x35)
	c.SetFlags(true, false, false, true)
	must(t, c.Cpl())
	if got := c.Reg8(A); got != 0xCA {
		t.Errorf("expected A=0xCA, got 0x%02X", got)
	}
	if want := flags(true, true, true, true); c.Reg8(F) != want {
		t.Errorf("expected F=%02X, got %02X", want, c.Reg8(F))
	}
}

func TestLogic(t *testing.T) {
	tests := []struct {
		name string
		fn   func(c *CPU) error
		a, b uint8
		want uint8
		f    uint8
	}{
		{"AND", func(c *CPU) error { return c.And(Reg(B)) }, 0xF0, 0x3C, 0x30, flags(false, false, true, false)},
		{"AND zero", func(c *CPU) error { return c.And(Reg(B)) }, 0xF0, 0x0F, 0x00, flags(true, false, true, false)},
		{"OR", func(c *CPU) error { return c.Or(Reg(B)) }, 0xF0, 0x0F, 0xFF, 0},
		{"OR zero", func(c *CPU) error { return c.Or(Reg(B)) }, 0x00, 0x00, 0x00, flags(true, false, false, false)},
		{"XOR", func(c *CPU) error { return c.Xor(Reg(B)) }, 0xFF, 0x0F, 0xF0, 0},
		{"XOR A", func(c *CPU) error { return c.Xor(Reg(A)) }, 0x42, 0x00, 0x00, flags(true, false, false, false)},
		{"CP equal", func(c *CPU) error { return c.Cp(Reg(B)) }, 0x42, 0x42, 0x42, flags(true, true, false, false)},
		{"CP less", func(c *CPU) error { return c.Cp(Reg(B)) }, 0x10, 0x01, 0x10, flags(false, true, true, false)},
		{"CP greater", func(c *CPU) error { return c.Cp(Reg(B)) }, 0x01, 0x02, 0x01, flags(false, true, true, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU()
			c.setReg8(A, tt.a)
			c.setReg8(B, tt.b)
			c.SetFlags(false, true, false, true)
			must(t, tt.fn(c))
			if got := c.Reg8(A); got != tt.want {
				t.Errorf("expected A=%02X, got %02X", tt.want, got)
			}
			if got := c.Reg8(F); got != tt.f {
				t.Errorf("expected F=%02X, got %02X", tt.f, got)
			}
		})
	}
}
