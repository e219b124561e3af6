package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/thelolagemann/sm83/internal/cpu"
)

// parseProgram decodes hex bytes such as "3E 12 76" or "3e1276".
func parseProgram(s string) ([]byte, error) {
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	}), "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parsing program: %w", err)
	}
	return b, nil
}

// parseAddress accepts $hex, 0xhex or decimal.
func parseAddress(s string) (uint16, error) {
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	n, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing address: %w", err)
	}
	return uint16(n), nil
}

// registerDump is the register file as printed by run and inspect.
type registerDump struct {
	A, F, B, C, D, E, H, L string
	AF, BC, DE, HL, SP, PC string
	Flags                  string
}

func dumpRegisters(rf *cpu.RegisterFile) registerDump {
	b := func(r cpu.Register) string { return fmt.Sprintf("$%02X", rf.Reg8(r)) }
	w := func(r cpu.Register) string { return fmt.Sprintf("$%04X", rf.Reg16(r)) }

	flags := []byte("----")
	for i, f := range []cpu.Flag{cpu.FlagZero, cpu.FlagSubtract, cpu.FlagHalfCarry, cpu.FlagCarry} {
		if rf.CheckFlag(f) {
			flags[i] = f.String()[0]
		}
	}
	return registerDump{
		A: b(cpu.A), F: b(cpu.F), B: b(cpu.B), C: b(cpu.C),
		D: b(cpu.D), E: b(cpu.E), H: b(cpu.H), L: b(cpu.L),
		AF: w(cpu.AF), BC: w(cpu.BC), DE: w(cpu.DE), HL: w(cpu.HL),
		SP: w(cpu.SP), PC: w(cpu.PC),
		Flags: string(flags),
	}
}
