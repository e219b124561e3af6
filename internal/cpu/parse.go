package cpu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is returned for mnemonics and operands that cannot be parsed.
var ErrSyntax = errors.New("syntax error")

var registerByName = map[string]Register{
	"A": A, "B": B, "C": C, "D": D, "E": E, "F": F, "H": H, "L": L,
	"AF": AF, "BC": BC, "DE": DE, "HL": HL, "SP": SP, "PC": PC,
}

var conditionByName = map[string]Operand{
	"Z":  FlagTest(FlagZero),
	"NZ": NegatedFlagTest(FlagZero),
	"C":  FlagTest(FlagCarry),
	"NC": NegatedFlagTest(FlagCarry),
}

// ParseOperand parses a value operand in mnemonic syntax:
//
//	A, B, ..., HL, SP, PC   register
//	n, nn                   immediate byte or word
//	(HL), (nn), (C)         memory-indirect
//	(HL+2), (SP-$10)        memory-indirect with displacement
//
// Conditions, bit indices and restart vectors depend on the slot they
// appear in and are parsed by Compile.
func ParseOperand(s string) (Operand, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Operand{}, fmt.Errorf("%w: empty operand", ErrSyntax)
	}

	indirect := false
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return Operand{}, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrSyntax, s)
		}
		indirect = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	base, displacement := s, int16(0)
	if i := strings.IndexAny(s, "+-"); i > 0 {
		base = strings.TrimSpace(s[:i])
		d, err := parseNumber(strings.TrimSpace(s[i+1:]))
		if err != nil {
			return Operand{}, err
		}
		// the displacement is a signed 16-bit value
		switch {
		case s[i] == '-' && d <= 0x8000:
			displacement = int16(-int32(d))
		case s[i] == '+' && d <= 0x7FFF:
			displacement = int16(d)
		default:
			return Operand{}, fmt.Errorf("%w: displacement %c%d out of range", ErrSyntax, s[i], d)
		}
	}

	var o Operand
	switch base {
	case "N":
		o = ImmediateByte()
	case "NN":
		o = ImmediateWord()
	default:
		r, ok := registerByName[base]
		if !ok {
			return Operand{}, fmt.Errorf("%w: unknown operand %q", ErrSyntax, base)
		}
		o = Reg(r)
	}
	o = o.Offset(displacement)
	if indirect {
		o = o.Indirect()
	}
	return o, nil
}

// parseCondition parses NZ, Z, NC or C.
func parseCondition(s string) (Operand, error) {
	o, ok := conditionByName[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return Operand{}, fmt.Errorf("%w: unknown condition %q", ErrSyntax, s)
	}
	return o, nil
}

// parseBitIndex parses a bit position 0-7.
func parseBitIndex(s string) (Operand, error) {
	n, err := parseNumber(strings.TrimSpace(s))
	if err != nil {
		return Operand{}, err
	}
	if n > 7 {
		return Operand{}, fmt.Errorf("%w: bit index %d out of range", ErrSyntax, n)
	}
	return ByteLiteral(uint8(n)), nil
}

// parseVector parses a restart vector such as 38H.
func parseVector(s string) (Operand, error) {
	n, err := parseNumber(strings.TrimSpace(s))
	if err != nil {
		return Operand{}, err
	}
	if n > 0x38 || n%8 != 0 {
		return Operand{}, fmt.Errorf("%w: invalid restart vector %q", ErrSyntax, s)
	}
	return HighByteLiteral(uint8(n)), nil
}

// parseNumber accepts decimal, $hex, 0xhex and Intel-style hexH.
func parseNumber(s string) (uint16, error) {
	u := strings.ToUpper(s)
	base := 10
	switch {
	case strings.HasPrefix(u, "$"):
		u, base = u[1:], 16
	case strings.HasPrefix(u, "0X"):
		u, base = u[2:], 16
	case strings.HasSuffix(u, "H"):
		u, base = u[:len(u)-1], 16
	}
	n, err := strconv.ParseUint(u, base, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrSyntax, s)
	}
	return uint16(n), nil
}

// splitMnemonic splits "LD A,(HL)" into "LD" and ["A", "(HL)"].
func splitMnemonic(text string) (string, []string) {
	text = strings.TrimSpace(text)
	mnemonic, rest, _ := strings.Cut(text, " ")
	mnemonic = strings.ToUpper(mnemonic)
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return mnemonic, nil
	}
	args := strings.Split(rest, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return mnemonic, args
}
