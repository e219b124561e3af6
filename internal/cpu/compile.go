package cpu

import (
	"fmt"
	"regexp"
	"strings"
)

type (
	routine0 = func(c *CPU) error
	routine1 = func(c *CPU, a Operand) error
	routine2 = func(c *CPU, a, b Operand) error
)

var nullary = map[string]routine0{
	"NOP":  (*CPU).Nop,
	"HALT": (*CPU).Halt,
	"STOP": (*CPU).Stop,
	"DI":   (*CPU).Di,
	"EI":   (*CPU).Ei,
	"CCF":  (*CPU).Ccf,
	"SCF":  (*CPU).Scf,
	"DAA":  (*CPU).Daa,
	"CPL":  (*CPU).Cpl,
	"RLCA": (*CPU).Rlca,
	"RLA":  (*CPU).Rla,
	"RRCA": (*CPU).Rrca,
	"RRA":  (*CPU).Rra,
	"RETI": (*CPU).Reti,
}

var unary = map[string]routine1{
	"INC":  (*CPU).Inc,
	"DEC":  (*CPU).Dec,
	"PUSH": (*CPU).Push,
	"POP":  (*CPU).Pop,
	"RLC":  (*CPU).Rlc,
	"RL":   (*CPU).Rl,
	"RRC":  (*CPU).Rrc,
	"RR":   (*CPU).Rr,
	"SLA":  (*CPU).Sla,
	"SRA":  (*CPU).Sra,
	"SRL":  (*CPU).Srl,
	"SWAP": (*CPU).Swap,
}

// accumulator ops take A implicitly; "SUB A,B" and "SUB B" are the same.
var accumulator = map[string]routine1{
	"SUB": (*CPU).Sub,
	"AND": (*CPU).And,
	"OR":  (*CPU).Or,
	"XOR": (*CPU).Xor,
	"CP":  (*CPU).Cp,
}

var bitwise = map[string]routine2{
	"BIT": (*CPU).Bit,
	"SET": (*CPU).Set,
	"RES": (*CPU).Res,
}

// conditionals maps a branch mnemonic to its unconditional and
// conditional forms.
var conditionals = map[string]struct {
	always routine1
	flag   routine2
}{
	"JP":   {(*CPU).Jp, (*CPU).JpFlag},
	"JR":   {(*CPU).Jr, (*CPU).JrFlag},
	"CALL": {(*CPU).Call, (*CPU).CallFlag},
}

var immediateToken = regexp.MustCompile(`\bNN?\b`)

// normalizeArg upper-cases an operand and strips blanks, keeping the
// immediate placeholders n and nn in lower case.
func normalizeArg(s string) string {
	s = strings.ToUpper(strings.Join(strings.Fields(s), ""))
	return immediateToken.ReplaceAllStringFunc(s, strings.ToLower)
}

// Compile turns a mnemonic such as "LD A,(HL)" or "JR NZ,n" into an
// Instruction bound to the matching routine. Immediate operands are
// written as n and nn; their values are read from the bytes following
// the opcode when the instruction runs.
func Compile(text string) (Instruction, error) {
	mnemonic, args := splitMnemonic(text)
	if mnemonic == "" {
		return Instruction{}, fmt.Errorf("%w: empty instruction", ErrSyntax)
	}
	for i := range args {
		args[i] = normalizeArg(args[i])
	}

	ops, fn, err := bind(mnemonic, args)
	if err != nil {
		return Instruction{}, fmt.Errorf("compile %q: %w", text, err)
	}

	name := mnemonic
	if len(args) > 0 {
		name += " " + strings.Join(args, ",")
	}
	ins := Instruction{
		name:     name,
		mnemonic: mnemonic,
		operands: ops,
		length:   1,
		fn:       fn,
	}
	for _, o := range ops {
		switch o.kind {
		case KindImmediateByte:
			ins.length++
		case KindImmediateWord:
			ins.length += 2
		}
	}
	if mnemonic == "STOP" {
		ins.length = 2
	}
	return ins, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(text string) Instruction {
	ins, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return ins
}

func arity(mnemonic string, args []string, n ...int) error {
	for _, want := range n {
		if len(args) == want {
			return nil
		}
	}
	return fmt.Errorf("%w: %s takes %v operands, got %d", ErrSyntax, mnemonic, n, len(args))
}

func parseAll(args []string) ([]Operand, error) {
	ops := make([]Operand, len(args))
	for i, a := range args {
		o, err := ParseOperand(a)
		if err != nil {
			return nil, err
		}
		ops[i] = o
	}
	return ops, nil
}

func bind1(fn routine1, a Operand) routine0 {
	return func(c *CPU) error { return fn(c, a) }
}

func bind2(fn routine2, a, b Operand) routine0 {
	return func(c *CPU) error { return fn(c, a, b) }
}

func bind(mnemonic string, args []string) ([]Operand, routine0, error) {
	if fn, ok := nullary[mnemonic]; ok {
		return nil, fn, arity(mnemonic, args, 0)
	}
	if fn, ok := unary[mnemonic]; ok {
		if err := arity(mnemonic, args, 1); err != nil {
			return nil, nil, err
		}
		ops, err := parseAll(args)
		if err != nil {
			return nil, nil, err
		}
		return ops, bind1(fn, ops[0]), nil
	}
	if fn, ok := accumulator[mnemonic]; ok {
		if err := arity(mnemonic, args, 1, 2); err != nil {
			return nil, nil, err
		}
		if len(args) == 2 {
			if args[0] != "A" {
				return nil, nil, fmt.Errorf("%w: %s destination must be A", ErrSyntax, mnemonic)
			}
			args = args[1:]
		}
		ops, err := parseAll(args)
		if err != nil {
			return nil, nil, err
		}
		return ops, bind1(fn, ops[0]), nil
	}
	if fn, ok := bitwise[mnemonic]; ok {
		if err := arity(mnemonic, args, 2); err != nil {
			return nil, nil, err
		}
		bit, err := parseBitIndex(args[0])
		if err != nil {
			return nil, nil, err
		}
		val, err := ParseOperand(args[1])
		if err != nil {
			return nil, nil, err
		}
		return []Operand{bit, val}, bind2(fn, bit, val), nil
	}
	if forms, ok := conditionals[mnemonic]; ok {
		if err := arity(mnemonic, args, 1, 2); err != nil {
			return nil, nil, err
		}
		target, err := ParseOperand(args[len(args)-1])
		if err != nil {
			return nil, nil, err
		}
		if len(args) == 1 {
			return []Operand{target}, bind1(forms.always, target), nil
		}
		cond, err := parseCondition(args[0])
		if err != nil {
			return nil, nil, err
		}
		return []Operand{cond, target}, bind2(forms.flag, cond, target), nil
	}

	switch mnemonic {
	case "RET":
		if err := arity(mnemonic, args, 0, 1); err != nil {
			return nil, nil, err
		}
		if len(args) == 0 {
			return nil, (*CPU).Ret, nil
		}
		cond, err := parseCondition(args[0])
		if err != nil {
			return nil, nil, err
		}
		return []Operand{cond}, bind1((*CPU).RetFlag, cond), nil
	case "RST":
		if err := arity(mnemonic, args, 1); err != nil {
			return nil, nil, err
		}
		vec, err := parseVector(args[0])
		if err != nil {
			return nil, nil, err
		}
		return []Operand{vec}, bind1((*CPU).Rst, vec), nil
	case "ADD":
		if err := arity(mnemonic, args, 2); err != nil {
			return nil, nil, err
		}
		ops, err := parseAll(args)
		if err != nil {
			return nil, nil, err
		}
		if args[0] == "SP" {
			return ops, bind1((*CPU).AddSP, ops[1]), nil
		}
		return ops, bind2((*CPU).Add, ops[0], ops[1]), nil
	case "ADC", "SBC":
		if err := arity(mnemonic, args, 1, 2); err != nil {
			return nil, nil, err
		}
		if len(args) == 1 {
			args = []string{"A", args[0]}
		}
		ops, err := parseAll(args)
		if err != nil {
			return nil, nil, err
		}
		fn := (*CPU).Adc
		if mnemonic == "SBC" {
			fn = (*CPU).Sbc
		}
		return ops, bind2(fn, ops[0], ops[1]), nil
	case "LD", "LDI", "LDD":
		if err := arity(mnemonic, args, 2); err != nil {
			return nil, nil, err
		}
		return bindLoad(mnemonic, args[0], args[1])
	case "LDH":
		if err := arity(mnemonic, args, 2); err != nil {
			return nil, nil, err
		}
		ops, err := parseAll(args)
		if err != nil {
			return nil, nil, err
		}
		return ops, bind2((*CPU).Ldh, ops[0], ops[1]), nil
	case "LDHL":
		if err := arity(mnemonic, args, 2); err != nil {
			return nil, nil, err
		}
		ops, err := parseAll(args)
		if err != nil {
			return nil, nil, err
		}
		return ops, bind2((*CPU).Ldhl, ops[0], ops[1]), nil
	}
	return nil, nil, fmt.Errorf("%w: unknown mnemonic %q", ErrSyntax, mnemonic)
}

// bindLoad resolves the LD family, including the (HL+)/(HL-) forms,
// LD HL,SP+n and the 16-bit store LD (nn),SP.
func bindLoad(mnemonic, dst, src string) ([]Operand, routine0, error) {
	fn := (*CPU).Ld
	switch mnemonic {
	case "LDI":
		fn = (*CPU).Ldi
	case "LDD":
		fn = (*CPU).Ldd
	}
	for _, arg := range []*string{&dst, &src} {
		switch *arg {
		case "(HL+)", "(HLI)":
			*arg, fn = "(HL)", (*CPU).Ldi
		case "(HL-)", "(HLD)":
			*arg, fn = "(HL)", (*CPU).Ldd
		}
	}

	if dst == "HL" && src == "SP+n" {
		ops := []Operand{Reg(HL), Reg(SP), ImmediateByte()}
		return ops, bind2((*CPU).Ldhl, ops[1], ops[2]), nil
	}

	d, err := ParseOperand(dst)
	if err != nil {
		return nil, nil, err
	}
	s, err := ParseOperand(src)
	if err != nil {
		return nil, nil, err
	}
	if mnemonic == "LD" && d.IsIndirect() && s.Width() == WidthWord {
		fn = (*CPU).LdWord
	}
	return []Operand{d, s}, bind2(fn, d, s), nil
}
