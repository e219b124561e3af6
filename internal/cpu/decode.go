package cpu

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// InstructionSet holds the unprefixed opcodes. 0xCB is not defined
// here; Step reads the following byte and dispatches on
// InstructionSetCB instead.
var InstructionSet = [256]Instruction{}

// InstructionSetCB holds the opcodes prefixed by 0xCB.
var InstructionSetCB = [256]Instruction{}

// IllegalOpcodes lists the unprefixed opcodes with no instruction.
var IllegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

// tableErrors collects problems found while building the tables.
var tableErrors *multierror.Error

var (
	registers8  = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	registers16 = [4]string{"BC", "DE", "HL", "SP"}
	stackPairs  = [4]string{"BC", "DE", "HL", "AF"}
	conditions  = [4]string{"NZ", "Z", "NC", "C"}
	aluOps      = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	cbOps       = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
)

// DefineInstruction compiles text and defines it in the InstructionSet
// with the provided opcode.
func DefineInstruction(opcode uint8, text string) {
	define(&InstructionSet, opcode, text, false)
}

// DefineInstructionCB compiles text and defines it in the
// InstructionSetCB with the provided opcode. The prefix byte is
// counted in the instruction length.
func DefineInstructionCB(opcode uint8, text string) {
	define(&InstructionSetCB, opcode, text, true)
}

func define(set *[256]Instruction, opcode uint8, text string, cb bool) {
	ins, err := Compile(text)
	if err != nil {
		tableErrors = multierror.Append(tableErrors, fmt.Errorf("opcode %02X: %w", opcode, err))
		return
	}
	if set[opcode].Defined() {
		tableErrors = multierror.Append(tableErrors, fmt.Errorf("opcode %02X: %q redefined as %q", opcode, set[opcode].name, ins.name))
		return
	}
	if cb {
		ins.length++
	}

	switch ins.mnemonic {
	case "JR":
		// the offset is relative to the following instruction
		fn := ins.fn
		length := uint16(ins.length)
		ins.fn = func(c *CPU) error {
			if err := fn(c); err != nil || !c.branched {
				return err
			}
			c.pc += length
			return nil
		}
	case "RST":
		// the return address is the byte after the opcode
		fn := ins.fn
		ins.fn = func(c *CPU) error {
			c.pc++
			return fn(c)
		}
	}
	set[opcode] = ins
}

func init() {
	DefineInstruction(0x00, "NOP")
	DefineInstruction(0x07, "RLCA")
	DefineInstruction(0x08, "LD (nn),SP")
	DefineInstruction(0x0F, "RRCA")
	DefineInstruction(0x10, "STOP")
	DefineInstruction(0x17, "RLA")
	DefineInstruction(0x18, "JR n")
	DefineInstruction(0x1F, "RRA")
	DefineInstruction(0x22, "LD (HL+),A")
	DefineInstruction(0x27, "DAA")
	DefineInstruction(0x2A, "LD A,(HL+)")
	DefineInstruction(0x2F, "CPL")
	DefineInstruction(0x32, "LD (HL-),A")
	DefineInstruction(0x37, "SCF")
	DefineInstruction(0x3A, "LD A,(HL-)")
	DefineInstruction(0x3F, "CCF")
	DefineInstruction(0x02, "LD (BC),A")
	DefineInstruction(0x0A, "LD A,(BC)")
	DefineInstruction(0x12, "LD (DE),A")
	DefineInstruction(0x1A, "LD A,(DE)")
	DefineInstruction(0x76, "HALT")

	DefineInstruction(0xC3, "JP nn")
	DefineInstruction(0xC9, "RET")
	DefineInstruction(0xCD, "CALL nn")
	DefineInstruction(0xD9, "RETI")
	DefineInstruction(0xE0, "LDH (n),A")
	DefineInstruction(0xE2, "LDH (C),A")
	DefineInstruction(0xE8, "ADD SP,n")
	DefineInstruction(0xE9, "JP HL")
	DefineInstruction(0xEA, "LD (nn),A")
	DefineInstruction(0xF0, "LDH A,(n)")
	DefineInstruction(0xF2, "LDH A,(C)")
	DefineInstruction(0xF3, "DI")
	DefineInstruction(0xF8, "LD HL,SP+n")
	DefineInstruction(0xF9, "LD SP,HL")
	DefineInstruction(0xFA, "LD A,(nn)")
	DefineInstruction(0xFB, "EI")

	// 16-bit loads and arithmetic
	for i, rr := range registers16 {
		base := uint8(i) << 4
		DefineInstruction(0x01+base, "LD "+rr+",nn")
		DefineInstruction(0x03+base, "INC "+rr)
		DefineInstruction(0x09+base, "ADD HL,"+rr)
		DefineInstruction(0x0B+base, "DEC "+rr)
	}

	// 8-bit increments and immediate loads
	for i, r := range registers8 {
		base := uint8(i) << 3
		DefineInstruction(0x04+base, "INC "+r)
		DefineInstruction(0x05+base, "DEC "+r)
		DefineInstruction(0x06+base, "LD "+r+",n")
	}

	// 0x40 - 0x7F LD r, r' (0x76 is HALT)
	for i, dst := range registers8 {
		for j, src := range registers8 {
			opcode := 0x40 | uint8(i)<<3 | uint8(j)
			if opcode == 0x76 {
				continue
			}
			DefineInstruction(opcode, "LD "+dst+","+src)
		}
	}

	// 0x80 - 0xBF ALU ops on A, and their immediate forms
	for i, op := range aluOps {
		for j, src := range registers8 {
			DefineInstruction(0x80|uint8(i)<<3|uint8(j), op+src)
		}
		DefineInstruction(0xC6|uint8(i)<<3, op+"n")
	}

	for i, cc := range conditions {
		base := uint8(i) << 3
		DefineInstruction(0x20+base, "JR "+cc+",n")
		DefineInstruction(0xC0+base, "RET "+cc)
		DefineInstruction(0xC2+base, "JP "+cc+",nn")
		DefineInstruction(0xC4+base, "CALL "+cc+",nn")
	}

	for i, rr := range stackPairs {
		base := uint8(i) << 4
		DefineInstruction(0xC1+base, "POP "+rr)
		DefineInstruction(0xC5+base, "PUSH "+rr)
	}

	for i := uint8(0); i < 8; i++ {
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", i<<3))
	}

	// CB-prefixed rotates, shifts and bit operations
	for i, r := range registers8 {
		j := uint8(i)
		for k, op := range cbOps {
			DefineInstructionCB(uint8(k)<<3|j, op+" "+r)
		}
		for b := uint8(0); b < 8; b++ {
			DefineInstructionCB(0x40|b<<3|j, fmt.Sprintf("BIT %d,%s", b, r))
			DefineInstructionCB(0x80|b<<3|j, fmt.Sprintf("RES %d,%s", b, r))
			DefineInstructionCB(0xC0|b<<3|j, fmt.Sprintf("SET %d,%s", b, r))
		}
	}
}

// ValidateTables reports every problem found while building the
// instruction tables, and any opcode that is neither defined nor
// listed in IllegalOpcodes.
func ValidateTables() error {
	var result *multierror.Error
	if tableErrors != nil {
		result = multierror.Append(result, tableErrors.Errors...)
	}

	illegal := make(map[uint8]bool, len(IllegalOpcodes)+1)
	illegal[0xCB] = true
	for _, op := range IllegalOpcodes {
		illegal[op] = true
	}
	for i := 0; i < 256; i++ {
		defined := InstructionSet[i].Defined()
		switch {
		case defined && illegal[uint8(i)]:
			result = multierror.Append(result, fmt.Errorf("opcode %02X: illegal opcode defined as %q", i, InstructionSet[i].name))
		case !defined && !illegal[uint8(i)]:
			result = multierror.Append(result, fmt.Errorf("opcode %02X: undefined", i))
		}
		if !InstructionSetCB[i].Defined() {
			result = multierror.Append(result, fmt.Errorf("opcode CB %02X: undefined", i))
		}
	}
	return result.ErrorOrNil()
}

// Decode returns the instruction at pc without executing it.
func Decode(bus Bus, pc uint16) (Instruction, error) {
	opcode := bus.ReadByte(pc)
	if opcode == 0xCB {
		cb := bus.ReadByte(pc + 1)
		ins := InstructionSetCB[cb]
		if !ins.Defined() {
			return ins, &OpcodeError{Opcode: cb, CB: true, PC: pc}
		}
		return ins, nil
	}
	ins := InstructionSet[opcode]
	if !ins.Defined() {
		return ins, &OpcodeError{Opcode: opcode, PC: pc}
	}
	return ins, nil
}

// Step decodes and executes the instruction at PC, then advances PC
// past it unless the instruction branched.
func (c *CPU) Step() (Instruction, error) {
	pc := c.pc
	ins, err := Decode(c.bus, pc)
	if err != nil {
		return ins, c.reject(err)
	}

	c.branched = false
	if err := ins.fn(c); err != nil {
		return ins, err
	}
	if !c.branched {
		c.pc = pc + uint16(ins.length)
	}
	return ins, nil
}
