package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// Register identifies one of the addressable registers. The 8-bit
// registers alias halves of the four pairs AF, BC, DE and HL; SP and
// PC are independent 16-bit scalars.
type Register uint8

const (
	A Register = iota
	B
	C
	D
	E
	F
	H
	L
	AF
	BC
	DE
	HL
	SP
	PC

	registerCount
)

var registerNames = [registerCount]string{"A", "B", "C", "D", "E", "F", "H", "L", "AF", "BC", "DE", "HL", "SP", "PC"}

func (r Register) String() string {
	if r < registerCount {
		return registerNames[r]
	}
	return fmt.Sprintf("Register(%d)", uint8(r))
}

// Width returns the natural width of the register.
func (r Register) Width() Width {
	if r <= L {
		return WidthByte
	}
	return WidthWord
}

// view selects which part of a register pair a Register exposes.
type view uint8

const (
	viewHigh view = iota
	viewLow
	viewBoth
)

const (
	pairAF = iota
	pairBC
	pairDE
	pairHL
)

// registerPair is the storage for two 8-bit registers, high byte
// first. The 16-bit view is the little-endian materialisation of
// that storage, so the high register is the upper byte.
type registerPair [2]uint8

func (p *registerPair) uint16() uint16 {
	return uint16(p[0])<<8 | uint16(p[1])
}

func (p *registerPair) setUint16(v uint16) {
	p[0] = uint8(v >> 8)
	p[1] = uint8(v)
}

// alias maps every pair-backed Register to its storage and view.
var alias = [SP]struct {
	pair int
	view view
}{
	A:  {pairAF, viewHigh},
	B:  {pairBC, viewHigh},
	C:  {pairBC, viewLow},
	D:  {pairDE, viewHigh},
	E:  {pairDE, viewLow},
	F:  {pairAF, viewLow},
	H:  {pairHL, viewHigh},
	L:  {pairHL, viewLow},
	AF: {pairAF, viewBoth},
	BC: {pairBC, viewBoth},
	DE: {pairDE, viewBoth},
	HL: {pairHL, viewBoth},
}

// flagMask keeps the four defined flag bits of F. The lower nibble
// is wired to zero on every write.
const flagMask = 0xF0

// RegisterFile owns the register pairs and the SP/PC scalars. The
// pairs are only reachable through Read and Write, so the three
// views of a pair can never diverge.
type RegisterFile struct {
	pairs  [4]registerPair
	sp, pc uint16
}

// Read returns the value of r at its natural width.
func (rf *RegisterFile) Read(r Register) (Value, error) {
	switch {
	case r == SP:
		return Word(rf.sp), nil
	case r == PC:
		return Word(rf.pc), nil
	case r >= registerCount:
		return Value{}, invalid("Read", Reg(r), "unknown register")
	}

	a := alias[r]
	p := &rf.pairs[a.pair]
	switch a.view {
	case viewHigh:
		return Byte(p[0]), nil
	case viewLow:
		return Byte(p[1]), nil
	default:
		return Word(p.uint16()), nil
	}
}

// Write stores v into r. v must have the register's natural width;
// nothing is truncated or widened on the caller's behalf.
func (rf *RegisterFile) Write(r Register, v Value) error {
	if r >= registerCount {
		return invalid("Write", Reg(r), "unknown register")
	}
	if v.Width() != r.Width() {
		return invalid("Write", Reg(r), "cannot store %s %s into %s register", v.Width(), v, r.Width())
	}

	switch r {
	case SP:
		rf.sp = v.raw
		return nil
	case PC:
		rf.pc = v.raw
		return nil
	}

	a := alias[r]
	p := &rf.pairs[a.pair]
	switch a.view {
	case viewHigh:
		p[0] = uint8(v.raw)
	case viewLow:
		p[1] = uint8(v.raw)
	default:
		p.setUint16(v.raw)
	}
	if a.pair == pairAF {
		p[1] &= flagMask
	}
	return nil
}

// Reg8 returns the value of an 8-bit register. It panics if r is not
// one, so it is only used with constant registers.
func (rf *RegisterFile) Reg8(r Register) uint8 {
	if r.Width() != WidthByte {
		panic(fmt.Sprintf("Reg8: %s is not an 8-bit register", r))
	}
	a := alias[r]
	if a.view == viewHigh {
		return rf.pairs[a.pair][0]
	}
	return rf.pairs[a.pair][1]
}

// setReg8 is the unchecked counterpart of Reg8.
func (rf *RegisterFile) setReg8(r Register, v uint8) {
	_ = rf.Write(r, Byte(v))
}

// Reg16 returns the value of a 16-bit register.
func (rf *RegisterFile) Reg16(r Register) uint16 {
	switch r {
	case SP:
		return rf.sp
	case PC:
		return rf.pc
	case AF, BC, DE, HL:
		return rf.pairs[alias[r].pair].uint16()
	}
	panic(fmt.Sprintf("Reg16: %s is not a 16-bit register", r))
}

// setReg16 is the unchecked counterpart of Reg16.
func (rf *RegisterFile) setReg16(r Register, v uint16) {
	_ = rf.Write(r, Word(v))
}

var _ types.Resettable = (*RegisterFile)(nil)

// Reset zeroes every register.
func (rf *RegisterFile) Reset() {
	*rf = RegisterFile{}
}

var _ types.Stater = (*RegisterFile)(nil)

// Load restores the registers in the order written by Save.
func (rf *RegisterFile) Load(s *types.State) {
	for i := range rf.pairs {
		rf.pairs[i].setUint16(s.Read16())
	}
	rf.pairs[pairAF][1] &= flagMask
	rf.sp = s.Read16()
	rf.pc = s.Read16()
}

// Save writes AF, BC, DE, HL, SP and PC to the state.
func (rf *RegisterFile) Save(s *types.State) {
	for i := range rf.pairs {
		s.Write16(rf.pairs[i].uint16())
	}
	s.Write16(rf.sp)
	s.Write16(rf.pc)
}

// String renders the registers the way the debug views print them.
func (rf *RegisterFile) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		rf.Reg8(A), rf.Reg8(F), rf.Reg8(B), rf.Reg8(C), rf.Reg8(D), rf.Reg8(E), rf.Reg8(H), rf.Reg8(L), rf.sp, rf.pc)
}
