package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/pkg/bits"
)

// Flag is the bit position of a flag in the F register.
type Flag uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

func (f Flag) String() string {
	switch f {
	case FlagZero:
		return "Z"
	case FlagSubtract:
		return "N"
	case FlagHalfCarry:
		return "H"
	case FlagCarry:
		return "C"
	}
	return fmt.Sprintf("Flag(%d)", uint8(f))
}

func (f Flag) valid() bool {
	return f >= FlagCarry && f <= FlagZero
}

// CheckFlag returns true if the given flag is set.
func (rf *RegisterFile) CheckFlag(flag Flag) bool {
	return bits.Test(rf.pairs[pairAF][1], uint8(flag))
}

// SetFlag sets a flag, leaving the other bits of F untouched.
func (rf *RegisterFile) SetFlag(flag Flag) {
	rf.setReg8(F, bits.Set(rf.Reg8(F), uint8(flag)))
}

// ClearFlag clears a flag, leaving the other bits of F untouched.
func (rf *RegisterFile) ClearFlag(flag Flag) {
	rf.setReg8(F, bits.Reset(rf.Reg8(F), uint8(flag)))
}

// SetFlags replaces all four flags at once.
func (rf *RegisterFile) SetFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f = bits.Set(f, uint8(FlagZero))
	}
	if subtract {
		f = bits.Set(f, uint8(FlagSubtract))
	}
	if halfCarry {
		f = bits.Set(f, uint8(FlagHalfCarry))
	}
	if carry {
		f = bits.Set(f, uint8(FlagCarry))
	}
	rf.setReg8(F, f)
}

// carry returns the carry flag as 0 or 1.
func (rf *RegisterFile) carry() uint8 {
	return bits.Val(rf.Reg8(F), uint8(FlagCarry))
}
