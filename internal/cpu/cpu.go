package cpu

import (
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Bus is the byte-addressed view of the full 16-bit address space.
// Banking, I/O registers and timing all live behind it.
type Bus interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, value uint8)
}

// Signal is a CPU mode transition requested by an instruction. The
// core only raises signals; the surrounding system acts on them.
type Signal uint8

const (
	// SignalHalt requests low-power mode until an interrupt.
	SignalHalt Signal = 1 << iota
	// SignalStop requests the very-low-power stop mode.
	SignalStop
	// SignalDisableInterrupts clears the interrupt master enable.
	SignalDisableInterrupts
	// SignalEnableInterrupts sets the interrupt master enable after
	// the following instruction.
	SignalEnableInterrupts
	// SignalReturnFromInterrupt sets the interrupt master enable
	// immediately.
	SignalReturnFromInterrupt
)

// Has reports whether all bits of o are raised in s.
func (s Signal) Has(o Signal) bool {
	return s&o == o
}

// CPU executes instruction semantics against its RegisterFile and a
// Bus. It is single-threaded: one routine runs to completion before
// the next is dispatched.
type CPU struct {
	// RegisterFile holds A-L, the register pairs, SP and PC.
	RegisterFile

	bus Bus
	log log.Logger

	signals  Signal
	branched bool
}

// Opt is a function that modifies a CPU instance.
type Opt func(c *CPU)

// WithLogger sets the logger rejected operands are reported to.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithState restores the registers from a saved state.
func WithState(s *types.State) Opt {
	return func(c *CPU) {
		c.Load(s)
	}
}

// NewCPU creates a new CPU attached to the given bus.
func NewCPU(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		bus: bus,
		log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bus returns the bus the CPU reads and writes through.
func (c *CPU) Bus() Bus {
	return c.bus
}

// TakeSignals returns the signals raised since the last call and
// clears them.
func (c *CPU) TakeSignals() Signal {
	s := c.signals
	c.signals = 0
	return s
}

func (c *CPU) raise(s Signal) {
	c.signals |= s
}

// jump writes PC and records that the current instruction branched,
// so the decode loop does not advance past it.
func (c *CPU) jump(address uint16) {
	c.pc = address
	c.branched = true
}

// reject logs and returns an operand error.
func (c *CPU) reject(err error) error {
	c.log.Debugf("rejected at PC=%04X: %v", c.pc, err)
	return err
}
