package interrupts

import (
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/bits"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0).
	VBlankFlag = bits.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1).
	LCDFlag = bits.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2).
	TimerFlag = bits.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag = bits.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4).
	JoypadFlag = bits.Bit4
)

const (
	// FlagAddress is the address of the interrupt flag register (IF).
	FlagAddress uint16 = 0xFF0F
	// EnableAddress is the address of the interrupt enable register (IE).
	EnableAddress uint16 = 0xFFFF
)

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
//
// The IME is driven by the signals the DI, EI and RETI
// instructions raise, see Apply.
type Service struct {
	Flag   uint8 // interrupt Flag (IF)
	Enable uint8 // interrupt Enable (IE)
	IME    bool  // interrupt master enable

	enablePending bool
}

// NewService returns a new Service with the IME cleared.
func NewService() *Service {
	return &Service{}
}

// Apply updates the IME after an instruction has executed, given the
// signals it raised. EI takes effect only after the instruction that
// follows it, so an EI immediately followed by DI leaves the IME clear.
func (s *Service) Apply(sig cpu.Signal) {
	if s.enablePending {
		s.IME = true
		s.enablePending = false
	}
	switch {
	case sig.Has(cpu.SignalDisableInterrupts):
		s.IME = false
	case sig.Has(cpu.SignalEnableInterrupts):
		s.enablePending = true
	case sig.Has(cpu.SignalReturnFromInterrupt):
		s.IME = true
	}
}

// Sync reads IF and IE from the bus.
func (s *Service) Sync(bus cpu.Bus) {
	s.Flag = bus.ReadByte(FlagAddress) & 0x1F // only the first 5 bits are used
	s.Enable = bus.ReadByte(EnableAddress)
}

// Commit writes IF back to the bus.
func (s *Service) Commit(bus cpu.Bus) {
	bus.WriteByte(FlagAddress, s.Flag|0xE0) // the upper 3 bits are always set
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Vector returns the currently serviced interrupt vector,
// or 0 if no interrupt is being serviced. This function
// will also clear the corresponding bit in the Flag
// register.
func (s *Service) Vector() uint16 {
	if s.Enable&s.Flag == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		// get the flag for the current interrupt
		flag := uint8(1 << i)

		// check if the interrupt is requested and enabled
		if s.Flag&(flag) != 0 && s.Enable&(flag) != 0 {
			// clear the interrupt flag and return the vector
			s.Flag = s.Flag ^ flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// Dispatch returns the vector of the highest priority pending
// interrupt and clears the IME, or 0 if the IME is clear or no
// interrupt is pending.
func (s *Service) Dispatch() uint16 {
	if !s.IME || !s.HasInterrupts() {
		return 0
	}
	s.IME = false
	s.enablePending = false
	return s.Vector()
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
//   - EI pending (bool)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
	s.IME = st.ReadBool()
	s.enablePending = st.ReadBool()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
//   - EI pending (bool)
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
	st.WriteBool(s.IME)
	st.WriteBool(s.enablePending)
}
