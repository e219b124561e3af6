// Package ram provides a flat 64 KiB memory bus.
package ram

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// Size is the size of the address space in bytes.
const Size = 0x10000

// RAM represents the full 16-bit address space as plain memory.
type RAM interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, value uint8)
	// Copy copies data into memory starting at address.
	Copy(address uint16, data []byte) error
	types.Resettable
	types.Stater
}

type ram struct {
	data [Size]uint8
}

// NewRAM returns a new zeroed RAM.
func NewRAM() RAM {
	return &ram{}
}

// ReadByte returns the value at the given address.
func (r *ram) ReadByte(address uint16) uint8 {
	return r.data[address]
}

// WriteByte writes the value to the given address.
func (r *ram) WriteByte(address uint16, value uint8) {
	r.data[address] = value
}

// Copy copies data into memory starting at address. Data running past
// the end of the address space is rejected rather than wrapped.
func (r *ram) Copy(address uint16, data []byte) error {
	if int(address)+len(data) > Size {
		return fmt.Errorf("ram: %d bytes at %04X overflow the address space", len(data), address)
	}
	copy(r.data[address:], data)
	return nil
}

// Reset zeroes the memory.
func (r *ram) Reset() {
	r.data = [Size]uint8{}
}

// Load restores the memory from a state written by Save.
func (r *ram) Load(s *types.State) {
	s.ReadData(r.data[:])
}

// Save writes the whole address space to the state.
func (r *ram) Save(s *types.State) {
	s.WriteData(r.data[:])
}
