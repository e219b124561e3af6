// Package bits provides the bit and carry helpers shared by the
// instruction semantics.
package bits

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// SwapNibbles exchanges the upper and lower nibble of b.
func SwapNibbles(b uint8) uint8 {
	return b<<4 | b>>4
}

// HalfCarryAdd reports whether a + b + carry carries out of bit 3.
func HalfCarryAdd(a, b, carry uint8) bool {
	return (a&0xF)+(b&0xF)+carry > 0xF
}

// CarryAdd reports whether a + b + carry carries out of bit 7.
func CarryAdd(a, b, carry uint8) bool {
	return uint16(a)+uint16(b)+uint16(carry) > 0xFF
}

// HalfBorrowSub reports whether a - b - carry borrows from bit 4.
func HalfBorrowSub(a, b, carry uint8) bool {
	return int16(a&0xF)-int16(b&0xF)-int16(carry) < 0
}

// BorrowSub reports whether a - b - carry borrows past bit 7.
func BorrowSub(a, b, carry uint8) bool {
	return int16(a)-int16(b)-int16(carry) < 0
}

// HalfCarryAdd16 reports whether a + b carries out of bit 11.
func HalfCarryAdd16(a, b uint16) bool {
	return (a&0xFFF)+(b&0xFFF) > 0xFFF
}

// CarryAdd16 reports whether a + b carries out of bit 15.
func CarryAdd16(a, b uint16) bool {
	return uint32(a)+uint32(b) > 0xFFFF
}

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)
