package ram

import (
	"testing"

	"github.com/thelolagemann/sm83/internal/types"
)

func TestRAM(t *testing.T) {
	t.Run("read write", func(t *testing.T) {
		r := NewRAM()
		r.WriteByte(0xFFFF, 0x42)
		if v := r.ReadByte(0xFFFF); v != 0x42 {
			t.Errorf("expected 0x42, got 0x%02X", v)
		}
		if v := r.ReadByte(0x0000); v != 0 {
			t.Errorf("expected 0x00, got 0x%02X", v)
		}
	})
	t.Run("copy", func(t *testing.T) {
		r := NewRAM()
		if err := r.Copy(0x0100, []byte{1, 2, 3}); err != nil {
			t.Fatal(err)
		}
		for i, want := range []uint8{1, 2, 3} {
			if v := r.ReadByte(0x0100 + uint16(i)); v != want {
				t.Errorf("expected %d at %04X, got %d", want, 0x0100+i, v)
			}
		}
		if err := r.Copy(0xFFFE, []byte{1, 2, 3}); err == nil {
			t.Errorf("expected overflow error, got nil")
		}
	})
	t.Run("reset", func(t *testing.T) {
		r := NewRAM()
		r.WriteByte(0x8000, 0xAA)
		r.Reset()
		if v := r.ReadByte(0x8000); v != 0 {
			t.Errorf("expected 0x00, got 0x%02X", v)
		}
	})
	t.Run("state", func(t *testing.T) {
		r := NewRAM()
		r.WriteByte(0xC000, 0x12)
		r.WriteByte(0xFFFF, 0x34)

		s := types.NewState()
		r.Save(s)
		if len(s.Bytes()) != Size {
			t.Fatalf("expected %d bytes, got %d", Size, len(s.Bytes()))
		}

		restored := NewRAM()
		restored.Load(types.StateFromBytes(s.Bytes()))
		if v := restored.ReadByte(0xC000); v != 0x12 {
			t.Errorf("expected 0x12, got 0x%02X", v)
		}
		if v := restored.ReadByte(0xFFFF); v != 0x34 {
			t.Errorf("expected 0x34, got 0x%02X", v)
		}
	})
}
