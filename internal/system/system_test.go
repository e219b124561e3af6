package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/types"
)

// fibonacci writes 3/5/8/13/21/34 to B/C/D/E/H/L and halts.
var fibonacci = []byte{
	0x06, 0x03,       // LD B,3
	0x0E, 0x05,       // LD C,5
	0x78, 0x81, 0x57, // LD A,B; ADD A,C; LD D,A
	0x79, 0x82, 0x5F, // LD A,C; ADD A,D; LD E,A
	0x7A, 0x83, 0x67, // LD A,D; ADD A,E; LD H,A
	0x7B, 0x84, 0x6F, // LD A,E; ADD A,H; LD L,A
	0x76,             // HALT
}

func assertFibonacci(t *testing.T, c *cpu.CPU) {
	t.Helper()
	want := map[cpu.Register]uint8{cpu.B: 3, cpu.C: 5, cpu.D: 8, cpu.E: 13, cpu.H: 21, cpu.L: 34}
	for r, v := range want {
		assert.Equalf(t, v, c.Reg8(r), "register %s", r)
	}
}

func TestSystem_Run(t *testing.T) {
	t.Run("fibonacci", func(t *testing.T) {
		s, err := New(fibonacci)
		require.NoError(t, err)

		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ReasonHalt, res.Reason)
		assert.Equal(t, uint64(15), res.Steps)
		assertFibonacci(t, s.CPU)
		assert.Equal(t, uint16(len(fibonacci)), s.CPU.Reg16(cpu.PC))
	})

	t.Run("call loop", func(t *testing.T) {
		program := make([]byte, 0x12)
		copy(program, []byte{
			0x31, 0xFE, 0xFF, // LD SP,$FFFE
			0x06, 0x05,       // LD B,5
			0xAF,             // XOR A
			0xCD, 0x10, 0x00, // CALL $0010
			0x05,             // DEC B
			0x20, 0xFA,       // JR NZ,-6
			0x76,             // HALT
		})
		copy(program[0x10:], []byte{
			0x3C, // INC A
			0xC9, // RET
		})

		s, err := New(program)
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ReasonHalt, res.Reason)
		assert.Equal(t, uint64(29), res.Steps)
		assert.Equal(t, uint8(5), s.CPU.Reg8(cpu.A))
		assert.Equal(t, StackTop, s.CPU.Reg16(cpu.SP))
	})

	t.Run("interrupt", func(t *testing.T) {
		program := make([]byte, 0x53)
		copy(program, []byte{
			0x3E, 0x04, // LD A,$04
			0xE0, 0xFF, // LDH ($FF),A
			0xE0, 0x0F, // LDH ($0F),A
			0xFB,       // EI
			0x00,       // NOP
			0x76,       // HALT
		})
		copy(program[0x50:], []byte{
			0x06, 0x42, // LD B,$42
			0xD9,       // RETI
		})

		var serviced []uint64
		s, err := New(program, WithObserver(func(st Step) {
			if st.Interrupt != 0 {
				assert.Equal(t, uint16(0x0050), st.Interrupt)
				serviced = append(serviced, st.Index)
			}
		}))
		require.NoError(t, err)

		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ReasonHalt, res.Reason)
		assert.Equal(t, uint64(8), res.Steps)
		assert.Equal(t, []uint64{6}, serviced)
		assert.Equal(t, uint8(0x42), s.CPU.Reg8(cpu.B))
		assert.Equal(t, StackTop, s.CPU.Reg16(cpu.SP))
		assert.True(t, s.Interrupts.IME)
	})

	t.Run("requested interrupt", func(t *testing.T) {
		program := make([]byte, 0x43)
		copy(program, []byte{
			0x3E, 0x01, // LD A,$01
			0xE0, 0xFF, // LDH ($FF),A
			0xFB,       // EI
			0x00,       // NOP
			0x76,       // HALT
			0x76,       // HALT
		})
		copy(program[0x40:], []byte{
			0x0E, 0x99, // LD C,$99
			0xD9,       // RETI
		})

		s, err := New(program)
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ReasonHalt, res.Reason)
		assert.Equal(t, uint64(5), res.Steps)

		s.RequestInterrupt(interrupts.VBlankFlag)
		assert.Equal(t, uint8(0xE1), s.RAM.ReadByte(interrupts.FlagAddress))

		res, err = s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ReasonHalt, res.Reason)
		assert.Equal(t, uint64(3), res.Steps)
		assert.Equal(t, uint8(0x99), s.CPU.Reg8(cpu.C))
		assert.Equal(t, uint16(0x0008), s.CPU.Reg16(cpu.PC))
		assert.Equal(t, uint8(0xE0), s.RAM.ReadByte(interrupts.FlagAddress))
	})

	t.Run("stop", func(t *testing.T) {
		s, err := New([]byte{0x10, 0x00})
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ReasonStop, res.Reason)
		assert.Equal(t, uint16(2), s.CPU.Reg16(cpu.PC))
	})

	t.Run("max steps", func(t *testing.T) {
		s, err := New([]byte{0x18, 0xFE}, MaxSteps(100)) // JR -2
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ReasonMaxSteps, res.Reason)
		assert.Equal(t, uint64(100), res.Steps)
		assert.Equal(t, uint16(0), s.CPU.Reg16(cpu.PC))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s, err := New([]byte{0x18, 0xFE})
		require.NoError(t, err)
		res, err := s.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, ReasonCancelled, res.Reason)
	})

	t.Run("illegal opcode", func(t *testing.T) {
		s, err := New([]byte{0x00, 0xD3})
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		assert.ErrorIs(t, err, cpu.ErrIllegalOpcode)
		assert.Equal(t, ReasonError, res.Reason)
		assert.Equal(t, uint64(1), res.Steps)
	})
}

func TestSystem_Observer(t *testing.T) {
	var texts []string
	s, err := New(fibonacci, WithObserver(func(st Step) {
		texts = append(texts, st.Text)
	}))
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, texts, 15)
	assert.Equal(t, "LD B,$03", texts[0])
	assert.Equal(t, "ADD A,C", texts[3])
	assert.Equal(t, "HALT", texts[14])
}

func TestSystem_State(t *testing.T) {
	s, err := New(fibonacci, MaxSteps(5))
	require.NoError(t, err)
	res, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, ReasonMaxSteps, res.Reason)

	st := types.NewState()
	s.Save(st)

	restored, err := New(nil, WithState(types.StateFromBytes(st.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, s.CPU.Reg16(cpu.PC), restored.CPU.Reg16(cpu.PC))

	res, err = restored.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReasonHalt, res.Reason)
	assert.Equal(t, uint64(10), res.Steps)
	assertFibonacci(t, restored.CPU)
}

func TestSystem_ShortState(t *testing.T) {
	_, err := New(nil, WithState(types.StateFromBytes([]byte{0x01, 0x02})))
	assert.ErrorIs(t, err, types.ErrShortState)
}

func TestSystem_ProgramTooLarge(t *testing.T) {
	_, err := New(make([]byte, 0x20), Origin(0xFFF0))
	assert.Error(t, err)
}
