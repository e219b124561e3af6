// Package system wires the CPU core to memory and the interrupt
// service and runs programs to completion.
package system

import (
	"context"
	"fmt"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/ram"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// StackTop is the initial stack pointer of a freshly loaded program.
const StackTop uint16 = 0xFFFE

// Reason is why Run returned.
type Reason uint8

const (
	// ReasonHalt means a HALT was executed with no interrupt pending.
	ReasonHalt Reason = iota
	// ReasonStop means a STOP was executed.
	ReasonStop
	// ReasonMaxSteps means the step bound was reached.
	ReasonMaxSteps
	// ReasonCancelled means the context was cancelled.
	ReasonCancelled
	// ReasonError means an instruction failed.
	ReasonError
)

func (r Reason) String() string {
	switch r {
	case ReasonHalt:
		return "halt"
	case ReasonStop:
		return "stop"
	case ReasonMaxSteps:
		return "max steps"
	case ReasonCancelled:
		return "cancelled"
	case ReasonError:
		return "error"
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// Step describes one executed instruction.
type Step struct {
	// Index counts executed instructions, starting at 1.
	Index uint64
	// PC is the address the instruction was fetched from.
	PC uint16
	// Instruction is the decoded instruction.
	Instruction cpu.Instruction
	// Text is the instruction with its immediates filled in.
	Text string
	// Registers holds the registers after execution.
	Registers cpu.RegisterFile
	// Signals are the mode transitions the instruction raised.
	Signals cpu.Signal
	// Interrupt is the vector serviced before the instruction, or 0.
	Interrupt uint16
}

// Observer is called synchronously after every instruction.
type Observer func(Step)

// Result summarises a call to Run.
type Result struct {
	Reason Reason
	Steps  uint64
}

// System is a CPU attached to a flat memory and an interrupt service.
type System struct {
	CPU        *cpu.CPU
	RAM        ram.RAM
	Interrupts *interrupts.Service

	log.Logger

	observers []Observer
	maxSteps  uint64
	steps     uint64
	origin    uint16
	state     *types.State
}

// New returns a System with program loaded at the origin, PC pointing
// at it and SP at StackTop.
func New(program []byte, opts ...Opt) (*System, error) {
	s := &System{
		RAM:        ram.NewRAM(),
		Interrupts: interrupts.NewService(),
		Logger:     log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.CPU = cpu.NewCPU(s.RAM, cpu.WithLogger(s.Logger))

	if s.state != nil {
		s.Load(s.state)
		if err := s.state.Err(); err != nil {
			return nil, fmt.Errorf("system: loading state: %w", err)
		}
		return s, nil
	}

	if err := s.RAM.Copy(s.origin, program); err != nil {
		return nil, fmt.Errorf("system: loading program: %w", err)
	}
	_ = s.CPU.Write(cpu.PC, cpu.Word(s.origin))
	_ = s.CPU.Write(cpu.SP, cpu.Word(StackTop))
	return s, nil
}

// Steps returns the number of instructions executed so far.
func (s *System) Steps() uint64 {
	return s.steps
}

// Step services a pending interrupt, if any, then executes one
// instruction and notifies the observers.
func (s *System) Step() (Step, error) {
	var step Step

	s.Interrupts.Sync(s.RAM)
	if vector := s.Interrupts.Dispatch(); vector != 0 {
		s.Debugf("servicing interrupt %04X at PC=%04X", vector, s.CPU.Reg16(cpu.PC))
		s.CPU.Interrupt(vector)
		s.Interrupts.Commit(s.RAM)
		step.Interrupt = vector
	}

	step.PC = s.CPU.Reg16(cpu.PC)
	ins, err := s.CPU.Step()
	step.Instruction = ins
	if err != nil {
		return step, fmt.Errorf("system: step at %04X: %w", step.PC, err)
	}
	step.Text = ins.Format(s.CPU.Bus(), step.PC)

	step.Signals = s.CPU.TakeSignals()
	s.Interrupts.Apply(step.Signals)

	s.steps++
	step.Index = s.steps
	step.Registers = s.CPU.RegisterFile
	for _, o := range s.observers {
		o(step)
	}
	return step, nil
}

// RequestInterrupt sets flag in IF on the bus, as a peripheral
// would. It is serviced before the next instruction when enabled in
// IE and the IME is set.
func (s *System) RequestInterrupt(flag uint8) {
	s.Interrupts.Sync(s.RAM)
	s.Interrupts.Request(flag)
	s.Interrupts.Commit(s.RAM)
}

// Run steps the system until it halts or stops, the step bound is
// reached, an instruction fails or ctx is cancelled. A HALT with an
// interrupt already pending does not end the run.
func (s *System) Run(ctx context.Context) (Result, error) {
	start := s.steps
	result := func(r Reason) Result {
		return Result{Reason: r, Steps: s.steps - start}
	}

	s.Infof("running from PC=%04X", s.CPU.Reg16(cpu.PC))
	for {
		select {
		case <-ctx.Done():
			s.Infof("cancelled after %d steps", s.steps-start)
			return result(ReasonCancelled), ctx.Err()
		default:
		}
		if s.maxSteps > 0 && s.steps-start >= s.maxSteps {
			s.Infof("step limit %d reached", s.maxSteps)
			return result(ReasonMaxSteps), nil
		}

		step, err := s.Step()
		if err != nil {
			s.Errorf("%v", err)
			return result(ReasonError), err
		}

		switch {
		case step.Signals.Has(cpu.SignalStop):
			s.Infof("STOP at %04X after %d steps", step.PC, s.steps-start)
			return result(ReasonStop), nil
		case step.Signals.Has(cpu.SignalHalt):
			s.Interrupts.Sync(s.RAM)
			if s.Interrupts.HasInterrupts() {
				s.Debugf("HALT at %04X woken by pending interrupt", step.PC)
				continue
			}
			s.Infof("HALT at %04X after %d steps", step.PC, s.steps-start)
			return result(ReasonHalt), nil
		}
	}
}

var _ types.Stater = (*System)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - CPU registers
//   - interrupt service
//   - memory
func (s *System) Load(st *types.State) {
	s.CPU.Load(st)
	s.Interrupts.Load(st)
	s.RAM.Load(st)
}

// Save implements the types.Stater interface.
func (s *System) Save(st *types.State) {
	s.CPU.Save(st)
	s.Interrupts.Save(st)
	s.RAM.Save(st)
}
