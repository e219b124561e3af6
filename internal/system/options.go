package system

import (
	"github.com/thelolagemann/sm83/internal/ram"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a System instance.
type Opt func(s *System)

// WithLogger sets the logger run events are reported to.
func WithLogger(l log.Logger) Opt {
	return func(s *System) {
		s.Logger = l
	}
}

// WithRAM replaces the default zeroed memory.
func WithRAM(r ram.RAM) Opt {
	return func(s *System) {
		s.RAM = r
	}
}

// WithState restores the system from a state written by Save. The
// program passed to New is not loaded when a state is given.
func WithState(st *types.State) Opt {
	return func(s *System) {
		s.state = st
	}
}

// WithObserver registers a function called after every instruction.
func WithObserver(o Observer) Opt {
	return func(s *System) {
		s.observers = append(s.observers, o)
	}
}

// MaxSteps bounds the number of instructions Run executes. Zero means
// no bound.
func MaxSteps(n uint64) Opt {
	return func(s *System) {
		s.maxSteps = n
	}
}

// Origin sets the address the program is loaded at and execution
// starts from.
func Origin(address uint16) Opt {
	return func(s *System) {
		s.origin = address
	}
}
