package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/ram"
	"github.com/thelolagemann/sm83/internal/snapshot"
	"github.com/thelolagemann/sm83/internal/system"
)

func newInspectCmd(env *env) *cobra.Command {
	var next int

	cmd := &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Print the registers saved in a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshot.Open(args[0])
			if err != nil {
				return err
			}
			sys, err := system.New(nil, system.WithState(st))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := env.printer.Fprintln(out, dumpRegisters(&sys.CPU.RegisterFile)); err != nil {
				return err
			}
			fmt.Fprintf(out, "IME: %t IE: $%02X IF: $%02X\n", sys.Interrupts.IME, sys.Interrupts.Enable, sys.Interrupts.Flag)

			if next > 0 {
				listing(out, sys.RAM, sys.CPU.Reg16(cpu.PC), ram.Size, next)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&next, "next", 0, "Also disassemble this many instructions from PC")
	return cmd
}
