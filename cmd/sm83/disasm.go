package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/ram"
)

func newDisasmCmd(env *env) *cobra.Command {
	var program, origin string

	cmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble a program",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseProgram(program)
			if err != nil {
				return err
			}
			start, err := parseAddress(origin)
			if err != nil {
				return err
			}

			mem := ram.NewRAM()
			if err := mem.Copy(start, code); err != nil {
				return err
			}
			env.log.Debugf("disassembling %d bytes at %04X", len(code), start)
			listing(cmd.OutOrStdout(), mem, start, int(start)+len(code), -1)
			return nil
		},
	}
	cmd.Flags().StringVarP(&program, "program", "p", "", "Program as hex bytes")
	cmd.Flags().StringVar(&origin, "origin", "0", "Address the program is loaded at")
	_ = cmd.MarkFlagRequired("program")
	return cmd
}

// listing disassembles from pc until end, or until count instructions
// have been printed when count is not negative.
func listing(out io.Writer, bus cpu.Bus, pc uint16, end, count int) {
	for addr := int(pc); addr < end && count != 0; count-- {
		ins, err := cpu.Decode(bus, uint16(addr))
		if err != nil {
			// illegal opcodes are emitted as data
			b := bus.ReadByte(uint16(addr))
			fmt.Fprintf(out, "%04X  %-8s  DB $%02X\n", addr, fmt.Sprintf("%02X", b), b)
			addr++
			continue
		}

		var raw []string
		for i := 0; i < int(ins.Length()); i++ {
			raw = append(raw, fmt.Sprintf("%02X", bus.ReadByte(uint16(addr+i))))
		}
		fmt.Fprintf(out, "%04X  %-8s  %s\n", addr, strings.Join(raw, " "), ins.Format(bus, uint16(addr)))
		addr += int(ins.Length())
	}
}
