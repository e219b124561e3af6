package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/sm83/internal/snapshot"
	"github.com/thelolagemann/sm83/internal/system"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/monitor"
)

func newRunCmd(env *env) *cobra.Command {
	var (
		program, origin string
		maxSteps        uint64
		save, resume    string
		monitorAddr     string
		trace           bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a program until it halts or stops",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts := []system.Opt{
				system.WithLogger(env.log),
				system.MaxSteps(maxSteps),
			}

			var code []byte
			switch {
			case resume != "":
				st, err := snapshot.Open(resume)
				if err != nil {
					return fmt.Errorf("resuming %s: %w", resume, err)
				}
				opts = append(opts, system.WithState(st))
			case program != "":
				var err error
				if code, err = parseProgram(program); err != nil {
					return err
				}
				start, err := parseAddress(origin)
				if err != nil {
					return err
				}
				opts = append(opts, system.Origin(start))
			default:
				return errors.New("one of --program or --resume is required")
			}

			if trace {
				out := cmd.OutOrStdout()
				opts = append(opts, system.WithObserver(func(s system.Step) {
					fmt.Fprintf(out, "%6d  %04X  %-16s %s\n", s.Index, s.PC, s.Text, s.Registers.String())
				}))
			}

			var hub *monitor.Hub
			if monitorAddr != "" {
				hub = monitor.NewHub(monitor.WithLogger(env.log))
				go hub.Run(ctx)
				go func() {
					if err := hub.ListenAndServe(ctx, monitorAddr); err != nil {
						env.log.Errorf("monitor: %v", err)
					}
				}()
				opts = append(opts, system.WithObserver(publisher(hub, env)))
			}

			sys, err := system.New(code, opts...)
			if err != nil {
				return err
			}

			res, err := sys.Run(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "%s after %d steps\n", res.Reason, res.Steps)
			if _, perr := env.printer.Fprintln(cmd.OutOrStdout(), dumpRegisters(&sys.CPU.RegisterFile)); perr != nil {
				return perr
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			if save != "" {
				if err := snapshot.Save(save, sys); err != nil {
					return fmt.Errorf("saving %s: %w", save, err)
				}
				env.log.Infof("saved state to %s", save)
			}

			if hub != nil && ctx.Err() == nil {
				env.log.Infof("run finished, monitor still serving on %s (interrupt to exit)", monitorAddr)
				<-ctx.Done()
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&program, "program", "p", "", "Program as hex bytes")
	cmd.Flags().StringVar(&origin, "origin", "0", "Address the program is loaded and started at")
	cmd.Flags().Uint64Var(&maxSteps, "max-steps", 1_000_000, "Maximum instructions to execute (0 = unbounded)")
	cmd.Flags().StringVar(&save, "save", "", "Write a snapshot to this file when the run ends")
	cmd.Flags().StringVar(&resume, "resume", "", "Resume from a snapshot instead of loading a program")
	cmd.Flags().StringVar(&monitorAddr, "monitor", "", "Serve register states over websocket on this address")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every executed instruction")
	cmd.MarkFlagsMutuallyExclusive("program", "resume")
	return cmd
}

// publisher returns an observer that streams the registers of every
// step to the hub.
func publisher(hub *monitor.Hub, env *env) system.Observer {
	return func(s system.Step) {
		st := types.NewState()
		s.Registers.Save(st)
		if err := hub.Publish(st.Bytes()); err != nil && !errors.Is(err, monitor.ErrClosed) {
			env.log.Errorf("monitor: %v", err)
		}
	}
}
