package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/thelolagemann/sm83/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	var colour bool

	rootCmd := &cobra.Command{
		Use:           "sm83",
		Short:         "Run and inspect SM83 machine code",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info or error")
	rootCmd.PersistentFlags().BoolVar(&colour, "colour", false, "Colourise register dumps")

	env := &env{}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		env.log = log.NewNamed("sm83", level, cmd.ErrOrStderr())
		env.printer = pp.New()
		env.printer.SetColoringEnabled(colour)
		return nil
	}

	rootCmd.AddCommand(newRunCmd(env), newDisasmCmd(env), newInspectCmd(env))
	return rootCmd
}

// env carries what the persistent flags configure to each command.
type env struct {
	log     log.Logger
	printer *pp.PrettyPrinter
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
