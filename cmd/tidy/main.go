package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tidy/internal/version"
)

// errReported: ошибки уже выведены как диагностики, печатать нечего.
var errReported = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:           "tidy",
	Short:         "tidy language front end",
	Long:          `tidy tokenizes and parses tidy sources with a generalized shunting-yard engine`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupSession(cmd)
	},
}

// main registers subcommands and persistent flags, then runs the root command.
// Any error exits with status 1; tracing and profiling are torn down first.
func main() {
	rootCmd.Version = version.Get().Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(shuntCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("diag-format", "pretty", "diagnostics format (pretty|json|short)")
	flags.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity for ring/both modes")
	flags.String("profile", "", "enable a profiler (cpu|mem|trace|...)")
	flags.String("profile-path", "", "directory for profile files (default: temp dir)")

	err := rootCmd.Execute()
	finishSession(err != nil)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
