package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tidy/internal/diag"
	"tidy/internal/diagfmt"
	"tidy/internal/driver"
	"tidy/internal/optable"
	"tidy/internal/source"
)

// commandEnv собирает всё, что команды читают из глобальных флагов и tidy.toml.
type commandEnv struct {
	opts       driver.Options
	manifest   *projectManifest
	quiet      bool
	timings    bool
	colorOut   bool
	colorErr   bool
	diagFormat string
	pathMode   diagfmt.PathMode
	stdout     io.Writer
	stderr     io.Writer
}

func newCommandEnv(cmd *cobra.Command) (*commandEnv, error) {
	flags := cmd.Root().PersistentFlags()
	env := &commandEnv{stdout: cmd.OutOrStdout(), stderr: cmd.ErrOrStderr()}

	var err error
	if env.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if env.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	colorMode, err := checkChoice("color", colorFlag, "auto", "on", "off")
	if err != nil {
		return nil, err
	}
	env.colorOut = useColor(colorMode, os.Stdout)
	env.colorErr = useColor(colorMode, os.Stderr)

	diagFormat, err := flags.GetString("diag-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	if env.diagFormat, err = checkChoice("diag-format", diagFormat, "pretty", "json", "short"); err != nil {
		return nil, err
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if env.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return nil, withSuggestion(err, pathMode, []string{"auto", "absolute", "relative", "basename"})
	}

	table := optable.Default()
	env.manifest, err = loadManifest(".")
	if err != nil {
		return nil, err
	}
	if env.manifest != nil {
		table = env.manifest.Table(table)
		if limit := env.manifest.Config.Diagnostics.Max; limit > 0 && !flags.Changed("max-diagnostics") {
			maxDiagnostics = limit
		}
		env.printDiagnostics(env.manifest.Bag, env.manifest.FileSet)
		if env.manifest.Bag.HasErrors() {
			return nil, errReported
		}
	}

	env.opts = driver.Options{MaxDiagnostics: maxDiagnostics, Table: table}
	return env, nil
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// printDiagnostics печатает bag в stderr в выбранном формате.
func (env *commandEnv) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	switch env.diagFormat {
	case "short":
		fmt.Fprintln(env.stderr, diag.FormatShortDiagnostics(bag.Items(), fs, !env.quiet))
		return
	case "json":
		err := diagfmt.JSON(env.stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         env.pathMode,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
		if err != nil {
			fmt.Fprintf(env.stderr, "failed to write diagnostics: %v\n", err)
		}
		return
	}
	diagfmt.Pretty(env.stderr, bag, fs, diagfmt.PrettyOpts{
		Color:       env.colorErr,
		Context:     1,
		PathMode:    env.pathMode,
		ShowNotes:   true,
		ShowFixes:   !env.quiet,
		ShowPreview: !env.quiet,
	})
}
