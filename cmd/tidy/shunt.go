package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tidy/internal/diagfmt"
	"tidy/internal/driver"
	"tidy/internal/trace"
)

var shuntCmd = &cobra.Command{
	Use:   "shunt [flags] <file.td|->",
	Short: "Print the postfix output sequence of the shunting-yard engine",
	Long: `Shunt runs the lexer and the shunting-yard engine and prints the output
sequence the tree builder would consume: operands, count atoms (#n),
calls (/n), operators, ranges and block markers`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShunt,
}

func init() {
	shuntCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addInputFlags(shuntCmd)
}

func runShunt(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format, err = checkChoice("format", format, "pretty", "json"); err != nil {
		return err
	}
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	if in.kind == inputDir {
		return errors.New("shunt works on a single file; use parse for directories")
	}

	span, _ := trace.StartSpan(cmd.Context(), trace.ScopeDriver, "shunt")
	defer span.End("")

	var res *driver.ShuntResult
	if in.kind == inputInline {
		res = driver.ShuntSource(in.name, in.text, env.opts)
	} else if res, err = driver.Shunt(in.path, env.opts); err != nil {
		return fmt.Errorf("shunt failed: %w", err)
	}
	env.printDiagnostics(res.Bag, res.FileSet)

	// при ошибке печатается то, что движок успел выдать
	if format == "json" {
		err = diagfmt.FormatItemsJSON(env.stdout, res.Items)
	} else {
		err = diagfmt.FormatItemsPretty(env.stdout, res.Items)
	}
	if err != nil {
		return err
	}
	if res.Err != nil || res.Bag.HasErrors() {
		return errReported
	}
	return nil
}
