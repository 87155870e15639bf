package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tidy/internal/ast"
	"tidy/internal/diagfmt"
	"tidy/internal/driver"
	"tidy/internal/observ"
	"tidy/internal/pipeline"
	"tidy/internal/source"
	"tidy/internal/trace"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.td|directory|->",
	Short: "Parse tidy sources and print the syntax tree",
	Long:  `Parse runs lexer, shunting-yard engine and tree builder on a file, on every *.td file of a directory, or on inline source (-e)`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var parseFormats = []string{"pretty", "json", "yaml", "tree", "sexpr"}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|tree|sexpr)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().Bool("cache", false, "reuse parsed trees from the on-disk cache")
	parseCmd.Flags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/tidy)")
	parseCmd.Flags().Bool("cache-clear", false, "drop cached trees before parsing")
	parseCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	addInputFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format, err = checkChoice("format", format, parseFormats...); err != nil {
		return err
	}
	if env.opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if env.opts.Cache, err = openCache(cmd); err != nil {
		return err
	}
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}

	span, ctx := trace.StartSpan(cmd.Context(), trace.ScopeDriver, "parse")
	defer span.End("")

	if in.kind == inputDir {
		uiFlag, err := cmd.Flags().GetString("ui")
		if err != nil {
			return fmt.Errorf("failed to get ui flag: %w", err)
		}
		mode, err := readUIMode(uiFlag)
		if err != nil {
			return err
		}
		return parseDirectory(ctx, env, in.path, format, shouldUseTUI(mode) && !env.quiet)
	}

	var res *driver.ParseResult
	if in.kind == inputInline {
		res = driver.ParseSource(ctx, in.name, in.text, env.opts)
	} else if res, err = driver.Parse(ctx, in.path, env.opts); err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	env.printDiagnostics(res.Bag, res.FileSet)
	if env.timings {
		fmt.Fprint(env.stderr, res.Timing.Summary())
	}
	if res.Err != nil || res.Bag.HasErrors() {
		noteFailed(res.File.Path)
	}
	if res.Err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errReported
	}
	if err := writeTree(env.stdout, format, res.Roots, res.File, res.FileSet); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errReported
	}
	return nil
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	drop, err := cmd.Flags().GetBool("cache-clear")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-clear flag: %w", err)
	}
	if !enabled && !drop {
		return nil, nil
	}

	var cache *driver.DiskCache
	if dir != "" {
		cache, err = driver.NewDiskCache(dir)
	} else {
		cache, err = driver.OpenDiskCache("tidy")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear cache %s: %w", cache.Dir(), err)
		}
	}
	if !enabled {
		return nil, nil
	}
	return cache, nil
}

func writeTree(w io.Writer, format string, roots []ast.Element, file *source.File, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(w, roots, file)
	case "yaml":
		return diagfmt.FormatASTYAML(w, roots, file)
	case "tree":
		return diagfmt.FormatASTTree(w, roots)
	case "sexpr":
		_, err := fmt.Fprintln(w, ast.SexprAll(roots))
		return err
	default:
		return diagfmt.FormatASTPretty(w, roots, file, fs)
	}
}

func parseDirectory(ctx context.Context, env *commandEnv, dir, format string, withUI bool) error {
	recorder := &pipeline.Recorder{}
	env.opts.Progress = recorder

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	if withUI {
		fs, results, err = runParseDirWithUI(ctx, env, dir, recorder)
	} else {
		fs, results, err = driver.ParseDir(ctx, dir, env.opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := false
	reports := make([]observ.Report, 0, len(results))
	outs := make([]diagfmt.ASTOutput, 0, len(results))
	for idx, r := range results {
		env.printDiagnostics(r.Bag, fs)
		reports = append(reports, r.Timing)
		if r.Err != nil || r.Bag.HasErrors() {
			failed = true
			noteFailed(r.Path)
		}
		if r.Err != nil {
			continue
		}
		switch format {
		case "json", "yaml":
			out := diagfmt.BuildASTOutput(r.Roots, r.File)
			out.File = r.Path
			outs = append(outs, out)
		default:
			if !env.quiet {
				if idx > 0 {
					fmt.Fprintln(env.stdout)
				}
				fmt.Fprintf(env.stdout, "== %s ==\n", r.Path)
			}
			if err := writeTree(env.stdout, format, r.Roots, r.File, fs); err != nil {
				return err
			}
		}
	}

	switch format {
	case "json":
		err = diagfmt.FormatASTOutputsJSON(env.stdout, outs)
	case "yaml":
		err = diagfmt.FormatASTOutputsYAML(env.stdout, outs)
	}
	if err != nil {
		return err
	}

	if env.timings {
		fmt.Fprint(env.stderr, observ.Merge(reports...).Summary())
		printStageTimings(env.stderr, recorder.Timings())
	}
	if failed {
		return errReported
	}
	return nil
}
