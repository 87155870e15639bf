package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tidy/internal/diagfmt"
	"tidy/internal/driver"
	"tidy/internal/token"
	"tidy/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.td|directory|->",
	Short: "Tokenize tidy sources",
	Long:  `Tokenize breaks tidy source text into tokens; blanks and comments are hidden unless --trivia is set`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "include blank and comment tokens")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	addInputFlags(tokenizeCmd)
}

type tokenFileOutput struct {
	File   string                `json:"file"`
	Tokens []diagfmt.TokenOutput `json:"tokens"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
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
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	if env.opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	in, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}

	span, ctx := trace.StartSpan(cmd.Context(), trace.ScopeDriver, "tokenize")
	defer span.End("")

	if in.kind == inputDir {
		fs, results, err := driver.TokenizeDir(ctx, in.path, env.opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		failed := false
		outs := make([]tokenFileOutput, 0, len(results))
		for _, r := range results {
			env.printDiagnostics(r.Bag, fs)
			failed = failed || r.Bag.HasErrors()
			toks := filterTrivia(r.Tokens, trivia)
			if format == "json" {
				outs = append(outs, tokenFileOutput{File: r.Path, Tokens: diagfmt.BuildTokensOutput(toks)})
				continue
			}
			if !env.quiet {
				fmt.Fprintf(env.stdout, "== %s ==\n", r.Path)
			}
			if err := diagfmt.FormatTokensPretty(env.stdout, toks, fs); err != nil {
				return err
			}
		}
		if format == "json" {
			encoder := json.NewEncoder(env.stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(outs); err != nil {
				return err
			}
		}
		if failed {
			return errReported
		}
		return nil
	}

	var res *driver.TokenizeResult
	if in.kind == inputInline {
		res = driver.TokenizeSource(in.name, in.text, env.opts)
	} else if res, err = driver.Tokenize(in.path, env.opts); err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	env.printDiagnostics(res.Bag, res.FileSet)

	toks := filterTrivia(res.Tokens, trivia)
	if format == "json" {
		err = diagfmt.FormatTokensJSON(env.stdout, toks)
	} else {
		err = diagfmt.FormatTokensPretty(env.stdout, toks, res.FileSet)
	}
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errReported
	}
	return nil
}

func filterTrivia(toks []token.Token, keep bool) []token.Token {
	if keep {
		return toks
	}
	out := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == token.Blank || tok.Kind == token.Comment {
			continue
		}
		out = append(out, tok)
	}
	return out
}
