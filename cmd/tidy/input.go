package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type inputKind uint8

const (
	inputFile inputKind = iota
	inputDir
	inputInline // -e или stdin
)

type input struct {
	kind inputKind
	path string // файл или каталог
	name string // имя виртуального файла
	text string
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("expr", "e", "", "parse the given source text instead of a file")
}

// resolveInput: "-e текст", "-" (stdin), файл или каталог.
func resolveInput(cmd *cobra.Command, args []string) (input, error) {
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return input{}, fmt.Errorf("failed to get expr flag: %w", err)
	}
	switch {
	case expr != "" && len(args) > 0:
		return input{}, errors.New("use either -e or a path, not both")
	case expr != "":
		return input{kind: inputInline, name: "<expr>", text: expr}, nil
	case len(args) == 0:
		return input{}, errors.New("expected a file, a directory, \"-\" for stdin, or -e <source>")
	case args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return input{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return input{kind: inputInline, name: "<stdin>", text: string(data)}, nil
	}

	st, err := os.Stat(args[0])
	if err != nil {
		return input{}, fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return input{kind: inputDir, path: args[0]}, nil
	}
	return input{kind: inputFile, path: args[0]}, nil
}
