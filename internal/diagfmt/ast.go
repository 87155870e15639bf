package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"tidy/internal/ast"
	"tidy/internal/source"
	"tidy/internal/token"
)

// ASTOutput: корень JSON/YAML вывода дерева одного файла.
type ASTOutput struct {
	File  string       `json:"file" yaml:"file"`
	Roots []ast.Record `json:"roots" yaml:"roots"`
}

// BuildASTOutput собирает сериализуемый вид дерева файла.
func BuildASTOutput(roots []ast.Element, file *source.File) ASTOutput {
	out := ASTOutput{Roots: ast.ToRecords(roots)}
	if file != nil {
		out.File = file.Path
	}
	return out
}

// FormatASTPretty печатает корни как дерево с отступами ├─/└─.
func FormatASTPretty(w io.Writer, roots []ast.Element, file *source.File, fs *source.FileSet) error {
	header := "<input>"
	if file != nil {
		header = file.Path
	}
	if _, err := fmt.Fprintf(w, "%s (roots: %d)\n", header, len(roots)); err != nil {
		return err
	}
	for i, root := range roots {
		writePrefixTree(w, buildTreeNode(root, fs, true), "", i == len(roots)-1)
	}
	return nil
}

// FormatASTJSON выводит дерево как JSON-записи ast.Record.
func FormatASTJSON(w io.Writer, roots []ast.Element, file *source.File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(roots, file))
}

// FormatASTYAML выводит те же записи в YAML.
func FormatASTYAML(w io.Writer, roots []ast.Element, file *source.File) error {
	data, err := yaml.Marshal(BuildASTOutput(roots, file))
	if err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatASTOutputsJSON пишет деревья нескольких файлов одним JSON-массивом.
func FormatASTOutputsJSON(w io.Writer, outs []ASTOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outs)
}

// FormatASTOutputsYAML: то же в YAML.
func FormatASTOutputsYAML(w io.Writer, outs []ASTOutput) error {
	data, err := yaml.Marshal(outs)
	if err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatASTTree рисует каждый корень ASCII-деревом сверху вниз.
func FormatASTTree(w io.Writer, roots []ast.Element) error {
	for i, root := range roots {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		block := renderTree(buildTreeNode(root, nil, false))
		for _, line := range block.lines {
			if _, err := fmt.Fprintln(w, trimRight(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePrefixTree(w io.Writer, node *treeNode, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, node.label)
	for i, child := range node.children {
		writePrefixTree(w, child, prefix+next, i == len(node.children)-1)
	}
}

// buildTreeNode: verbose: метки с видом токена и позициями (pretty),
// иначе только текст головы (tree).
func buildTreeNode(e ast.Element, fs *source.FileSet, verbose bool) *treeNode {
	switch v := e.(type) {
	case *ast.Leaf:
		return &treeNode{label: leafLabel(v.Token, fs, verbose)}
	case *ast.Node:
		node := &treeNode{label: nodeLabel(v, fs, verbose)}
		if v.Kind == token.CallFunc {
			callee := buildTreeNode(v.Head, fs, verbose)
			if verbose {
				callee = &treeNode{label: "callee", children: []*treeNode{callee}}
			}
			node.children = append(node.children, callee)
		}
		for _, c := range v.Children {
			node.children = append(node.children, buildTreeNode(c, fs, verbose))
		}
		return node
	}
	return &treeNode{label: "<nil>"}
}

func leafLabel(tok token.Token, fs *source.FileSet, verbose bool) string {
	if !verbose {
		return tok.Raw
	}
	label := fmt.Sprintf("%s %q (%s)", tok.Kind, tok.Raw, formatSpan(tok.Span, fs))
	switch tok.Kind {
	case token.Number:
		if form := token.ClassifyNumber(tok.Raw); form != token.NumberInteger {
			label += " [" + form.String() + "]"
		}
	case token.OpQuote:
		if ops, ok := ast.QuotedOperator(tok, nil); ok {
			label += " [quotes " + strings.Join(ops, " ") + "]"
		}
	}
	return label
}

func nodeLabel(n *ast.Node, fs *source.FileSet, verbose bool) string {
	head, _ := n.HeadToken()
	var short string
	switch n.Kind {
	case token.UnaryOperator:
		short = "u" + head.Raw
	case token.CallFunc:
		short = fmt.Sprintf("call/%d", len(n.Children))
	case token.MakeBlock:
		short = "block"
	case token.BlockSplit:
		short = "params"
	case token.BlockClose:
		short = "body"
	default:
		short = head.Raw
	}
	if !verbose {
		return short
	}
	label := fmt.Sprintf("%s %s", n.Kind, short)
	if lower, upper, ok := ast.RangeBounds(n); ok {
		label += fmt.Sprintf(" [exclude lower=%v upper=%v]", lower, upper)
	}
	return fmt.Sprintf("%s (%s)", label, formatSpan(n.Span(), fs))
}

func trimRight(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}
