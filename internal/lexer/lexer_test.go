package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"tidy/internal/diag"
	"tidy/internal/lexer"
	"tidy/internal/source"
	"tidy/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.td", []byte(input))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag, fs
}

// collectAllTokens собирает все токены до EOF (EOF не включается)
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// significant отбрасывает Blank/Comment и печатает kind:raw
func significant(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsSignificant() {
			parts = append(parts, fmt.Sprintf("%s:%s", tok.Kind, tok.Raw))
		}
	}
	return strings.Join(parts, " ")
}

var coverageInputs = []string{
	"",
	"1+2",
	"-3 + 4 * (5 - 6)",
	"f(1, 2); g()",
	"[1,2,10] ]0,1[",
	"{x, y: x ^ y ^ 2}",
	"# comment\nx := 3 # trailing",
	"### multi\nline ### y",
	"\"say \"\"hi\"\"\" r`a``b` `plain`",
	"'a '∞ ∞ 'λ",
	"(+) ( < > ) ⊕ ⊗",
	"a ≠ b and c ∉ d",
	"1.5e-3f 3r 2i 1b0 4e5",
	"x ? y ` unterminated",
	"\"open string\nnext",
	"α_1 λx ∑ xs",
	"### never closed",
	"a\r\n\tb",
}

func TestRawCoverage(t *testing.T) {
	for _, input := range coverageInputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			lx, _, _ := makeTestLexer(input)
			var b strings.Builder
			for _, tok := range collectAllTokens(lx) {
				if tok.Raw == "" {
					t.Fatalf("empty token %v", tok)
				}
				b.WriteString(tok.Raw)
			}
			if b.String() != input {
				t.Fatalf("raw concatenation = %q, want %q", b.String(), input)
			}
		})
	}
}

func TestPositionsMatchRescan(t *testing.T) {
	for _, input := range coverageInputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			lx, _, fs := makeTestLexer(input)
			for _, tok := range collectAllTokens(lx) {
				want, _ := fs.Resolve(tok.Span)
				if tok.Line != want.Line || tok.Col != want.Col {
					t.Errorf("%v: got %d:%d, re-scan says %d:%d", tok, tok.Line, tok.Col, want.Line, want.Col)
				}
			}
		})
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2", "number:1 operator:+ number:2"},
		{"f(x, y)", "word:f paren_open:( word:x comma:, word:y paren_close:)"},
		{"a;b", "word:a separator:; word:b"},
		{"{x: x}", "block_open:{ word:x block_split:: word:x block_close:}"},
		{"x := 1", "word:x operator::= number:1"},
		{"1.5e-3f", "number:1.5e-3f"},
		{"2e-x", "number:2e- word:x"},
		{"3ri", "number:3ri"},
		{"10b2", "number:10b2"},
		{`"a""b"`, `string:"a""b"`},
		{"r`x``y`", "pattern_string:r`x``y`"},
		{"`x`", "pattern_string:`x`"},
		{"'a'b", "character:'a character:'b"},
		{"' ", "character:' "},
		{"∞", "infinity:∞"},
		{"(+)", "op_quote:(+)"},
		{"( <= >= )", "op_quote:( <= >= )"},
		{"(and)", "op_quote:(and)"},
		{"⊕", "op_quote:⊕"},
		{"(-1)", "paren_open:( operator:- number:1 paren_close:)"},
		{"(andy)", "paren_open:( word:andy paren_close:)"},
		{"android and b", "word:android operator:and word:b"},
		{"x in xs", "word:x operator:in word:xs"},
		{"inner", "word:inner"},
		{"a.b", "word:a operator:. word:b"},
		{"λ√2", "word:λ operator:√ number:2"},
		{"#x\ny", "word:y"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, bag, _ := makeTestLexer(tt.input)
			if got := significant(collectAllTokens(lx)); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
			if bag.Len() != 0 {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLongestMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a<<<b", "<<<"},
		{"a<<b", "<<"},
		{"a<b", "<"},
		{"a>>>b", ">>>"},
		{"a//b", "//"},
		{"a!in b", "!in"},
		{"a/=b", "/="},
		{"a./b", "./"},
	}
	for _, tt := range tests {
		lx, _, _ := makeTestLexer(tt.input)
		toks := collectAllTokens(lx)
		if len(toks) < 2 || toks[1].Kind != token.Operator || toks[1].Raw != tt.want {
			t.Errorf("%q: expected operator %q, got %v", tt.input, tt.want, toks)
		}
	}
}

func TestRangeToggle(t *testing.T) {
	lx, _, _ := makeTestLexer("[1,5] ]0,1[ [[")
	var kinds []token.Kind
	for _, tok := range collectAllTokens(lx) {
		if tok.Kind == token.RangeOpen || tok.Kind == token.RangeClose {
			kinds = append(kinds, tok.Kind)
		}
	}
	want := []token.Kind{
		token.RangeOpen, token.RangeClose,
		token.RangeOpen, token.RangeClose,
		token.RangeOpen, token.RangeClose, // ранги не вкладываются
	}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
}

func TestCommentForms(t *testing.T) {
	lx, bag, _ := makeTestLexer("a # one\n### two\nthree ### b")
	toks := collectAllTokens(lx)
	var comments []string
	for _, tok := range toks {
		if tok.Kind == token.Comment {
			comments = append(comments, tok.Raw)
		}
	}
	if len(comments) != 2 || comments[0] != "# one" || comments[1] != "### two\nthree ###" {
		t.Fatalf("unexpected comments %q", comments)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics %v", bag.Items())
	}
}

func TestUnterminatedComment(t *testing.T) {
	lx, bag, _ := makeTestLexer("x ### open")
	toks := collectAllTokens(lx)
	last := toks[len(toks)-1]
	if last.Kind != token.Comment || last.Raw != "### open" {
		t.Fatalf("expected comment to run to EOF, got %v", last)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("expected LexUnterminatedComment, got %v", bag.Items())
	}
	if len(bag.Items()[0].Fixes) != 1 {
		t.Fatal("expected a fix closing the comment")
	}
}

func TestUnknownCharacterIsReportedAndSkipped(t *testing.T) {
	lx, bag, _ := makeTestLexer("a ? b")
	got := significant(collectAllTokens(lx))
	if got != "word:a unknown:? word:b" {
		t.Fatalf("got %s", got)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.LexUnknownChar || d.Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Primary.Start != 2 || d.Primary.End != 3 {
		t.Fatalf("unexpected span %v", d.Primary)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag, _ := makeTestLexer("x \"abc")
	got := significant(collectAllTokens(lx))
	if got != `word:x unknown:" word:abc` {
		t.Fatalf("got %s", got)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", bag.Items())
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _, _ := makeTestLexer("a")
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok)
		}
	}
}

func TestAll(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("all.td", []byte("1 + 2")))
	toks := lexer.All(file, lexer.Options{})
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %d: %v", len(toks), toks)
	}
}
