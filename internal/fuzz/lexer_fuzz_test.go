package fuzztests

import (
	"testing"
	"unicode/utf8"

	"tidy/internal/diag"
	"tidy/internal/lexer"
	"tidy/internal/source"
	"tidy/internal/testkit"
)


func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.td", input))

		bag := diag.NewBag(64)
		toks := lexer.All(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenCoverage(file, toks); err != nil {
			t.Fatalf("coverage: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if !utf8.Valid(input) {
			return // колонки для битых последовательностей не определены
		}
		if err := testkit.CheckTokenPositions(file, toks); err != nil {
			t.Fatalf("positions: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
