package optable

import (
	"errors"
	"testing"
	"unicode/utf8"

	"tidy/internal/diag"
)

func TestDefaultPrecedence(t *testing.T) {
	tbl := Default()
	tests := []struct {
		lex   string
		prec  int
		assoc Assoc
	}{
		{":=", 1, Right},
		{"⩴", 1, Right},
		{"|", 2, Left},
		{"or", 3, Left},
		{"∧", 4, Left},
		{"≠", 6, Left},
		{"<<<", 6, Left},
		{"!in", 6, Left},
		{"↦", 8, Left},
		{"-", 10, Left},
		{"∑", 15, Left},
		{"//", 20, Left},
		{"&", 25, Left},
		{"√", 30, Left},
		{"^", 40, Right},
		{"!", 50, Left},
		{"@", 60, Left},
		{".", 70, Left},
	}
	for _, tt := range tests {
		t.Run(tt.lex, func(t *testing.T) {
			prec, err := tbl.Precedence(tt.lex)
			if err != nil {
				t.Fatalf("Precedence: %v", err)
			}
			assoc, err := tbl.Associativity(tt.lex)
			if err != nil {
				t.Fatalf("Associativity: %v", err)
			}
			if prec != tt.prec || assoc != tt.assoc {
				t.Errorf("got (%d, %s), want (%d, %s)", prec, assoc, tt.prec, tt.assoc)
			}
		})
	}
	if Default() != tbl {
		t.Fatal("Default must return the same table")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Default().Lookup("<=>")
	if !errors.Is(err, diag.ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
	var pe *diag.PosError
	if !errors.As(err, &pe) || pe.Code != diag.SynUnknownOperator {
		t.Fatalf("expected *diag.PosError with SynUnknownOperator, got %#v", err)
	}
}

func TestLexemesDescendingLength(t *testing.T) {
	lexemes := Default().Lexemes()
	for i := 1; i < len(lexemes); i++ {
		if len(lexemes[i-1]) < len(lexemes[i]) {
			t.Fatalf("lexeme %q (len %d) sorted before longer %q", lexemes[i-1], len(lexemes[i-1]), lexemes[i])
		}
	}
	if len(lexemes) != Default().Len() {
		t.Fatalf("Lexemes() has %d entries, table has %d", len(lexemes), Default().Len())
	}
}

func TestMatchAt(t *testing.T) {
	tbl := Default()
	tests := []struct {
		src  string
		off  int
		want string
		ok   bool
	}{
		{"<<<x", 0, "<<<", true},
		{"<<x", 0, "<<", true},
		{"<x", 0, "<", true},
		{"a<=b", 1, "<=", true},
		{"//2", 0, "//", true},
		{"./x", 0, "./", true},
		{"and b", 0, "and", true},
		{"android", 0, "", false},
		{"in(", 0, "in", true},
		{"inx", 0, "", false},
		{"!index", 0, "!", true},
		{"!in x", 0, "!in", true},
		{"≤3", 0, "≤", true},
		{"x+1", 0, "", false},
		{"x+1", 1, "+", true},
		{"", 0, "", false},
		{"+", 5, "", false},
	}
	for _, tt := range tests {
		got, ok := tbl.MatchAt([]byte(tt.src), tt.off)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MatchAt(%q, %d) = (%q, %v), want (%q, %v)", tt.src, tt.off, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLongestMatchNeverShadowed(t *testing.T) {
	tbl := Default()
	for _, lex := range tbl.Lexemes() {
		src := lex
		if NeedsBoundary(lex) {
			src += " "
		}
		got, ok := tbl.MatchAt([]byte(src), 0)
		if !ok || got != lex {
			t.Errorf("MatchAt(%q) = %q, want the lexeme itself", src, got)
		}
	}
}

func TestSpecials(t *testing.T) {
	tbl := Default()
	for _, glyph := range tbl.Specials() {
		op, ok := tbl.Special(glyph)
		if !ok || !tbl.Has(op) {
			t.Errorf("special %q -> %q is not an operator", glyph, op)
		}
		got, size, ok := tbl.SpecialAt([]byte(glyph+"x"), 0)
		if !ok || got != glyph || size != utf8.RuneLen([]rune(glyph)[0]) {
			t.Errorf("SpecialAt(%q) = (%q, %d, %v)", glyph, got, size, ok)
		}
	}
	if op, _ := tbl.Special("⊕"); op != "+" {
		t.Errorf("⊕ quotes %q, want +", op)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		groups   []Group
		specials map[string]string
	}{
		{"empty lexeme", []Group{{Lexemes: []string{""}, Precedence: 1}}, nil},
		{"space", []Group{{Lexemes: []string{"a b"}, Precedence: 1}}, nil},
		{"zero precedence", []Group{{Lexemes: []string{"+"}, Precedence: 0}}, nil},
		{"dangling special", []Group{{Lexemes: []string{"+"}, Precedence: 1}}, map[string]string{"⊗": "*"}},
		{"multi-rune special", []Group{{Lexemes: []string{"+"}, Precedence: 1}}, map[string]string{"⊕⊕": "+"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.groups, tt.specials); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestExtend(t *testing.T) {
	base := Default()
	ext, err := base.Extend([]Group{
		{Lexemes: []string{"<=>"}, Precedence: PrecCompare},
		{Lexemes: []string{"+"}, Precedence: 12, Assoc: Right},
	})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if !ext.Has("<=>") || base.Has("<=>") {
		t.Fatal("Extend must add to the copy only")
	}
	if e, _ := ext.Lookup("+"); e.Precedence != 12 || e.Assoc != Right {
		t.Fatalf("override lost: %+v", e)
	}
	if e, _ := base.Lookup("+"); e.Precedence != PrecAdditive {
		t.Fatalf("base table mutated: %+v", e)
	}
	if got, _ := ext.MatchAt([]byte("a<=>b"), 1); got != "<=>" {
		t.Fatalf("new lexeme not matched longest-first, got %q", got)
	}
	if ext.Fingerprint() == base.Fingerprint() {
		t.Fatal("fingerprint must change with the table")
	}
	again, _ := New(DefaultGroups, DefaultSpecials)
	if again.Fingerprint() != base.Fingerprint() {
		t.Fatal("fingerprint must be deterministic")
	}
}

func TestParseAssoc(t *testing.T) {
	if a, ok := ParseAssoc(" Right "); !ok || a != Right {
		t.Fatal("ParseAssoc(Right)")
	}
	if _, ok := ParseAssoc("middle"); ok {
		t.Fatal("ParseAssoc accepted garbage")
	}
}
