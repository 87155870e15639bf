package optable

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"tidy/internal/diag"
	"tidy/internal/source"
)

// Assoc is operator associativity.
type Assoc uint8

const (
	Left Assoc = iota
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// ParseAssoc accepts "left"/"right" (case-insensitive).
func ParseAssoc(s string) (Assoc, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, true
	case "right", "r":
		return Right, true
	}
	return Left, false
}

// Entry describes a single operator.
type Entry struct {
	Precedence int
	Assoc      Assoc
}

// Group assigns one precedence/associativity to several lexemes (aliases).
type Group struct {
	Lexemes    []string
	Precedence int
	Assoc      Assoc
}

// Table is an immutable operator table.
type Table struct {
	entries  map[string]Entry
	lexemes  []string          // по убыванию длины
	byFirst  map[byte][]string // первый байт -> лексемы, по убыванию длины
	specials map[string]string // спец-глиф -> оператор
	print    string
}

// New builds a table from groups and special op-quote glyphs.
// A later group overrides an earlier definition of the same lexeme.
func New(groups []Group, specials map[string]string) (*Table, error) {
	t := &Table{
		entries:  make(map[string]Entry),
		byFirst:  make(map[byte][]string),
		specials: make(map[string]string, len(specials)),
	}
	for _, g := range groups {
		if g.Precedence <= 0 {
			return nil, fmt.Errorf("optable: precedence of %v must be positive, got %d", g.Lexemes, g.Precedence)
		}
		for _, lex := range g.Lexemes {
			if err := validLexeme(lex); err != nil {
				return nil, err
			}
			t.entries[lex] = Entry{Precedence: g.Precedence, Assoc: g.Assoc}
		}
	}
	for glyph, op := range specials {
		if utf8.RuneCountInString(glyph) != 1 {
			return nil, fmt.Errorf("optable: special glyph %q must be a single rune", glyph)
		}
		if _, ok := t.entries[op]; !ok {
			return nil, fmt.Errorf("optable: special glyph %q quotes unknown operator %q", glyph, op)
		}
		if _, clash := t.entries[glyph]; clash {
			return nil, fmt.Errorf("optable: special glyph %q is also an operator", glyph)
		}
		t.specials[glyph] = op
	}
	t.index()
	return t, nil
}

func validLexeme(lex string) error {
	if lex == "" {
		return fmt.Errorf("optable: empty lexeme")
	}
	if strings.ContainsFunc(lex, unicode.IsSpace) {
		return fmt.Errorf("optable: lexeme %q contains whitespace", lex)
	}
	if !utf8.ValidString(lex) {
		return fmt.Errorf("optable: lexeme %q is not valid UTF-8", lex)
	}
	return nil
}

func (t *Table) index() {
	t.lexemes = make([]string, 0, len(t.entries))
	for lex := range t.entries {
		t.lexemes = append(t.lexemes, lex)
	}
	// длинные раньше коротких: "<<<" до "<<" до "<"
	slices.SortFunc(t.lexemes, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	for _, lex := range t.lexemes {
		t.byFirst[lex[0]] = append(t.byFirst[lex[0]], lex)
	}

	h := sha256.New()
	for _, lex := range t.lexemes {
		e := t.entries[lex]
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", lex, e.Precedence, e.Assoc)
	}
	glyphs := make([]string, 0, len(t.specials))
	for g := range t.specials {
		glyphs = append(glyphs, g)
	}
	slices.Sort(glyphs)
	for _, g := range glyphs {
		fmt.Fprintf(h, "special\x00%s\x00%s\n", g, t.specials[g])
	}
	t.print = hex.EncodeToString(h.Sum(nil))
}

// Extend returns a new table with groups added on top of t.
func (t *Table) Extend(groups []Group) (*Table, error) {
	all := make([]Group, 0, len(t.entries)+len(groups))
	for _, lex := range t.lexemes {
		e := t.entries[lex]
		all = append(all, Group{Lexemes: []string{lex}, Precedence: e.Precedence, Assoc: e.Assoc})
	}
	all = append(all, groups...)
	return New(all, t.specials)
}

// Lookup returns the entry for lex or a *diag.PosError wrapping diag.ErrUnknownOperator.
func (t *Table) Lookup(lex string) (Entry, error) {
	e, ok := t.entries[lex]
	if !ok {
		return Entry{}, diag.NewPosError(diag.ErrUnknownOperator, diag.SynUnknownOperator,
			source.Span{}, 0, 0, fmt.Sprintf("operator %q is not in the operator table", lex))
	}
	return e, nil
}

// Precedence returns the precedence of lex.
func (t *Table) Precedence(lex string) (int, error) {
	e, err := t.Lookup(lex)
	return e.Precedence, err
}

// Associativity returns the associativity of lex.
func (t *Table) Associativity(lex string) (Assoc, error) {
	e, err := t.Lookup(lex)
	return e.Assoc, err
}

// Has reports whether lex is a known operator.
func (t *Table) Has(lex string) bool {
	_, ok := t.entries[lex]
	return ok
}

// Lexemes returns all lexemes sorted by descending length (ties lexicographic).
func (t *Table) Lexemes() []string {
	return slices.Clone(t.lexemes)
}

// Len returns the number of operators.
func (t *Table) Len() int { return len(t.entries) }

// MatchAt returns the longest lexeme that starts exactly at src[off:].
// Lexemes ending in a word rune ("and", "in", "!in") only match when followed
// by a non-word rune, so "android" and "!index" are not split.
func (t *Table) MatchAt(src []byte, off int) (string, bool) {
	if off < 0 || off >= len(src) {
		return "", false
	}
	rest := src[off:]
	for _, lex := range t.byFirst[rest[0]] {
		if len(lex) > len(rest) || string(rest[:len(lex)]) != lex {
			continue
		}
		if NeedsBoundary(lex) && len(rest) > len(lex) {
			r, _ := utf8.DecodeRune(rest[len(lex):])
			if IsWordRune(r) {
				continue
			}
		}
		return lex, true
	}
	return "", false
}

// Special returns the operator quoted by a special glyph (e.g. "⊕" -> "+").
func (t *Table) Special(glyph string) (string, bool) {
	op, ok := t.specials[glyph]
	return op, ok
}

// SpecialAt reports a special glyph starting at src[off:] and its byte length.
func (t *Table) SpecialAt(src []byte, off int) (string, int, bool) {
	if off < 0 || off >= len(src) {
		return "", 0, false
	}
	r, size := utf8.DecodeRune(src[off:])
	glyph := string(r)
	if _, ok := t.specials[glyph]; ok && r != utf8.RuneError {
		return glyph, size, true
	}
	return "", 0, false
}

// Specials returns the special glyphs in sorted order.
func (t *Table) Specials() []string {
	out := make([]string, 0, len(t.specials))
	for g := range t.specials {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

// Fingerprint is a stable hash of the whole table, used as a cache key component.
func (t *Table) Fingerprint() string { return t.print }

// IsWordRune reports letters, digits and '_'.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NeedsBoundary reports lexemes whose last rune is a word rune.
func NeedsBoundary(lex string) bool {
	r, _ := utf8.DecodeLastRuneInString(lex)
	return lex != "" && IsWordRune(r)
}
