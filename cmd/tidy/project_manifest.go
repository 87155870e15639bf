package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"tidy/internal/diag"
	"tidy/internal/optable"
	"tidy/internal/source"
)

const manifestName = "tidy.toml"

// projectManifest: найденный tidy.toml и его содержимое.
type projectManifest struct {
	Path   string
	Config projectConfig
	// Bag/FileSet хранят предупреждения и ошибки конфигурации.
	Bag     *diag.Bag
	FileSet *source.FileSet
	fileID  source.FileID
}

type projectConfig struct {
	Package     packageConfig               `toml:"package"`
	Operators   map[string]operatorOverride `toml:"operators"`
	Diagnostics diagnosticsConfig           `toml:"diagnostics"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type operatorOverride struct {
	Precedence *int   `toml:"precedence"`
	Assoc      string `toml:"assoc"`
}

type diagnosticsConfig struct {
	Max int `toml:"max"`
}

// известные ключи по родительской секции; "operators.*": любая лексема
var manifestKeys = map[string][]string{
	"":            {"package", "operators", "diagnostics"},
	"package":     {"name"},
	"operators.*": {"precedence", "assoc"},
	"diagnostics": {"max"},
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadManifest ищет tidy.toml вверх от startDir. Отсутствие файла: не ошибка.
// Синтаксические ошибки TOML возвращаются как error; неизвестные ключи
// попадают в Bag предупреждениями.
func loadManifest(startDir string) (*projectManifest, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, err
	}
	// #nosec G304 -- path is found by walking up from the working directory
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseManifest(path, content)
}

func parseManifest(path string, content []byte) (*projectManifest, error) {
	m := &projectManifest{Path: path, Bag: diag.NewBag(0), FileSet: source.NewFileSet()}
	m.fileID = m.FileSet.AddNormalized(path, content, 0)

	meta, err := toml.Decode(string(m.FileSet.Get(m.fileID).Content), &m.Config)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%s:%d: %s", path, perr.Position.Line, perr.Message)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		m.reportUnknownKey(key)
	}
	if m.Config.Diagnostics.Max < 0 {
		m.report(diag.SevError, diag.CfgInvalid, "max", "[diagnostics].max must not be negative")
	}
	return m, nil
}

func (m *projectManifest) reportUnknownKey(key toml.Key) {
	parent := strings.Join(key[:len(key)-1], ".")
	if len(key) == 3 && key[0] == "operators" {
		parent = "operators.*"
	}
	name := key[len(key)-1]
	msg := fmt.Sprintf("unknown key %q", key.String())
	if candidates, ok := manifestKeys[parent]; ok {
		if s, found := suggest(name, candidates); found {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
	}
	m.report(diag.SevWarning, diag.CfgUnknownKey, name, msg)
}

// report помечает первое вхождение needle в тексте манифеста.
func (m *projectManifest) report(sev diag.Severity, code diag.Code, needle, msg string) {
	file := m.FileSet.Get(m.fileID)
	span := source.Span{File: m.fileID}
	if i := bytes.Index(file.Content, []byte(needle)); i >= 0 && needle != "" {
		start, errStart := safecast.Conv[uint32](i)
		end, errEnd := safecast.Conv[uint32](i + len(needle))
		if errStart == nil && errEnd == nil {
			span.Start, span.End = start, end
		}
	}
	m.Bag.Add(diag.New(sev, code, span, msg))
}

// Table applies [operators] overrides on top of base. Invalid overrides are
// reported as errors and skipped.
func (m *projectManifest) Table(base *optable.Table) *optable.Table {
	if m == nil || len(m.Config.Operators) == 0 {
		return base
	}
	lexemes := make([]string, 0, len(m.Config.Operators))
	for lex := range m.Config.Operators {
		lexemes = append(lexemes, lex)
	}
	slices.Sort(lexemes)

	groups := make([]optable.Group, 0, len(lexemes))
	for _, lex := range lexemes {
		ov := m.Config.Operators[lex]
		entry, known := optable.Entry{}, false
		if e, err := base.Lookup(lex); err == nil {
			entry, known = e, true
		}
		if ov.Precedence != nil {
			entry.Precedence = *ov.Precedence
		} else if !known {
			m.report(diag.SevError, diag.CfgInvalidOperator, lex,
				fmt.Sprintf("new operator %q needs a precedence", lex))
			continue
		}
		if ov.Assoc != "" {
			assoc, ok := optable.ParseAssoc(ov.Assoc)
			if !ok {
				m.report(diag.SevError, diag.CfgInvalidOperator, ov.Assoc,
					fmt.Sprintf("operator %q: assoc must be left or right, got %q", lex, ov.Assoc))
				continue
			}
			entry.Assoc = assoc
		}
		groups = append(groups, optable.Group{Lexemes: []string{lex}, Precedence: entry.Precedence, Assoc: entry.Assoc})
	}

	// лексемы проверяются по одной, чтобы одна ошибка не отменила остальные
	table := base
	for _, g := range groups {
		next, err := table.Extend([]optable.Group{g})
		if err != nil {
			m.report(diag.SevError, diag.CfgInvalidOperator, g.Lexemes[0], err.Error())
			continue
		}
		table = next
	}
	return table
}
