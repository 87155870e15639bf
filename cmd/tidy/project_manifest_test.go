package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tidy/internal/diag"
	"tidy/internal/optable"
)

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	data := `# test manifest
[package]
name = "demo"

[diagnostics]
max = 7
`
	if err := os.WriteFile(filepath.Join(root, manifestName), []byte(data), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, err := loadManifest(nested)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m == nil {
		t.Fatal("expected manifest to be found")
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("package name = %q, want demo", m.Config.Package.Name)
	}
	if m.Config.Diagnostics.Max != 7 {
		t.Fatalf("diagnostics.max = %d, want 7", m.Config.Diagnostics.Max)
	}
	if m.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", m.Bag.Items())
	}
}

func TestLoadManifestMissingIsNotError(t *testing.T) {
	m, err := loadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	// выше TempDir tidy.toml быть не должно
	if m != nil {
		t.Skipf("found unrelated manifest at %s", m.Path)
	}
}

func TestParseManifestSyntaxError(t *testing.T) {
	_, err := parseManifest("bad.toml", []byte("[package\nname = 1\n"))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.HasPrefix(err.Error(), "bad.toml:") {
		t.Fatalf("error should start with the path, got %q", err)
	}
}

func TestParseManifestUnknownKeys(t *testing.T) {
	data := `[pakage]
name = "demo"

[operators."+"]
prec = 3
`
	m, err := parseManifest("tidy.toml", []byte(data))
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	want := []string{`did you mean "package"?`, `did you mean "precedence"?`}
	for _, w := range want {
		found := false
		for _, d := range m.Bag.Items() {
			if d.Code == diag.CfgUnknownKey && d.Severity == diag.SevWarning && strings.Contains(d.Message, w) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing warning containing %q in %+v", w, m.Bag.Items())
		}
	}
	if m.Bag.HasErrors() {
		t.Fatalf("unknown keys must be warnings, got %+v", m.Bag.Items())
	}
}

func TestParseManifestNegativeMax(t *testing.T) {
	m, err := parseManifest("tidy.toml", []byte("[diagnostics]\nmax = -1\n"))
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	if !m.Bag.HasErrors() || m.Bag.Items()[0].Code != diag.CfgInvalid {
		t.Fatalf("expected CfgInvalid error, got %+v", m.Bag.Items())
	}
	span := m.Bag.Items()[0].Primary
	if got := string(m.FileSet.Get(span.File).Content[span.Start:span.End]); got != "max" {
		t.Fatalf("primary span covers %q, want max", got)
	}
}

func TestManifestOperatorOverrides(t *testing.T) {
	data := `[operators."+"]
precedence = 22
assoc = "right"

[operators."**"]
precedence = 45
assoc = "right"

[operators."<>"]
assoc = "left"

[operators."-"]
assoc = "sideways"
`
	m, err := parseManifest("tidy.toml", []byte(data))
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	base := optable.Default()
	table := m.Table(base)

	if e, err := table.Lookup("+"); err != nil || e.Precedence != 22 || e.Assoc != optable.Right {
		t.Fatalf("+ = %+v, %v; want precedence 22 right", e, err)
	}
	if e, err := table.Lookup("**"); err != nil || e.Precedence != 45 || e.Assoc != optable.Right {
		t.Fatalf("** = %+v, %v; want precedence 45 right", e, err)
	}
	if table.Has("<>") {
		t.Fatal("<> without precedence must be skipped")
	}
	if e, _ := table.Lookup("-"); e.Precedence != optable.PrecAdditive || e.Assoc != optable.Left {
		t.Fatalf("- must keep its default entry, got %+v", e)
	}
	if e, _ := base.Lookup("+"); e.Precedence != optable.PrecAdditive {
		t.Fatal("base table must not change")
	}

	var codes []diag.Code
	for _, d := range m.Bag.Items() {
		codes = append(codes, d.Code)
	}
	if len(codes) != 2 || codes[0] != diag.CfgInvalidOperator || codes[1] != diag.CfgInvalidOperator {
		t.Fatalf("expected two CfgInvalidOperator errors, got %v", codes)
	}
}

func TestManifestZeroPrecedenceRejected(t *testing.T) {
	m, err := parseManifest("tidy.toml", []byte("[operators.\"+\"]\nprecedence = 0\n"))
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	table := m.Table(optable.Default())
	if e, _ := table.Lookup("+"); e.Precedence != optable.PrecAdditive {
		t.Fatalf("+ precedence = %d, want default", e.Precedence)
	}
	if !m.Bag.HasErrors() {
		t.Fatal("expected an error for precedence 0")
	}
}

func TestNilManifestTable(t *testing.T) {
	var m *projectManifest
	base := optable.Default()
	if m.Table(base) != base {
		t.Fatal("nil manifest must return the base table")
	}
}
