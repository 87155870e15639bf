package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"tidy/internal/diag"
	"tidy/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	fs, id := wideFixture()
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynArityMismatch, source.Span{File: id, Start: 9, End: 15}, "arity").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "here").
		WithFix("drop", diag.FixEdit{Span: source.Span{File: id, Start: 0, End: 2}}))
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "second"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, len = %d", out.Count, len(out.Diagnostics))
	}

	first := out.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "SYN2003" || first.Title != "Operand count mismatch" {
		t.Errorf("header = %+v", first)
	}
	loc := first.Location
	if loc.File != "a.td" || loc.StartLine != 2 || loc.StartCol != 3 || loc.EndCol != 5 {
		t.Errorf("location = %+v", loc)
	}
	if len(first.Notes) != 1 || first.Notes[0].Message != "here" {
		t.Errorf("notes = %+v", first.Notes)
	}
	if len(first.Fixes) != 1 || len(first.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", first.Fixes)
	}
	edit := first.Fixes[0].Edits[0]
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != ":= 1" {
		t.Errorf("preview after = %q", edit.AfterLines)
	}
	if out.Diagnostics[1].Severity != "WARNING" {
		t.Errorf("second severity = %q", out.Diagnostics[1].Severity)
	}
}

func TestJSONMaxAndPositions(t *testing.T) {
	fs, id := wideFixture()
	bag := diag.NewBag(0)
	for range 3 {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "x"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatal(err)
	}
	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Count != 2 {
		t.Errorf("count = %d, want 2", decoded.Count)
	}
	if decoded.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions must be omitted without IncludePositions: %+v", decoded.Diagnostics[0].Location)
	}
}

func TestBuildDiagnosticsOutputNilBag(t *testing.T) {
	out := BuildDiagnosticsOutput(nil, nil, JSONOpts{})
	if out.Count != 0 || out.Diagnostics == nil {
		t.Errorf("nil bag must give an empty, non-nil list: %+v", out)
	}
}
