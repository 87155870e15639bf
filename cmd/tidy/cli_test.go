package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tidy/internal/token"
	"tidy/internal/trace"
)

func TestCheckChoice(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr string
	}{
		{value: "json", want: "json"},
		{value: " YAML ", want: "yaml"},
		{value: "jsn", wantErr: `did you mean "json"?`},
		{value: "xml", wantErr: "expected pretty|json|yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := checkChoice("format", tt.value, "pretty", "json", "yaml")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestEmpty(t *testing.T) {
	if _, ok := suggest("  ", []string{"cpu"}); ok {
		t.Fatal("blank value must not produce a suggestion")
	}
	if s, ok := suggest("mtx", []string{"cpu", "mutex"}); !ok || s != "mutex" {
		t.Fatalf("suggest = %q, %v", s, ok)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes must win over terminal detection")
	}
}

func TestFilterTrivia(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Word, Raw: "x"},
		{Kind: token.Blank, Raw: " "},
		{Kind: token.Comment, Raw: "# c"},
		{Kind: token.Operator, Raw: "+"},
		{Kind: token.EOF},
	}
	if got := filterTrivia(toks, true); len(got) != len(toks) {
		t.Fatalf("keep=true must return everything, got %d", len(got))
	}
	got := filterTrivia(toks, false)
	var kinds []token.Kind
	for _, tok := range got {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Word, token.Operator, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestUseColor(t *testing.T) {
	if !useColor("on", nil) || useColor("off", nil) {
		t.Fatal("explicit color modes must not touch the file")
	}
}

func TestDumpRingShowsFailedFiles(t *testing.T) {
	ring := trace.NewRingTracer(32, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	for _, file := range []string{"ok.td", "bad.td"} {
		span, fctx := trace.StartSpan(trace.WithFile(ctx, file), trace.ScopeFile, "file:"+file)
		trace.PointCtx(fctx, trace.ScopePass, "lex", "")
		span.End("")
	}

	noteFailed("bad.td")
	noteFailed("bad.td")
	noteFailed("")
	defer finishSession(false)
	if len(failedFiles) != 1 {
		t.Fatalf("failedFiles = %v", failedFiles)
	}

	var buf bytes.Buffer
	if err := dumpRing(&buf, ring, failedFiles); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "trace: last events for bad.td:") || !strings.Contains(out, "lex @bad.td") {
		t.Errorf("missing failed file events:\n%s", out)
	}
	if strings.Contains(out, "ok.td") {
		t.Errorf("events of healthy files must be skipped:\n%s", out)
	}

	buf.Reset()
	if err := dumpRing(&buf, ring, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "last events before failure") || !strings.Contains(buf.String(), "ok.td") {
		t.Errorf("without failed files the whole ring is dumped:\n%s", buf.String())
	}
}
