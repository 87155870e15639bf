package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug", "PHASE"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	outer, ctx := StartSpan(ctx, ScopeDriver, "parse")
	inner, _ := StartSpan(ctx, ScopeFile, "file:a.td")
	inner.WithExtra("roots", "3").End("")
	Point(tr, ScopeNode, "skipped", "", outer.ID())
	outer.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file:a.td" || ev.ParentID != outer.ID() || ev.Extra["roots"] != "3" {
		t.Errorf("unexpected inner end event %+v", ev)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopePass, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• c") {
		t.Errorf("dump misses last event:\n%s", buf.String())
	}
}

func TestNewErrorLevelUsesRing(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := RingOf(tr); !ok {
		t.Fatalf("expected ring tracer, got %T", tr)
	}
	if tr, _ := New(Config{Level: LevelOff}); tr.Enabled() {
		t.Error("off level must produce a disabled tracer")
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	span, ctx := StartSpan(context.Background(), ScopePass, "lex")
	if span.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatal("nop span must not allocate an id")
	}
	if d := span.WithExtra("k", "v").End(""); d != 0 {
		t.Errorf("nop span reported duration %v", d)
	}
}

func TestFilePropagatesToSpansAndPoints(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := StartSpan(ctx, ScopeDriver, "parse-dir")
	fileSpan, fctx := StartSpan(WithFile(ctx, "a.td"), ScopeFile, "file:a.td")
	if FileOf(fctx) != "a.td" || CurrentSpan(fctx).SpanID != fileSpan.ID() {
		t.Fatalf("file span context = %+v", CurrentSpan(fctx))
	}
	pass, pctx := StartSpan(fctx, ScopePass, "parse")
	PointCtx(pctx, ScopeFile, "cache", "miss")
	pass.End("")
	fileSpan.End("ok")
	outer.End("")

	for _, ev := range ring.Snapshot() {
		want := "a.td"
		if ev.Name == "parse-dir" {
			want = ""
		}
		if ev.File != want {
			t.Errorf("%s %s: file = %q, want %q", ev.Kind, ev.Name, ev.File, want)
		}
	}
	if got := ring.Files(); len(got) != 1 || got[0] != "a.td" {
		t.Errorf("Files() = %v", got)
	}
}

func TestWithFileKeepsParent(t *testing.T) {
	ctx := WithSpanContext(context.Background(), SpanContext{SpanID: 7, GID: 1})
	sc := CurrentSpan(WithFile(ctx, "b.td"))
	if sc.SpanID != 7 || sc.File != "b.td" {
		t.Fatalf("WithFile lost the parent: %+v", sc)
	}
	if FileOf(context.Background()) != "" {
		t.Fatal("empty context must have no file")
	}
}

func TestFormatTextShowsFile(t *testing.T) {
	ev := &Event{Seq: 1, Kind: KindPoint, Scope: ScopeFile, Name: "cache", File: "a.td", Detail: "hit"}
	if got := string(FormatEvent(ev, FormatText)); !strings.Contains(got, "• cache @a.td (hit)") {
		t.Errorf("text = %q", got)
	}
	// у спана файла путь уже в имени
	ev = &Event{Seq: 2, Kind: KindSpanBegin, Scope: ScopeFile, Name: "file:a.td", File: "a.td"}
	if got := string(FormatEvent(ev, FormatText)); strings.Contains(got, "@a.td") {
		t.Errorf("file span must not repeat the path: %q", got)
	}
	var decoded struct {
		File string `json:"file"`
	}
	if err := json.Unmarshal(FormatEvent(&Event{Name: "x", File: "c.td"}, FormatNDJSON), &decoded); err != nil || decoded.File != "c.td" {
		t.Errorf("ndjson file = %q, %v", decoded.File, err)
	}
}

func TestRingDumpFiles(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	emit := func(name, file string) {
		point(ring, ScopeFile, name, "", SpanContext{File: file})
	}
	emit("start", "")
	emit("lex", "a.td")
	emit("lex", "b.td")
	emit("build", "a.td")

	var buf bytes.Buffer
	if err := ring.DumpFiles(&buf, FormatText, []string{"a.td"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "@b.td") {
		t.Errorf("events of other files must be skipped:\n%s", out)
	}
	header := strings.Index(out, "-- a.td --")
	if header < 0 || strings.Index(out, "start") > header || strings.Index(out, "build @a.td") < header {
		t.Errorf("unexpected grouping:\n%s", out)
	}

	buf.Reset()
	if err := ring.DumpFiles(&buf, FormatNDJSON, []string{"a.td", "b.td"}); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 4 {
		t.Errorf("ndjson dump kept %d events, want 4", len(lines))
	}
}
