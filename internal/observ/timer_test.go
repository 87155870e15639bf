package observ

import (
	"strings"
	"testing"
	"time"
)

// fakeClock двигается на step при каждом вызове.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(2 * time.Millisecond)

	load := timer.Begin("load")
	timer.End(load, "")
	parse := timer.Begin("parse")
	timer.End(parse, "12 tokens")
	timer.End(99, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %+v", report.Phases)
	}
	if report.Phases[0].DurationMS != 2 || report.Phases[1].Note != "12 tokens" {
		t.Errorf("phases = %+v", report.Phases)
	}
	if report.TotalMS != 4 {
		t.Errorf("total = %v, want 4", report.TotalMS)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "load", "// 12 tokens", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary lacks %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("empty report = %+v", r)
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "load", DurationMS: 1, Count: 1}, {Name: "parse", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "cache", DurationMS: 1}, {Name: "load", DurationMS: 4, Count: 1}}}

	got := Merge(a, b)
	if got.TotalMS != 8 {
		t.Errorf("total = %v", got.TotalMS)
	}
	want := []PhaseReport{
		{Name: "load", DurationMS: 5, Count: 2},
		{Name: "parse", DurationMS: 2, Count: 1},
		{Name: "cache", DurationMS: 1, Count: 1},
	}
	if len(got.Phases) != len(want) {
		t.Fatalf("phases = %+v", got.Phases)
	}
	for i := range want {
		if got.Phases[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, got.Phases[i], want[i])
		}
	}
	if !strings.Contains(got.Summary(), "(x2)") {
		t.Errorf("merged summary must show counts:\n%s", got.Summary())
	}
}
