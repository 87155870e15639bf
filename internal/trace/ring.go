package trace

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"sync"
)

// RingTracer keeps the last N events in memory; the CLI dumps it when a
// command fails.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	head   int  // следующая позиция записи
	full   bool // буфер уже переполнялся
	level  Level
}

// NewRingTracer creates a ring of the given capacity (4096 when <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	stored.Seq = NextSeq()
	t.events[t.head] = stored
	t.head++
	if t.head == len(t.events) {
		t.head, t.full = 0, true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		return slices.Clone(t.events[:t.head])
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

// Files lists the distinct Event.File values in the ring, in first-seen order.
func (t *RingTracer) Files() []string {
	var files []string
	for _, ev := range t.Snapshot() {
		if ev.File != "" && !slices.Contains(files, ev.File) {
			files = append(files, ev.File)
		}
	}
	return files
}

// Dump writes every stored event in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return writeEvents(w, t.Snapshot(), format)
}

// DumpFiles пишет события команды (без файла) и события перечисленных
// файлов; в текстовом формате события каждого файла идут отдельной группой.
func (t *RingTracer) DumpFiles(w io.Writer, format Format, files []string) error {
	events := t.Snapshot()
	var common []Event
	byFile := make(map[string][]Event, len(files))
	for _, ev := range events {
		switch {
		case ev.File == "":
			common = append(common, ev)
		case slices.Contains(files, ev.File):
			byFile[ev.File] = append(byFile[ev.File], ev)
		}
	}
	if format == FormatNDJSON {
		kept := common
		for _, f := range files {
			kept = append(kept, byFile[f]...)
		}
		slices.SortFunc(kept, func(a, b Event) int { return cmp.Compare(a.Seq, b.Seq) })
		return writeEvents(w, kept, format)
	}

	if err := writeEvents(w, common, format); err != nil {
		return err
	}
	for _, f := range files {
		if len(byFile[f]) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "-- %s --\n", f); err != nil {
			return err
		}
		if err := writeEvents(w, byFile[f], format); err != nil {
			return err
		}
	}
	return nil
}

func writeEvents(w io.Writer, events []Event, format Format) error {
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op: events live in memory.
func (t *RingTracer) Flush() error { return nil }

// Close is a no-op.
func (t *RingTracer) Close() error { return nil }

// Level returns the ring's tracing level.
func (t *RingTracer) Level() Level { return t.level }

// Enabled reports whether the level is above off.
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
