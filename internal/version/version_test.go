package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "  1.2.3 "
	GitCommit = "abc123\n"
	info := Get()
	if info.Version != "1.2.3" || info.GitCommit != "abc123" {
		t.Errorf("Get() = %+v", info)
	}

	Version = ""
	if got := Get().Version; got != "dev" {
		t.Errorf("empty version = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Colored(tt.in, false); got != tt.want {
				t.Errorf("Colored(%q, false) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	colored := Colored("1.2.3-dev", true)
	if !strings.Contains(colored, "\x1b[") || !strings.HasSuffix(colored, "-dev") {
		t.Errorf("Colored(..., true) = %q", colored)
	}
}

func BenchmarkGet(b *testing.B) {
	for b.Loop() {
		_ = Get()
	}
}
