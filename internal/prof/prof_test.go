package prof

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		mode    string
		enabled bool
		wantErr bool
	}{
		{"", false, false},
		{"off", false, false},
		{"cpu", true, false},
		{" MEM ", true, false},
		{"trace", true, false},
		{"flame", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			opts := Options{Mode: tt.mode}
			if opts.Enabled() != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", opts.Enabled(), tt.enabled)
			}
			if err := opts.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModesSorted(t *testing.T) {
	got := Modes()
	if !slices.IsSorted(got) || !slices.Contains(got, "cpu") {
		t.Errorf("Modes() = %v", got)
	}
}

func TestStartOffIsNop(t *testing.T) {
	stop, err := Start(Options{})
	if err != nil {
		t.Fatal(err)
	}
	stop.Stop()
}

func TestStartCPUWritesProfile(t *testing.T) {
	dir := t.TempDir()
	stop, err := Start(Options{Mode: "cpu", Dir: dir, Quiet: true})
	if err != nil {
		t.Fatal(err)
	}
	stop.Stop()
	if _, err := os.Stat(filepath.Join(dir, "cpu.pprof")); err != nil {
		t.Errorf("cpu profile not written: %v", err)
	}
}
