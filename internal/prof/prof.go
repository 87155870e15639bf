// Package prof wraps github.com/pkg/profile behind the --profile flag.
package prof

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/profile"
)

// Stopper завершает профилирование и дописывает файл профиля.
type Stopper interface{ Stop() }

type nopStopper struct{}

func (nopStopper) Stop() {}

var modes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// Modes lists the accepted --profile values in sorted order.
func Modes() []string {
	return slices.Sorted(maps.Keys(modes))
}

// Options configures one profiling session.
type Options struct {
	Mode  string // "" или "off": профилирование выключено
	Dir   string // каталог для <mode>.pprof; "": временный каталог pkg/profile
	Quiet bool
}

// Enabled reports whether the options ask for a profile at all.
func (o Options) Enabled() bool {
	m := strings.ToLower(strings.TrimSpace(o.Mode))
	return m != "" && m != "off"
}

// Validate checks the mode without starting anything.
func (o Options) Validate() error {
	if !o.Enabled() {
		return nil
	}
	if _, ok := modes[strings.ToLower(strings.TrimSpace(o.Mode))]; !ok {
		return fmt.Errorf("unknown profile mode %q (expected one of %s)", o.Mode, strings.Join(Modes(), "|"))
	}
	return nil
}

// Start begins profiling; the caller must Stop the result exactly once.
// pkg/profile allows a single active session per process.
func Start(opts Options) (Stopper, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return nopStopper{}, nil
	}
	settings := []func(*profile.Profile){
		modes[strings.ToLower(strings.TrimSpace(opts.Mode))],
		profile.NoShutdownHook,
	}
	if opts.Dir != "" {
		settings = append(settings, profile.ProfilePath(opts.Dir))
	}
	if opts.Quiet {
		settings = append(settings, profile.Quiet)
	}
	return profile.Start(settings...), nil
}
