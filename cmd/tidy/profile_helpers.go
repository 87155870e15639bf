package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"tidy/internal/prof"
)

// setupProfiling starts the profiler selected by --profile. The returned
// stop function is safe to call multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	mode, err := flags.GetString("profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get profile flag: %w", err)
	}
	dir, err := flags.GetString("profile-path")
	if err != nil {
		return nil, fmt.Errorf("failed to get profile-path flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts := prof.Options{Mode: mode, Dir: dir, Quiet: quiet}
	if err := opts.Validate(); err != nil {
		return nil, withSuggestion(err, mode, prof.Modes())
	}
	stopper, err := prof.Start(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}
	var once sync.Once
	return func() { once.Do(stopper.Stop) }, nil
}
