package main

import (
	"context"

	"tidy/internal/driver"
	"tidy/internal/pipeline"
	"tidy/internal/source"
	"tidy/internal/ui"
)

type parseDirOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// runParseDirWithUI parses dir in the background while the progress screen
// consumes its events; recorder still sees every event.
func runParseDirWithUI(ctx context.Context, env *commandEnv, dir string, recorder *pipeline.Recorder) (*source.FileSet, []driver.ParseDirResult, error) {
	paths, err := driver.ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	files := pipeline.NormalizeFiles(paths, dir)

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)
	channel := pipeline.ChannelSink{Ch: events}

	go func() {
		opts := env.opts
		opts.Progress = pipeline.FuncSink(func(ev pipeline.Event) {
			recorder.OnEvent(ev)
			channel.OnEvent(ev)
		})
		fs, results, err := driver.ParseDir(ctx, dir, opts)
		close(events)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
	}()

	uiErr := ui.Run(ctx, env.stderr, "parse "+dir, files, events)
	// экран мог закрыться раньше: дочитываем события, чтобы не блокировать воркеры
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
