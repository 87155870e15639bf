package main

import (
	"slices"

	"github.com/spf13/cobra"
)

// cleanups выполняются в обратном порядке после Execute.
var cleanups []func(failed bool)

// failedFiles: файлы с ошибками разбора; дамп трассы показывает их события.
var failedFiles []string

func noteFailed(path string) {
	if path != "" && !slices.Contains(failedFiles, path) {
		failedFiles = append(failedFiles, path)
	}
}

// setupSession включает трассировку и профилирование по persistent-флагам.
func setupSession(cmd *cobra.Command) error {
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopTrace)

	stopProfile, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, func(bool) { stopProfile() })
	return nil
}

func finishSession(failed bool) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](failed)
	}
	cleanups = nil
	failedFiles = nil
}
