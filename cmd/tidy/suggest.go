package main

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// suggest returns the best fuzzy match of value among candidates.
func suggest(value string, candidates []string) (string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", false
	}
	matches := fuzzy.Find(value, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}

// withSuggestion дописывает к ошибке "did you mean", если есть близкий вариант.
func withSuggestion(err error, value string, candidates []string) error {
	if s, ok := suggest(value, candidates); ok {
		return fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return err
}

// checkChoice validates a flag value against a closed set of choices.
func checkChoice(flag, value string, choices ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, c := range choices {
		if v == c {
			return v, nil
		}
	}
	err := fmt.Errorf("unknown --%s value %q (expected %s)", flag, value, strings.Join(choices, "|"))
	return "", withSuggestion(err, v, choices)
}
