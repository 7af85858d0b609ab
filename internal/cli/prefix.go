// Package cli provides CLI infrastructure for shelf.
package cli

import (
	"fmt"
	"strings"
)

// MatchChoice finds a unique choice from a case-insensitive prefix.
// An exact match wins over prefix matches.
func MatchChoice(prefix string, choices []string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	for _, c := range choices {
		if strings.ToLower(c) == prefix {
			return c, nil
		}
	}

	var matches []string
	if prefix != "" {
		for _, c := range choices {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown value %q (want one of: %s)", prefix, strings.Join(choices, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous value %q matches: %s", prefix, strings.Join(matches, ", "))
	}
}
