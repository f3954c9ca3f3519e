package utils

import "strings"

// SplitTrim splits s on sep, trims each part and drops the empty ones.
func SplitTrim(s, sep string) []string {
	var result []string

	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}

	return result
}
