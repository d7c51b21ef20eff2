package utils

import "strings"

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}

// SplitList splits a comma separated setting, trimming blanks and dropping
// empty entries.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return RemoveEmptyStrings(parts)
}
