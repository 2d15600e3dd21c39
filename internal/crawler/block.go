package crawler

import "strings"

// DetectBlock returns the first marker contained in text
func DetectBlock(text string, markers []string) (string, bool) {
	for _, m := range markers {
		if m != "" && strings.Contains(text, m) {
			return m, true
		}
	}
	return "", false
}
