package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywords []byte

// Keywords holds the recommendation keyword lists used by the classifier.
// Priority is the curated interest subset that outranks Recommended.
type Keywords struct {
	Recommended []string `yaml:"recommended"`
	Priority    []string `yaml:"priority"`
}

// LoadKeywords reads the keyword file at path, or the embedded defaults when
// path is empty.
func LoadKeywords(path string) (Keywords, error) {
	data := defaultKeywords
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Keywords{}, fmt.Errorf("read keywords file %q: %w", path, err)
		}
		data = b
	}
	return ParseKeywords(data)
}

// ParseKeywords decodes a YAML keyword document
func ParseKeywords(data []byte) (Keywords, error) {
	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return Keywords{}, fmt.Errorf("decode keywords: %w", err)
	}

	kw.Recommended = cleanKeywords(kw.Recommended)
	kw.Priority = cleanKeywords(kw.Priority)

	if len(kw.Recommended) == 0 && len(kw.Priority) == 0 {
		return Keywords{}, fmt.Errorf("keyword lists are empty")
	}
	return kw, nil
}

func cleanKeywords(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
