package moderation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/notevault/notevault-backend/internal/pkg/logger"
)

// Default denylist. Deliberately crude: lowercase substring containment,
// no word boundaries, so "killer" trips on "kill". Keep it that way.
var defaultDenylist = []string{
	"kill",
	"murder",
	"terror",
	"bomb",
	"drugs",
	"porn",
	"nude",
	"sex",
	"hack",
	"abuse",
}

// Filter rejects free-text fields containing denylisted terms.
type Filter struct {
	log   *logger.Logger
	terms []string
}

func NewFilter(baseLog *logger.Logger, terms []string) *Filter {
	filterLog := baseLog.With("service", "ModerationFilter")
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	if len(lowered) == 0 {
		lowered = defaultDenylist
	}
	return &Filter{log: filterLog, terms: lowered}
}

type denylistFile struct {
	Terms []string `yaml:"terms"`
}

// NewFilterFromEnv builds a Filter from the YAML file named by
// MODERATION_DENYLIST_PATH, falling back to the compiled-in list.
func NewFilterFromEnv(baseLog *logger.Logger) (*Filter, error) {
	path := strings.TrimSpace(os.Getenv("MODERATION_DENYLIST_PATH"))
	if path == "" {
		return NewFilter(baseLog, nil), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist %q: %w", path, err)
	}
	var f denylistFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse denylist %q: %w", path, err)
	}
	return NewFilter(baseLog, f.Terms), nil
}

// IsSafe reports whether text is free of denylisted terms. Empty text is
// always safe.
func (f *Filter) IsSafe(text string) bool {
	if text == "" {
		return true
	}
	lowered := strings.ToLower(text)
	for _, term := range f.terms {
		if strings.Contains(lowered, term) {
			f.log.Debug("Text flagged by moderation", "term", term)
			return false
		}
	}
	return true
}
