package config

import (
	"fmt"
	"strings"
)

// ConfigError collects every problem found while loading a cinema config
// file, so they can be fixed in one go.
type ConfigError struct {
	Path    string   // config file path
	Missing []string // ${VAR} references with no value in the environment
	Errors  []string // "section.key: problem" entries from Validate
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "cinema config %s has %d problem(s):", e.Path, len(e.Missing)+len(e.Errors))
	for _, name := range e.Missing {
		fmt.Fprintf(&b, "\n  - ${%s} is not set", name)
	}
	for _, msg := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", msg)
	}
	return b.String()
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
