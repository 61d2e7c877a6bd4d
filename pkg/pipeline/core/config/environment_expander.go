package config

import (
	"os"
	"strings"
)

// EnvironmentExpander expands environment variable placeholders within an
// input byte slice.
type EnvironmentExpander interface {
	// Expand replaces ${VAR} or $VAR placeholders in the input and returns
	// the expanded bytes.
	Expand(input []byte) ([]byte, error)
}

// OsEnvironmentExpander implements EnvironmentExpander over the process
// environment. The shell-style ${VAR:-default} form is honored; unset
// variables without a default expand to the empty string.
type OsEnvironmentExpander struct{}

// NewOsEnvironmentExpander creates a new OsEnvironmentExpander.
func NewOsEnvironmentExpander() *OsEnvironmentExpander {
	return &OsEnvironmentExpander{}
}

// Expand expands environment variables in the input. Expansion cannot
// fail, so the error is always nil.
func (e *OsEnvironmentExpander) Expand(input []byte) ([]byte, error) {
	expanded := os.Expand(string(input), func(name string) string {
		key, fallback, hasFallback := strings.Cut(name, ":-")
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		if hasFallback {
			return fallback
		}
		return ""
	})
	return []byte(expanded), nil
}
