// Package secrets resolves credentials such as the service token and the
// Gemini API key from inline values or files.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when a required secret has neither a value nor a file.
var ErrNotConfigured = errors.New("not configured")

// Source describes where a secret comes from.
type Source struct {
	// Name gives context in error messages, e.g. "api token".
	Name string
	// Value is an inline value from the config file, the environment or a flag.
	Value string
	// File holds the secret and takes precedence over Value.
	File string
	// Optional secrets resolve to an empty string when nothing is configured.
	// A configured but empty file is still an error.
	Optional bool
}

// Load returns the trimmed secret described by src.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		secret, err := readFile(name, file)
		if err != nil {
			return "", err
		}
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" && !src.Optional {
		return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
	}

	return secret, nil
}

func readFile(name, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
