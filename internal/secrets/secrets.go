// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials. The process environment wins;
// a .env file and a directory of plain-text key files fill in what the
// environment leaves unset.
//
// Key files: groq-api-key, openai-api-key, anthropic-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadEnvFile sets variables from a .env file without overriding ones
// already present in the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// EnvVar returns the conventional environment variable for provider's key.
func EnvVar(provider types.Provider) string {
	return strings.ToUpper(string(provider)) + "_API_KEY"
}

// KeyFile returns the secrets-directory file name for provider's key.
func KeyFile(provider types.Provider) string {
	return string(provider) + "-api-key"
}

// APIKey returns the credential for provider: the explicit value if set,
// then the provider's environment variable, then the key file loaded from
// the secrets directory.
func APIKey(provider types.Provider, explicit string, fileSecrets map[string]string) string {
	if explicit != "" {
		return explicit
	}
	if v := strings.TrimSpace(os.Getenv(EnvVar(provider))); v != "" {
		return v
	}
	return fileSecrets[KeyFile(provider)]
}
