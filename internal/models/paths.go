// Package models resolves and inspects the directory of serialized language
// model documents.
package models

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Default models directory.
const DefaultModelsDir = "models"

// Environment variable for models directory override.
const EnvModelsDir = "LANGID_MODELS_DIR"

// Extension of serialized model documents.
const Extension = ".json"

// Dir resolves the models directory: an explicit override wins, then the
// environment variable, then the default.
func Dir(override string) string {
	if override != "" {
		return override
	}
	if envDir := os.Getenv(EnvModelsDir); envDir != "" {
		return envDir
	}
	return DefaultModelsDir
}

// ModelPath returns the full path of a named model document inside dir,
// appending the document extension when absent.
func ModelPath(dir, name string) string {
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	return filepath.Join(dir, name)
}

// ListModelFiles returns the full paths of every model document in dir in
// lexical filename order. The ordering is load order and therefore the
// identifier's tie-break priority, so it must be deterministic.
func ListModelFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read models directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ValidateModelsDir checks that dir exists and is a directory.
func ValidateModelsDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("models directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("models directory %s is not a directory", dir)
	}
	return nil
}
