// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the API keys used by the text and image
// backends. Keys come from a directory of plain-text files, a dotenv file
// and the process environment, in that order of precedence.
//
// In the key directory each file is one secret: the filename is the key
// name and the first line that is neither blank nor a # comment is the
// value.
//
// Supported key files: gemini-api-key, openai-api-key, anthropic-api-key,
// pexels-api-key, serpapi-api-key, ollama-host.
package secrets

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Load reads every key file in dir. A missing directory yields an empty
// map. Dotfiles, subdirectories and files without a value are skipped;
// unreadable files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	keys := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}
		if v := keyValue(data); v != "" {
			keys[name] = v
		}
	}
	return keys, nil
}

// keyValue returns the first non-blank, non-comment line of data.
func keyValue(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}
