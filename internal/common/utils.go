package common

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/statblock-parser/models"
	"github.com/dtnitsch/statblock-parser/pkg/loader"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// ConfigFingerprint hashes every config value that changes annotation output.
// Paths and worker count are excluded so moving the cache does not invalidate it.
func ConfigFingerprint(cfg *models.Config) (string, error) {
	relevant := struct {
		LineAnnotator    models.LineAnnotatorConfig    `yaml:"line_annotator"`
		SectionAnnotator models.SectionAnnotatorConfig `yaml:"section_annotator"`
		Vocabulary       models.Vocabulary             `yaml:"vocabulary"`
	}{cfg.LineAnnotator, cfg.SectionAnnotator, cfg.Vocabulary}

	data, err := yaml.Marshal(relevant)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint config: %w", err)
	}
	return ContentHash(data), nil
}

// NewLogger returns the JSON logger used by every command.
// quiet wins over debug.
func NewLogger(w io.Writer, quiet, debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// SanitizePath trims whitespace and surrounding quotes that survive
// copy-pasting paths into a comma separated flag.
func SanitizePath(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.Trim(p, `"'`)
	return strings.TrimSpace(p)
}

// ExpandInputs turns the --input list into document files. Directories are
// expanded to the supported files they contain (non-recursive). Returns the
// files in sorted order plus the entries that do not exist or are unsupported.
func ExpandInputs(inputs []string) ([]string, []string) {
	seen := make(map[string]bool)
	var files, invalid []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, raw := range inputs {
		path := SanitizePath(raw)
		if path == "" {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			invalid = append(invalid, path)
			continue
		}

		if !info.IsDir() {
			if _, err := loader.DetectFormat(path); err != nil {
				invalid = append(invalid, path)
				continue
			}
			add(path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			invalid = append(invalid, path)
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := loader.DetectFormat(e.Name()); err == nil {
				add(filepath.Join(path, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, invalid
}
