// Package storage writes annotated documents and reads raw inputs.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/statblock-parser/models"
)

// Output formats for annotated documents
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrOutputCollision is returned when two inputs would write the same output file.
var ErrOutputCollision = errors.New("inputs map to the same output file")

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filePath, err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// GetFileStats returns metadata about a file using os.Stat.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// Marshal renders an annotated document in the given output format.
func Marshal(doc *models.Document, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// OutputPath maps a source file to its annotated output file under dir.
// The source extension is kept so page-12.hocr and page-12.json differ.
func OutputPath(dir, sourcePath, format string) string {
	return filepath.Join(dir, filepath.Base(sourcePath)+".annotated."+format)
}

// OutputPaths maps every source to its output file and fails when two
// sources, e.g. the same file name in different directories, collide.
func OutputPaths(dir string, sources []string, format string) (map[string]string, error) {
	outputs := make(map[string]string, len(sources))
	owners := make(map[string]string, len(sources))
	var collisions []string

	for _, src := range sources {
		out := OutputPath(dir, src, format)
		if prev, ok := owners[out]; ok && prev != src {
			collisions = append(collisions, fmt.Sprintf("%s and %s -> %s", prev, src, out))
			continue
		}
		owners[out] = src
		outputs[src] = out
	}

	if len(collisions) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOutputCollision, strings.Join(collisions, "; "))
	}
	return outputs, nil
}

// SaveDocument writes doc to path in the given format.
func (s *Storage) SaveDocument(path string, doc *models.Document, format string) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", doc.Name, err)
	}
	return s.SaveFile(path, data)
}
