package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/statblock-parser/models"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source string
		format string
		want   string
	}{
		{"in/bestiary.json", FormatJSON, filepath.Join("out", "bestiary.json.annotated.json")},
		{"/scans/page-12.hocr", FormatYAML, filepath.Join("out", "page-12.hocr.annotated.yaml")},
		{"noext", FormatJSON, filepath.Join("out", "noext.annotated.json")},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := OutputPath("out", tt.source, tt.format); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		wantErr bool
	}{
		{"same stem, different extension", []string{"scans/page-12.hocr", "scans/page-12.json"}, false},
		{"same name, different directory", []string{"book1/goblins.json", "book2/goblins.json"}, true},
		{"repeated source", []string{"a.json", "a.json"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := OutputPaths("out", tt.sources, FormatJSON)
			if tt.wantErr {
				if !errors.Is(err, ErrOutputCollision) {
					t.Fatalf("OutputPaths() error = %v, want ErrOutputCollision", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OutputPaths() error = %v", err)
			}

			seen := make(map[string]bool)
			for _, src := range tt.sources {
				out, ok := outputs[src]
				if !ok {
					t.Fatalf("no output for %s", src)
				}
				seen[out] = true
			}
			if distinct := len(seen); distinct != len(outputs) {
				t.Errorf("%d distinct outputs for %d sources", distinct, len(outputs))
			}
		})
	}
}

func TestSaveDocument(t *testing.T) {
	doc := &models.Document{
		Name: "goblin.json",
		Pages: []*models.Page{{
			Number: 1,
			Sections: []*models.Section{{
				Attributes: []string{"sb_start"},
				Lines:      []*models.Line{{Text: "Goblin", Attributes: []string{"statblock_title"}}},
			}},
		}},
	}

	s := &Storage{}
	dir := t.TempDir()

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			path := OutputPath(filepath.Join(dir, "nested"), "goblin.json", format)
			if err := s.SaveDocument(path, doc, format); err != nil {
				t.Fatalf("SaveDocument() error = %v", err)
			}
			data, err := s.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if !strings.Contains(string(data), "statblock_title") {
				t.Errorf("output missing line tag:\n%s", data)
			}
			stats, err := s.GetFileStats(path)
			if err != nil {
				t.Fatalf("GetFileStats() error = %v", err)
			}
			if stats.SizeBytes != int64(len(data)) {
				t.Errorf("SizeBytes = %d, want %d", stats.SizeBytes, len(data))
			}
		})
	}

	if err := s.SaveDocument(filepath.Join(dir, "x.csv"), doc, "csv"); err == nil {
		t.Error("SaveDocument() expected error for unknown format")
	}
}
