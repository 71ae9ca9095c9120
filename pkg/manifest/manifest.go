// Package manifest writes the per-run summary of an annotate run.
package manifest

import (
	"github.com/dtnitsch/statblock-parser/models"
	"github.com/dtnitsch/statblock-parser/pkg/detector"
)

// SummaryManifest gives an overview of every document a run touched,
// its status, and the most frequent tags, without opening the outputs.
type SummaryManifest struct {
	GeneratedAt     string            `yaml:"generated_at"`
	RunUUID         string            `yaml:"run_uuid,omitempty"`
	Source          *models.Source    `yaml:"source,omitempty"`
	TotalDocuments  int               `yaml:"total_documents"`
	Successful      int               `yaml:"successful"`
	Cached          int               `yaml:"cached"`
	Failed          int               `yaml:"failed"`
	StatblockStarts int               `yaml:"statblock_starts"`
	TopLineTags     []string          `yaml:"top_line_tags"`
	TopSectionTags  []string          `yaml:"top_section_tags"`
	Results         []DocumentSummary `yaml:"results"`
}

// DocumentSummary is the manifest entry for one input file.
type DocumentSummary struct {
	Source          string                    `yaml:"source"`
	OutputPath      string                    `yaml:"output_path,omitempty"`
	OutputBytes     int64                     `yaml:"output_bytes,omitempty"`
	Status          string                    `yaml:"status"` // success, cached, failed
	ErrorType       string                    `yaml:"error_type,omitempty"`
	ErrorMessage    string                    `yaml:"error_message,omitempty"`
	StatblockStarts int                       `yaml:"statblock_starts,omitempty"`
	LanguageWarning bool                      `yaml:"language_warning,omitempty"`
	Signals         *detector.DocumentSignals `yaml:"signals,omitempty"`
	TopLineTags     []string                  `yaml:"top_line_tags,omitempty"`
}
