package manifest

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/statblock-parser/pkg/annotate"
	"github.com/dtnitsch/statblock-parser/pkg/detector"
	"github.com/dtnitsch/statblock-parser/pkg/mapreduce"
	"github.com/dtnitsch/statblock-parser/pkg/storage"
)

const topTagCount = 10

// DocumentResult is the outcome of annotating one input file.
// It is passed in from the annotate action to avoid an import cycle.
type DocumentResult struct {
	SourcePath  string
	OutputPath  string
	OutputBytes int64
	Cached      bool
	Signals     *detector.DocumentSignals
	Frequencies mapreduce.Frequencies
	Error       error
	ErrorType   string
}

// Status reports success, cached or failed.
func (r DocumentResult) Status() string {
	switch {
	case r.Error != nil:
		return "failed"
	case r.Cached:
		return "cached"
	default:
		return "success"
	}
}

// Build assembles the manifest for a run. totals are the reduced tag
// frequencies over all documents that produced output.
func Build(runUUID string, results []DocumentResult, totals mapreduce.Frequencies) *SummaryManifest {
	m := &SummaryManifest{
		GeneratedAt:     time.Now().Format(time.RFC3339),
		RunUUID:         runUUID,
		TotalDocuments:  len(results),
		StatblockStarts: totals.SectionTags[annotate.TagSBStart],
		TopLineTags:     mapreduce.TopTags(totals.LineTags, topTagCount),
		TopSectionTags:  mapreduce.TopTags(totals.SectionTags, topTagCount),
	}

	for _, r := range results {
		summary := DocumentSummary{
			Source: r.SourcePath,
			Status: r.Status(),
		}

		switch summary.Status {
		case "failed":
			m.Failed++
			summary.ErrorType = r.ErrorType
			summary.ErrorMessage = r.Error.Error()
		case "cached":
			m.Cached++
			summary.OutputPath = r.OutputPath
			summary.OutputBytes = r.OutputBytes
		default:
			m.Successful++
			summary.OutputPath = r.OutputPath
			summary.OutputBytes = r.OutputBytes
		}

		if r.Error == nil {
			summary.StatblockStarts = r.Frequencies.SectionTags[annotate.TagSBStart]
			summary.TopLineTags = mapreduce.TopTags(r.Frequencies.LineTags, topTagCount)
			summary.Signals = r.Signals
			if r.Signals != nil {
				summary.LanguageWarning = r.Signals.Language != "" && !r.Signals.ExpectedLanguage
			}
		}

		m.Results = append(m.Results, summary)
	}

	return m
}

// GenerateSummary writes the manifest as YAML into outputDir.
// Returns the path to the generated manifest file.
func GenerateSummary(outputDir string, m *SummaryManifest, s *storage.Storage) (string, error) {
	name := fmt.Sprintf("summary-%s.yaml", time.Now().Format("2006-01-02"))
	if m.RunUUID != "" {
		name = fmt.Sprintf("summary-%s.yaml", m.RunUUID)
	}
	manifestPath := filepath.Join(outputDir, name)

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, data); err != nil {
		return "", fmt.Errorf("failed to save manifest: %w", err)
	}

	return manifestPath, nil
}
