package annotate

import (
	"github.com/dtnitsch/statblock-parser/models"
	"github.com/dtnitsch/statblock-parser/pkg/detector"
	"github.com/dtnitsch/statblock-parser/pkg/manifest"
	"github.com/dtnitsch/statblock-parser/pkg/mapreduce"
)

// Error types recorded for failed documents
const (
	ErrTypeRead        = "read_error"
	ErrTypeUnsupported = "unsupported_format"
	ErrTypeLoad        = "load_error"
	ErrTypeAnnotate    = "annotate_error"
	ErrTypeWrite       = "write_error"
)

type Job struct {
	Path string
}

// Result holds the outcome of a processed job.
type Result struct {
	SourcePath  string
	OutputPath  string
	OutputBytes int64
	ContentHash string
	Document    *models.Document
	Cached      bool
	Signals     *detector.DocumentSignals
	Frequencies mapreduce.Frequencies
	Error       error
	ErrorType   string
}

// toManifest converts results for the run manifest.
func toManifest(results []Result) []manifest.DocumentResult {
	out := make([]manifest.DocumentResult, 0, len(results))
	for _, r := range results {
		out = append(out, manifest.DocumentResult{
			SourcePath:  r.SourcePath,
			OutputPath:  r.OutputPath,
			OutputBytes: r.OutputBytes,
			Cached:      r.Cached,
			Signals:     r.Signals,
			Frequencies: r.Frequencies,
			Error:       r.Error,
			ErrorType:   r.ErrorType,
		})
	}
	return out
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalDocuments   int
	Successful       int
	Cached           int
	Failed           int
	StatblockStarts  int
	TotalTimeSeconds float64
}
