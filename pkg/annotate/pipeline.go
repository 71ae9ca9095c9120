package annotate

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/statblock-parser/models"
)

// Pipeline runs line annotation followed by section annotation over a
// document, one scope unit (page or whole document) at a time.
type Pipeline struct {
	lines    *LineAnnotator
	sections *SectionAnnotator
	scope    string
	logger   *slog.Logger
}

// NewPipeline builds both annotators from cfg.
func NewPipeline(cfg *models.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = discardLogger()
	}

	la, err := NewLineAnnotator(cfg.LineAnnotator, cfg.Vocabulary, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build line annotator: %w", err)
	}

	return &Pipeline{
		lines:    la,
		sections: NewSectionAnnotator(cfg.SectionAnnotator, logger),
		scope:    cfg.SectionAnnotator.Scope,
		logger:   logger,
	}, nil
}

// Annotate tags the document in place. With page scope, pages without
// sections are skipped; with document scope a document without sections
// is an error.
func (p *Pipeline) Annotate(doc *models.Document) error {
	if p.scope == models.ScopeDocument {
		p.lines.Annotate(doc.Lines())
		if err := p.sections.Annotate(doc.Sections()); err != nil {
			return fmt.Errorf("document %s: %w", doc.Name, err)
		}
		return nil
	}

	for _, page := range doc.Pages {
		if len(page.Sections) == 0 {
			p.logger.Info("skipping page without sections", "document", doc.Name, "page", page.Number)
			continue
		}
		p.lines.Annotate(page.Lines())
		if err := p.sections.Annotate(page.Sections); err != nil {
			return fmt.Errorf("document %s page %d: %w", doc.Name, page.Number, err)
		}
	}
	return nil
}
