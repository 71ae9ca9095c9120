package annotate

import (
	"errors"
	"log/slog"

	"github.com/dtnitsch/statblock-parser/models"
)

// ErrNoSections is returned when asked to annotate an empty section sequence,
// which has no first or last section to mark.
var ErrNoSections = errors.New("no sections to annotate")

// SectionAnnotator derives section tags from the tags of each section's lines.
type SectionAnnotator struct {
	weakDensity float64
	logger      *slog.Logger
}

// NewSectionAnnotator returns a section annotator using cfg.WeakDensity as
// the sb_part_weak threshold.
func NewSectionAnnotator(cfg models.SectionAnnotatorConfig, logger *slog.Logger) *SectionAnnotator {
	if logger == nil {
		logger = discardLogger()
	}
	return &SectionAnnotator{
		weakDensity: cfg.WeakDensity,
		logger:      logger.With("component", "sectionanno"),
	}
}

// Annotate tags each section, then marks the first section col_start and the
// last col_end. Lines must already be annotated.
func (a *SectionAnnotator) Annotate(sections []*models.Section) error {
	if len(sections) == 0 {
		return ErrNoSections
	}

	a.logger.Debug("annotating sections", "sections", len(sections))
	for _, s := range sections {
		a.annotateSection(s)
	}

	sections[0].Attributes = append(sections[0].Attributes, TagColStart)
	sections[len(sections)-1].Attributes = append(sections[len(sections)-1].Attributes, TagColEnd)
	return nil
}

func (a *SectionAnnotator) annotateSection(s *models.Section) {
	tags := s.LineAttributes()

	if tags[TagStatblockTitle] {
		s.Attributes = append(s.Attributes, TagSBStart)
	}
	if tags[TagRaceTypeHeader] {
		s.Attributes = append(s.Attributes, TagSBHeader)
	}
	if anyOf(tags, CategoryDefence) {
		s.Attributes = append(s.Attributes, TagSBDefenceBlock)
	}
	if tags[TagArrayTitle] {
		s.Attributes = append(s.Attributes, TagSBArrayTitle)
	}
	if tags[TagArrayValues] {
		s.Attributes = append(s.Attributes, TagSBArrayValue)
	}
	if anyOf(tags, CategoryTrait) {
		s.Attributes = append(s.Attributes, TagSBFlavourBlock)
	}
	if anyOf(tags, CategoryAction) {
		s.Attributes = append(s.Attributes, TagSBActionBlock)
	}
	if anyOf(tags, CategoryLegendary) {
		s.Attributes = append(s.Attributes, TagSBLegendaryActionBlock)
	}

	// One sb_part per generic tag present.
	for _, t := range Taxonomy[CategoryGeneric] {
		if tags[t] {
			s.Attributes = append(s.Attributes, TagSBPart)
		}
	}

	if float64(countLines(s, CategoryWeakGeneric)) > a.weakDensity*float64(len(s.Lines)) {
		s.Attributes = append(s.Attributes, TagSBPartWeak)
	}
}

func anyOf(tags map[string]bool, c Category) bool {
	for _, t := range Taxonomy[c] {
		if tags[t] {
			return true
		}
	}
	return false
}

// countLines counts the lines carrying at least one tag of category c.
func countLines(s *models.Section, c Category) int {
	n := 0
	for _, l := range s.Lines {
		for _, t := range Taxonomy[c] {
			if l.HasAttribute(t) {
				n++
				break
			}
		}
	}
	return n
}
