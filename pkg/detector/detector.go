// Package detector computes cheap document-level signals: the document
// language and how strongly the annotated text looks like a bestiary.
package detector

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/statblock-parser/models"
	"github.com/dtnitsch/statblock-parser/pkg/annotate"
)

// candidateLanguages are the languages rulebooks are commonly published in.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Polish,
	lingua.Japanese,
}

// DocumentSignals contains detection results for one annotated document.
type DocumentSignals struct {
	// Language signals
	Language           string  `yaml:"language" json:"language"`
	LanguageConfidence float64 `yaml:"language_confidence" json:"language_confidence"` // 0-1 for the expected language
	ExpectedLanguage   bool    `yaml:"expected_language" json:"expected_language"`

	// Structure counts
	Pages    int `yaml:"pages" json:"pages"`
	Sections int `yaml:"sections" json:"sections"`
	Lines    int `yaml:"lines" json:"lines"`

	// Annotation signals
	TaggedLines     int `yaml:"tagged_lines" json:"tagged_lines"`
	Headers         int `yaml:"headers" json:"headers"`
	StatblockStarts int `yaml:"statblock_starts" json:"statblock_starts"`
	DefenceBlocks   int `yaml:"defence_blocks" json:"defence_blocks"`
	ActionBlocks    int `yaml:"action_blocks" json:"action_blocks"`

	Confidence float64 `yaml:"confidence" json:"confidence"` // 0-10 statblock confidence
}

// Detector wraps a language detector restricted to candidateLanguages.
type Detector struct {
	languages lingua.LanguageDetector
	expected  lingua.Language
}

// New returns a detector that checks documents against the expected language name.
func New(expected string) (*Detector, error) {
	lang, ok := languageByName(expected)
	if !ok {
		return nil, fmt.Errorf("unsupported expected language %q", expected)
	}

	return &Detector{
		languages: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			WithLowAccuracyMode().
			Build(),
		expected: lang,
	}, nil
}

func languageByName(name string) (lingua.Language, bool) {
	for _, l := range candidateLanguages {
		if strings.EqualFold(l.String(), name) {
			return l, true
		}
	}
	return lingua.Unknown, false
}

// DetectLanguage returns the most likely language of text and the
// confidence that text is in the expected language.
func (d *Detector) DetectLanguage(text string) (string, float64, bool) {
	lang, ok := d.languages.DetectLanguageOf(text)
	if !ok {
		return "", 0, false
	}
	return lang.String(), d.languages.ComputeLanguageConfidence(text, d.expected), true
}

// Analyze performs detection on an annotated document.
func (d *Detector) Analyze(doc *models.Document) *DocumentSignals {
	ds := &DocumentSignals{}

	// Language detection
	if lang, conf, ok := d.DetectLanguage(doc.ToPlainText()); ok {
		ds.Language = lang
		ds.LanguageConfidence = conf
		ds.ExpectedLanguage = lang == d.expected.String()
	}

	ds.countStructure(doc)
	ds.Confidence = ds.calculateConfidence()

	return ds
}

// Structure computes the structural signals only, for runs with the
// language check disabled.
func Structure(doc *models.Document) *DocumentSignals {
	ds := &DocumentSignals{}
	ds.countStructure(doc)
	ds.Confidence = ds.calculateConfidence()
	return ds
}

// countStructure tallies pages, sections, lines and the annotation signals.
func (ds *DocumentSignals) countStructure(doc *models.Document) {
	ds.Pages = len(doc.Pages)

	for _, s := range doc.Sections() {
		ds.Sections++
		if s.HasAttribute(annotate.TagSBStart) {
			ds.StatblockStarts++
		}
		if s.HasAttribute(annotate.TagSBDefenceBlock) {
			ds.DefenceBlocks++
		}
		if s.HasAttribute(annotate.TagSBActionBlock) {
			ds.ActionBlocks++
		}

		for _, l := range s.Lines {
			ds.Lines++
			if len(l.Attributes) > 0 {
				ds.TaggedLines++
			}
			if l.HasAttribute(annotate.TagRaceTypeHeader) {
				ds.Headers++
			}
		}
	}
}

// calculateConfidence scores (0-10) how likely the document holds statblocks.
func (ds *DocumentSignals) calculateConfidence() float64 {
	if ds.Lines == 0 {
		return 0
	}

	confidence := 0.0

	// A linked title is the strongest single signal
	if ds.StatblockStarts > 0 {
		confidence += 4.0
	} else if ds.Headers > 0 {
		confidence += 2.0
	}

	if ds.DefenceBlocks > 0 {
		confidence += 2.0
	}
	if ds.ActionBlocks > 0 {
		confidence += 2.0
	}

	// Share of lines the signature library recognised
	confidence += 2.0 * float64(ds.TaggedLines) / float64(ds.Lines)

	// Rules are written for one language
	if ds.Language != "" && !ds.ExpectedLanguage {
		confidence *= 0.5
	}

	if confidence > 10.0 {
		confidence = 10.0
	}

	return confidence
}
