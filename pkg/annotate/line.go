// Package annotate tags extracted statblock text. The line annotator assigns
// line tags from the signature library and two layout heuristics; the section
// annotator turns the tags of a section's lines into section tags.
package annotate

import (
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/statblock-parser/models"
)

// LineAnnotator assigns line tags in place.
type LineAnnotator struct {
	raceType   *regexp.Regexp
	signatures []Signature
	leftTol    float64
	gapTol     float64
	logger     *slog.Logger
}

// NewLineAnnotator builds the race/type header pattern from vocab. It fails
// when any vocabulary list is empty.
func NewLineAnnotator(cfg models.LineAnnotatorConfig, vocab models.Vocabulary, logger *slog.Logger) (*LineAnnotator, error) {
	raceType, err := BuildRaceTypePattern(vocab)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger()
	}

	return &LineAnnotator{
		raceType:   raceType,
		signatures: Signatures,
		leftTol:    cfg.TitleLeftTolerance,
		gapTol:     cfg.TitleGapTolerance,
		logger:     logger.With("component", "lineanno"),
	}, nil
}

// Annotate tags every line. Lines must be in reading order: a header links
// back to the nearest earlier line that sits directly above it.
// Tags are appended, so annotating the same lines twice duplicates them.
func (a *LineAnnotator) Annotate(lines []*models.Line) {
	var headers, titles int

	for i, line := range lines {
		text := strings.TrimSpace(line.Text)

		if a.isRaceTypeHeader(text) {
			line.Attributes = append(line.Attributes, TagRaceTypeHeader)
			headers++
			if a.linkTitle(lines, i) {
				titles++
			}
		}

		for _, sig := range a.signatures {
			if sig.Pattern.MatchString(text) {
				line.Attributes = append(line.Attributes, sig.Tag)
			}
		}

		if isBlockTitle(line.Text) {
			line.Attributes = append(line.Attributes, TagBlockTitle)
		}
	}

	a.logger.Debug("annotated lines", "lines", len(lines), "headers", headers, "titles", titles)
}

// isRaceTypeHeader requires more than a bare lowercase size word, which
// shows up constantly in ordinary prose.
func (a *LineAnnotator) isRaceTypeHeader(text string) bool {
	m := a.raceType.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	return startsUpper(m[1]) || m[2] != "" || m[3] != ""
}

// linkTitle walks back from the header at i and tags the first line that is
// left-aligned with it and ends just above it. Reports whether one was found.
func (a *LineAnnotator) linkTitle(lines []*models.Line, i int) bool {
	header := lines[i].Bound
	if header == nil {
		return false
	}

	for j := i - 1; j >= 0; j-- {
		cand := lines[j].Bound
		if cand == nil {
			continue
		}
		if math.Abs(cand.Left-header.Left) < a.leftTol && cand.Bottom()-header.Top < a.gapTol {
			lines[j].Attributes = append(lines[j].Attributes, TagStatblockTitle)
			return true
		}
	}
	return false
}

// isBlockTitle catches short inline trait headers such as "Keen Smell."
func isBlockTitle(text string) bool {
	if !strings.Contains(text, ".") || !startsUpper(text) {
		return false
	}
	head, _, _ := strings.Cut(text, ".")
	return len(strings.Fields(head)) < 5
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
