package annotate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/statblock-parser/models"
)

// ErrEmptyVocabulary is returned when a vocabulary list has no values.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// BuildRaceTypePattern composes the anchored size/type/alignment header
// pattern from the vocabulary. Group 1 is the size, 2 the creature type and
// 3 the alignment; groups 2 and 3 are optional.
func BuildRaceTypePattern(v models.Vocabulary) (*regexp.Regexp, error) {
	lists := []struct {
		name   string
		values []string
	}{
		{"sizes", v.Sizes},
		{"creature_types", v.CreatureTypes},
		{"alignments", v.Alignments},
	}

	groups := make([]string, len(lists))
	for i, l := range lists {
		alt, err := alternation(l.values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.name, err)
		}
		groups[i] = alt
	}

	expr := fmt.Sprintf(`(?i)^(%s)\s*(%s)?,?\s*(%s)?`, groups[0], groups[1], groups[2])
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile race/type pattern: %w", err)
	}
	return re, nil
}

func alternation(values []string) (string, error) {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(v))
	}
	if len(quoted) == 0 {
		return "", ErrEmptyVocabulary
	}
	return strings.Join(quoted, "|"), nil
}
