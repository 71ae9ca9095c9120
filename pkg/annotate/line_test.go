package annotate

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/statblock-parser/models"
)

// newTestLineAnnotator builds a line annotator with default configuration.
func newTestLineAnnotator(t *testing.T) *LineAnnotator {
	t.Helper()

	cfg := models.DefaultConfig()
	la, err := NewLineAnnotator(cfg.LineAnnotator, cfg.Vocabulary, nil)
	if err != nil {
		t.Fatalf("NewLineAnnotator() error = %v", err)
	}
	return la
}

func countTag(attrs []string, tag string) int {
	n := 0
	for _, a := range attrs {
		if a == tag {
			n++
		}
	}
	return n
}

func TestLineAnnotator_Signatures(t *testing.T) {
	la := newTestLineAnnotator(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "armor class",
			text: "Armor Class 15 (natural armor)",
			want: []string{TagAC},
		},
		{
			name: "hit points with dice",
			text: "Hit Points 65 (10d8 + 20)",
			want: []string{TagDiceRoll, TagHP},
		},
		{
			name: "speed is also a short clause",
			text: "Speed 30 ft., climb 30 ft.",
			want: []string{TagSpeed, TagBlockTitle},
		},
		{
			name: "senses matched by two rules",
			text: "Senses darkvision 60 ft., passive Perception 13",
			want: []string{TagSenses, TagSenses, TagBlockTitle},
		},
		{
			name: "ability score header",
			text: "STR DEX CON INT WIS CHA",
			want: []string{TagArrayTitle},
		},
		{
			name: "ability score values",
			text: "18 (+4) 14 (+2) 16 (+3) 10 (+0) 12 (+1) 8 (-1)",
			want: []string{TagArrayValues},
		},
		{
			name: "actions header",
			text: "Actions",
			want: []string{TagActionTitle, TagActionHeader},
		},
		{
			name: "legendary actions header",
			text: "  Legendary Actions ",
			want: []string{TagLegendaryActionTitle, TagLegendaryHeader},
		},
		{
			name: "mythic actions header",
			text: "Mythic Actions",
			want: []string{TagMythicHeader},
		},
		{
			name: "challenge rating",
			text: "Challenge 5 (1,800 XP)",
			want: []string{TagCR},
		},
		{
			name: "languages",
			text: "Languages Common, Draconic",
			want: []string{TagLanguages},
		},
		{
			name: "saving throws",
			text: "Saving Throws Dex +5, Wis +3",
			want: []string{TagSaves},
		},
		{
			name: "skills case insensitive",
			text: "SKILLS Perception +4, Stealth +6",
			want: []string{TagSkills},
		},
		{
			name: "recharge trait",
			text: "Fire Breath (Recharge 5-6). The dragon exhales fire",
			want: []string{TagRecharge, TagBlockTitle},
		},
		{
			name: "daily counter",
			text: "Innate Spellcasting (1/day)",
			want: []string{TagCounter},
		},
		{
			name: "spell slots",
			text: "1st level (4 slots): magic missile, shield",
			want: []string{TagSpellcasting},
		},
		{
			name: "save dc",
			text: "DC 15 Dexterity saving throw",
			want: []string{TagCheck},
		},
		{
			name: "hit dice label",
			text: "Hit Dice 10d8",
			want: []string{TagDiceRoll, TagHitDice},
		},
		{
			name: "proficiency bonus",
			text: "Proficiency Bonus +3",
			want: []string{TagProficiency},
		},
		{
			name: "condition immunities",
			text: "Condition Immunities charmed, frightened",
			want: []string{TagConditionImmunities},
		},
		{
			name: "plain prose",
			text: "the wolf lopes through the forest",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \t ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := &models.Line{Text: tt.text}
			la.Annotate([]*models.Line{line})

			if !reflect.DeepEqual(line.Attributes, tt.want) {
				t.Errorf("Annotate(%q) attributes = %v, want %v", tt.text, line.Attributes, tt.want)
			}
		})
	}
}

func TestLineAnnotator_ArmorClassAnchored(t *testing.T) {
	la := newTestLineAnnotator(t)

	for _, text := range []string{
		"Armor Class 12",
		"Armor Class 17 (splint)",
		"Armor Class 19 (natural armor), 21 with shield of faith",
	} {
		line := &models.Line{Text: text}
		la.Annotate([]*models.Line{line})
		if !line.HasAttribute(TagAC) {
			t.Errorf("Annotate(%q) missing %q, got %v", text, TagAC, line.Attributes)
		}
	}

	line := &models.Line{Text: "its Armor Class 12 drops"}
	la.Annotate([]*models.Line{line})
	if line.HasAttribute(TagAC) {
		t.Errorf("Annotate(%q) tagged %q mid-line", line.Text, TagAC)
	}
}

func TestLineAnnotator_OneTagPerMatchingRule(t *testing.T) {
	la := newTestLineAnnotator(t)
	heuristic := map[string]bool{
		TagRaceTypeHeader: true,
		TagStatblockTitle: true,
		TagBlockTitle:     true,
	}

	texts := []string{
		"Hit Points 135 (18d10 + 36)",
		"Senses blindsight 30 ft., darkvision 120 ft., passive Perception 21",
		"Claw. Melee Weapon Attack: +11 to hit, reach 5 ft. Hit: 13 (2d6 + 6) slashing damage. DC 19 check",
		"Wing Attack (Costs 2 Actions). Each creature within 10 ft. must succeed on a DC 22 Dexterity saving throw",
		"Saves Str +8, Con +7",
	}

	for _, text := range texts {
		want := 0
		for _, sig := range Signatures {
			if sig.Pattern.MatchString(strings.TrimSpace(text)) {
				want++
			}
		}

		line := &models.Line{Text: text}
		la.Annotate([]*models.Line{line})

		got := 0
		for _, a := range line.Attributes {
			if !heuristic[a] {
				got++
			}
		}
		if got != want {
			t.Errorf("Annotate(%q) signature tags = %d, want %d (%v)", text, got, want, line.Attributes)
		}
	}
}

func TestLineAnnotator_RaceTypeHeader(t *testing.T) {
	la := newTestLineAnnotator(t)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"size type alignment", "Medium Humanoid, chaotic evil", true},
		{"capitalized size only", "Large", true},
		{"lowercase size with type", "tiny beast, unaligned", true},
		{"lowercase size with alignment", "huge lawful evil", true},
		{"lowercase size in prose", "medium sized creatures roam the hills", false},
		{"no size", "Humanoid, chaotic evil", false},
		{"size not at start", "A Medium Humanoid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := &models.Line{Text: tt.text}
			la.Annotate([]*models.Line{line})

			if got := line.HasAttribute(TagRaceTypeHeader); got != tt.want {
				t.Errorf("Annotate(%q) race_type_header = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLineAnnotator_LinksStatblockTitle(t *testing.T) {
	la := newTestLineAnnotator(t)

	title := &models.Line{
		Text:  "Bandit Captain",
		Bound: &models.Bound{Left: 0.10, Top: 0.20, Width: 0.2, Height: 0.02},
	}
	header := &models.Line{
		Text:  "Medium Humanoid, chaotic evil",
		Bound: &models.Bound{Left: 0.11, Top: 0.225, Width: 0.3, Height: 0.015},
	}

	la.Annotate([]*models.Line{title, header})

	if !reflect.DeepEqual(header.Attributes, []string{TagRaceTypeHeader}) {
		t.Errorf("header attributes = %v, want [%s]", header.Attributes, TagRaceTypeHeader)
	}
	if !reflect.DeepEqual(title.Attributes, []string{TagStatblockTitle}) {
		t.Errorf("title attributes = %v, want [%s]", title.Attributes, TagStatblockTitle)
	}
}

func TestLineAnnotator_NoTitleWithinTolerance(t *testing.T) {
	la := newTestLineAnnotator(t)
	headerBound := &models.Bound{Left: 0.10, Top: 0.225, Width: 0.3, Height: 0.015}

	tests := []struct {
		name  string
		lines []*models.Line
	}{
		{
			name: "previous line in the other column",
			lines: []*models.Line{
				{Text: "Bandit Captain", Bound: &models.Bound{Left: 0.55, Top: 0.20, Height: 0.02}},
			},
		},
		{
			name: "previous line ends below the header top",
			lines: []*models.Line{
				{Text: "Bandit Captain", Bound: &models.Bound{Left: 0.10, Top: 0.26, Height: 0.02}},
			},
		},
		{
			name: "previous line has no geometry",
			lines: []*models.Line{
				{Text: "Bandit Captain"},
			},
		},
		{
			name:  "header is the first line",
			lines: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &models.Line{Text: "Medium Humanoid, chaotic evil", Bound: headerBound}
			lines := append(tt.lines, header)

			la.Annotate(lines)

			if !header.HasAttribute(TagRaceTypeHeader) {
				t.Fatalf("header not tagged %q", TagRaceTypeHeader)
			}
			for _, l := range lines {
				if l.HasAttribute(TagStatblockTitle) {
					t.Errorf("line %q tagged %q", l.Text, TagStatblockTitle)
				}
			}
		})
	}
}

func TestLineAnnotator_TitleScanSkipsLinesWithoutGeometry(t *testing.T) {
	la := newTestLineAnnotator(t)
	title := &models.Line{Text: "Bandit Captain", Bound: &models.Bound{Left: 0.1, Top: 0.20, Height: 0.02}}
	noise := &models.Line{Text: "~"}
	header := &models.Line{Text: "Medium Humanoid, chaotic evil", Bound: &models.Bound{Left: 0.1, Top: 0.225, Height: 0.015}}

	la.Annotate([]*models.Line{title, noise, header})

	if !title.HasAttribute(TagStatblockTitle) {
		t.Errorf("title attributes = %v, want %q past the line without geometry", title.Attributes, TagStatblockTitle)
	}
	if noise.HasAttribute(TagStatblockTitle) {
		t.Errorf("line without geometry tagged %q", TagStatblockTitle)
	}
}

func TestLineAnnotator_HeaderWithoutGeometry(t *testing.T) {
	la := newTestLineAnnotator(t)

	title := &models.Line{Text: "Bandit Captain", Bound: &models.Bound{Left: 0.1, Top: 0.2, Height: 0.02}}
	header := &models.Line{Text: "Medium Humanoid, chaotic evil"}

	la.Annotate([]*models.Line{title, header})

	if !header.HasAttribute(TagRaceTypeHeader) {
		t.Errorf("header attributes = %v, want %q", header.Attributes, TagRaceTypeHeader)
	}
	if title.HasAttribute(TagStatblockTitle) {
		t.Errorf("title tagged without header geometry")
	}
}

func TestLineAnnotator_LinksNearestTitleOnly(t *testing.T) {
	la := newTestLineAnnotator(t)

	older := &models.Line{Text: "Bandit", Bound: &models.Bound{Left: 0.1, Top: 0.10, Height: 0.02}}
	nearest := &models.Line{Text: "Bandit Captain", Bound: &models.Bound{Left: 0.1, Top: 0.20, Height: 0.02}}
	header := &models.Line{Text: "Medium Humanoid, chaotic evil", Bound: &models.Bound{Left: 0.1, Top: 0.225, Height: 0.015}}

	la.Annotate([]*models.Line{older, nearest, header})

	if !nearest.HasAttribute(TagStatblockTitle) {
		t.Errorf("nearest line not tagged %q", TagStatblockTitle)
	}
	if older.HasAttribute(TagStatblockTitle) {
		t.Errorf("more than one title linked to a single header")
	}
}

func TestLineAnnotator_NotIdempotent(t *testing.T) {
	la := newTestLineAnnotator(t)

	title := &models.Line{Text: "Bandit Captain", Bound: &models.Bound{Left: 0.1, Top: 0.20, Height: 0.02}}
	header := &models.Line{Text: "Medium Humanoid, chaotic evil", Bound: &models.Bound{Left: 0.1, Top: 0.225, Height: 0.015}}
	hp := &models.Line{Text: "Hit Points 65 (10d8 + 20)", Bound: &models.Bound{Left: 0.1, Top: 0.30, Height: 0.015}}
	lines := []*models.Line{title, header, hp}

	la.Annotate(lines)
	first := make([]map[string]int, len(lines))
	for i, l := range lines {
		first[i] = make(map[string]int)
		for _, a := range l.Attributes {
			first[i][a]++
		}
	}

	la.Annotate(lines)
	for i, l := range lines {
		for tag, n := range first[i] {
			if got := countTag(l.Attributes, tag); got != 2*n {
				t.Errorf("line %q tag %q count = %d after second pass, want %d", l.Text, tag, got, 2*n)
			}
		}
	}
}

func TestNewLineAnnotator_EmptyVocabulary(t *testing.T) {
	cfg := models.DefaultConfig()

	tests := []struct {
		name   string
		mutate func(v *models.Vocabulary)
	}{
		{"no sizes", func(v *models.Vocabulary) { v.Sizes = nil }},
		{"no creature types", func(v *models.Vocabulary) { v.CreatureTypes = []string{} }},
		{"blank alignments", func(v *models.Vocabulary) { v.Alignments = []string{" ", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocab := models.DefaultVocabulary()
			tt.mutate(&vocab)

			_, err := NewLineAnnotator(cfg.LineAnnotator, vocab, nil)
			if !errors.Is(err, ErrEmptyVocabulary) {
				t.Errorf("NewLineAnnotator() error = %v, want %v", err, ErrEmptyVocabulary)
			}
		})
	}
}

func TestIsBlockTitle(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Keen Smell. The wolf has advantage on Wisdom (Perception) checks.", true},
		{"Pack Tactics.", true},
		{"The wolf has advantage on checks that rely on smell.", false},
		{"keen smell. lowercase start", false},
		{"Keen Smell", false},
		{" Keen Smell. leading space", false},
		{"Legendary Resistance (3/Day). If the dragon fails", true},
		{"The dragon can take three legendary actions. Only one", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isBlockTitle(tt.text); got != tt.want {
			t.Errorf("isBlockTitle(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
