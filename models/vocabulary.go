package models

// Vocabulary holds the enumerated values the race/type/alignment header
// pattern is composed from. Every list must be non-empty.
type Vocabulary struct {
	Sizes         []string `yaml:"sizes" env:"SBP_VOCAB_SIZES" envSeparator:","`
	CreatureTypes []string `yaml:"creature_types" env:"SBP_VOCAB_CREATURE_TYPES" envSeparator:","`
	Alignments    []string `yaml:"alignments" env:"SBP_VOCAB_ALIGNMENTS" envSeparator:","`
}

// DefaultVocabulary returns the fifth edition size, creature type and alignment values.
// Alignments that share a prefix are listed longest first so the alternation
// prefers "neutral good" over "neutral".
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Sizes: []string{
			"tiny",
			"small",
			"medium",
			"large",
			"huge",
			"gargantuan",
		},
		CreatureTypes: []string{
			"aberration",
			"beast",
			"celestial",
			"construct",
			"dragon",
			"elemental",
			"fey",
			"fiend",
			"giant",
			"humanoid",
			"monstrosity",
			"ooze",
			"plant",
			"undead",
		},
		Alignments: []string{
			"lawful good",
			"lawful neutral",
			"lawful evil",
			"neutral good",
			"neutral evil",
			"chaotic good",
			"chaotic neutral",
			"chaotic evil",
			"any non-good alignment",
			"any non-evil alignment",
			"any non-lawful alignment",
			"any non-chaotic alignment",
			"any chaotic alignment",
			"any evil alignment",
			"any good alignment",
			"any lawful alignment",
			"any alignment",
			"unaligned",
			"neutral",
		},
	}
}
