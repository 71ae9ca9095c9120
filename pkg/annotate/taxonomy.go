package annotate

// Category names a group of related line tags.
type Category string

const (
	CategoryDefence     Category = "defence"
	CategoryTrait       Category = "trait"
	CategoryAction      Category = "action"
	CategoryLegendary   Category = "legendary"
	CategoryMythic      Category = "mythic"
	CategoryGeneric     Category = "generic"
	CategoryWeakGeneric Category = "weak_generic"
)

// Taxonomy groups line tags into the categories the section annotator reads.
var Taxonomy = map[Category][]string{
	CategoryDefence: {
		TagHP,
		TagAC,
		TagSpeed,
	},
	CategoryTrait: {
		TagLanguages,
		TagSaves,
		TagSkills,
		TagCR,
		TagSenses,
		TagDamageImmunities,
		TagResistances,
		TagVulnerabilities,
		TagConditionImmunities,
	},
	CategoryAction: {
		TagActionHeader,
		TagActionTitle,
		TagMeleeAttack,
		TagRangedAttack,
	},
	CategoryLegendary: {
		TagLegendaryActionTitle,
		TagLegendaryActionCost,
		TagLegendaryHeader,
	},
	CategoryMythic: {
		TagMythicHeader,
	},
	CategoryGeneric: {
		TagDiceRoll,
		TagCheck,
		TagRecharge,
		TagCounter,
		TagSpellcasting,
	},
	CategoryWeakGeneric: {
		TagBlockTitle,
	},
}

// CategoryOf returns the category a line tag belongs to, if any.
func CategoryOf(tag string) (Category, bool) {
	for c, tags := range Taxonomy {
		for _, t := range tags {
			if t == tag {
				return c, true
			}
		}
	}
	return "", false
}
