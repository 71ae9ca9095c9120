package annotate

import "regexp"

// Signature pairs a pattern recognising a statblock substring with the tag
// it assigns. Patterns are case-insensitive and run against trimmed text.
type Signature struct {
	Pattern *regexp.Regexp
	Tag     string
}

// Every signature is evaluated against every line, so a line may collect
// several tags, and the same tag twice when two of its rules match.
// Order only matters for the order tags are appended in.
var signatureTable = []struct {
	pattern string
	tag     string
}{
	{`Challenge \d+`, TagCR},
	{`\d+d\d+`, TagDiceRoll},
	{`Senses\s[\w\s]+\d+\s*ft`, TagSenses},
	{`Damage\sImmunities`, TagDamageImmunities},
	{`Damage\sResistances`, TagResistances},
	{`Damage\sVulnerabilities`, TagVulnerabilities},
	{`Condition\sImmunities`, TagConditionImmunities},
	{`^Armor Class\s\d+`, TagAC},
	{`^Hit Points\s\d+`, TagHP},
	{`^Speed\s\d+\s*ft`, TagSpeed},
	{`^Melee\sWeapon\sAttack:`, TagMeleeAttack},
	{`^Ranged\sWeapon\sAttack:`, TagRangedAttack},
	{`DC\s\d+\s`, TagCheck},
	{`\d+/(day|minute|hour)`, TagCounter},
	{`^skills\s.*[+-]\d`, TagSkills},
	{`^Legendary Action`, TagLegendaryActionTitle},
	{`^Actions`, TagActionTitle},
	{`Costs \d+ actions`, TagLegendaryActionCost},
	{`Recharge \d+-\d+`, TagRecharge},
	{`^STR\s+DEX\s+CON\s+INT\s+WIS\s+CHA`, TagArrayTitle},
	{`^(\d+\s\([+-]?\d+\)\s+)+`, TagArrayValues},
	{`Language`, TagLanguages},
	{`^Saves\s+`, TagSaves},
	{`^Saving Throws\s+`, TagSaves},
	{`^Senses\s+`, TagSenses},
	{`^(1st|2nd|3rd|[4-9]th)\s*level\s*\([0-9]+\s*slots\)?:`, TagSpellcasting},
	{`^Cantrip (\(at will\))?`, TagSpellcasting},
	{`Proficiency Bonus`, TagProficiency},
	{`Hit Dice`, TagHitDice},
	{`^Actions$`, TagActionHeader},
	{`^Legendary Actions$`, TagLegendaryHeader},
	{`^Mythic Actions$`, TagMythicHeader},
}

// Signatures is the compiled rule library, in table order.
var Signatures = compileSignatures()

func compileSignatures() []Signature {
	sigs := make([]Signature, 0, len(signatureTable))
	for _, s := range signatureTable {
		sigs = append(sigs, Signature{
			Pattern: regexp.MustCompile(`(?i)` + s.pattern),
			Tag:     s.tag,
		})
	}
	return sigs
}
