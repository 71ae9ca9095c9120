package annotate

// Line tags. Only the line annotator assigns these.
const (
	TagCR                   = "cr"
	TagDiceRoll             = "dice_roll"
	TagSenses               = "senses"
	TagDamageImmunities     = "dam_immunities"
	TagResistances          = "resistances"
	TagVulnerabilities      = "vulnerabilities"
	TagConditionImmunities  = "con_immunities"
	TagAC                   = "ac"
	TagHP                   = "hp"
	TagSpeed                = "speed"
	TagMeleeAttack          = "melee_attack"
	TagRangedAttack         = "ranged_attack"
	TagCheck                = "check"
	TagCounter              = "counter"
	TagSkills               = "skills"
	TagLegendaryActionTitle = "legendary_action_title"
	TagActionTitle          = "action_title"
	TagLegendaryActionCost  = "legendary_action_cost"
	TagRecharge             = "recharge"
	TagArrayTitle           = "array_title"
	TagArrayValues          = "array_values"
	TagLanguages            = "languages"
	TagSaves                = "saves"
	TagSpellcasting         = "spellcasting"
	TagProficiency          = "proficiency"
	TagHitDice              = "hitdice"
	TagActionHeader         = "action_header"
	TagLegendaryHeader      = "legendary_header"
	TagMythicHeader         = "mythic_header"

	TagRaceTypeHeader = "race_type_header"
	TagStatblockTitle = "statblock_title"
	TagBlockTitle     = "block_title"
)

// Section tags. Only the section annotator assigns these.
const (
	TagSBStart                = "sb_start"
	TagSBHeader               = "sb_header"
	TagSBDefenceBlock         = "sb_defence_block"
	TagSBArrayTitle           = "sb_array_title"
	TagSBArrayValue           = "sb_array_value"
	TagSBFlavourBlock         = "sb_flavour_block"
	TagSBActionBlock          = "sb_action_block"
	TagSBLegendaryActionBlock = "sb_legendary_action_block"
	TagSBPart                 = "sb_part"
	TagSBPartWeak             = "sb_part_weak"
	TagColStart               = "col_start"
	TagColEnd                 = "col_end"
)

// LineTags lists every tag the line annotator can assign.
var LineTags = []string{
	TagCR, TagDiceRoll, TagSenses, TagDamageImmunities, TagResistances,
	TagVulnerabilities, TagConditionImmunities, TagAC, TagHP, TagSpeed,
	TagMeleeAttack, TagRangedAttack, TagCheck, TagCounter, TagSkills,
	TagLegendaryActionTitle, TagActionTitle, TagLegendaryActionCost, TagRecharge,
	TagArrayTitle, TagArrayValues, TagLanguages, TagSaves, TagSpellcasting,
	TagProficiency, TagHitDice, TagActionHeader, TagLegendaryHeader, TagMythicHeader,
	TagRaceTypeHeader, TagStatblockTitle, TagBlockTitle,
}

// SectionTags lists every tag the section annotator can assign.
var SectionTags = []string{
	TagSBStart, TagSBHeader, TagSBDefenceBlock, TagSBArrayTitle, TagSBArrayValue,
	TagSBFlavourBlock, TagSBActionBlock, TagSBLegendaryActionBlock,
	TagSBPart, TagSBPartWeak, TagColStart, TagColEnd,
}
