// Package help holds the quick-start reference printed by 'sbp coldstart'.
package help

const ColdstartYAML = `# statblock-parser Quick Start

inputs:
  json: "Document with pages > sections > lines (text + optional bound)"
  yaml: "Same shape as json"
  hocr: "Tesseract hOCR; each ocr_carea becomes a section, each ocr_line a line"

output_formats:
  json: "Annotated document (default)"
  yaml: "Annotated document"
  xlsx: "Review spreadsheet, one row per line with line and section tags"

commands:
  basic: |
    sbp annotate --input monsters.json

  directory: |
    sbp annotate --input scans/ --format xlsx

  with_config: |
    sbp annotate --config sbp.yaml --input "a.hocr,b.hocr"

  page_selection: |
    sbp annotate --input "mm.json,vgm.json" --pages "12,13;40"

  source_metadata: |
    sbp annotate --input mm.json --source "Monster Manual" --authors "Gygax, Arneson" --url https://example.com/mm

  list_runs: |
    sbp db runs

  run_details: |
    sbp db run 3

  find_titles: |
    sbp db lines --tag statblock_title 3

  tag_counts: |
    sbp db tags 3

line_tags:
  signatures: "cr, dice_roll, senses, ac, hp, speed, melee_attack, ... (matched per line, may repeat)"
  race_type_header: "Size [type][,] [alignment] line, e.g. 'Medium humanoid (any race), any alignment'"
  statblock_title: "Nearest earlier line aligned left within 0.05 and ending within 0.05 above a header"
  block_title: "Capitalised line with fewer than five words before its first period"

section_tags:
  sb_start: "Section holds a statblock_title"
  sb_header: "Section holds a race_type_header"
  sb_defence_block: "hp, ac or speed"
  sb_flavour_block: "languages, saves, skills, cr, senses, immunities, resistances"
  sb_action_block: "action headers, titles and attacks"
  sb_legendary_action_block: "legendary headers, titles and costs"
  sb_part: "Once per generic tag present (dice_roll, check, recharge, counter, spellcasting)"
  sb_part_weak: "More than 10% of lines are block titles"
  col_start/col_end: "First and last section of each page (or document with scope=document)"

config_file: |
  line_annotator:
    title_left_tolerance: 0.05
    title_gap_tolerance: 0.05
  section_annotator:
    weak_density: 0.1
    scope: page
  language:
    enabled: true
    expected: English
  workers: 4
  output_dir: sbp-results
  source:
    title: Monster Manual
    authors: [Gygax]

environment:
  - "SBP_WORKERS, SBP_DB_PATH, SBP_CACHE_DIR, SBP_OUTPUT_DIR"
  - "SBP_TITLE_LEFT_TOLERANCE, SBP_TITLE_GAP_TOLERANCE, SBP_WEAK_DENSITY, SBP_SECTION_SCOPE"
  - "SBP_LANGUAGE_CHECK, SBP_LANGUAGE_EXPECTED"
  - "SBP_SOURCE_TITLE, SBP_SOURCE_AUTHORS, SBP_SOURCE_URL"
  - "SBP_VOCAB_SIZES, SBP_VOCAB_CREATURE_TYPES, SBP_VOCAB_ALIGNMENTS (comma separated)"

invariants:
  - "Annotating twice duplicates every tag; outputs are annotated once per run"
  - "Same input bytes + same config = cache hit (see --max-age, --force)"
  - "Non-English documents are annotated but flagged language_warning in the manifest"

error_behavior:
  - "Missing or unsupported inputs: fail fast before annotating"
  - "Two inputs mapping to the same output file (same name, different directory): fail fast"
  - "Null pages, sections or lines in json/yaml input: the document fails to load"
  - "Per-document failures: recorded in the manifest and run store"
  - "Exit codes: 0=success, 1=one or more documents failed"
`
