package annotate

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/statblock-parser/models"
	pipeline "github.com/dtnitsch/statblock-parser/pkg/annotate"
	"github.com/dtnitsch/statblock-parser/pkg/caching"
	"github.com/dtnitsch/statblock-parser/pkg/storage"
)

const banditJSON = `{
  "pages": [
    {
      "number": 1,
      "sections": [
        {
          "lines": [
            {"text": "Bandit Captain", "bound": {"left": 0.1, "top": 0.2, "width": 0.2, "height": 0.02}},
            {"text": "Medium Humanoid, chaotic evil", "bound": {"left": 0.1, "top": 0.225, "width": 0.3, "height": 0.015}},
            {"text": "Armor Class 15 (studded leather)"},
            {"text": "Hit Points 65 (10d8 + 20)"}
          ]
        }
      ]
    }
  ]
}`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newTestProcessor(t *testing.T, format string, withCache bool) *processor {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pl, err := pipeline.NewPipeline(models.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	p := &processor{
		logger:     logger,
		pipeline:   pl,
		storage:    &storage.Storage{},
		outputDir:  filepath.Join(t.TempDir(), "out"),
		format:     format,
		configHash: "test",
	}
	if withCache {
		p.cache, err = caching.NewCache(filepath.Join(t.TempDir(), "cache"), time.Hour)
		if err != nil {
			t.Fatalf("NewCache() error = %v", err)
		}
	}
	return p
}

func TestProcess_Success(t *testing.T) {
	p := newTestProcessor(t, storage.FormatJSON, false)
	src := writeInput(t, t.TempDir(), "bandit.json", banditJSON)

	r := p.process(1, src)
	if r.Error != nil {
		t.Fatalf("process() error = %v", r.Error)
	}
	if r.Cached {
		t.Error("process() Cached = true without a cache")
	}
	if r.ContentHash == "" {
		t.Error("process() ContentHash empty")
	}
	if r.Frequencies.LineTags[pipeline.TagStatblockTitle] != 1 {
		t.Errorf("statblock_title count = %d, want 1", r.Frequencies.LineTags[pipeline.TagStatblockTitle])
	}
	if r.Signals == nil || r.Signals.StatblockStarts != 1 {
		t.Errorf("Signals = %+v, want one statblock start", r.Signals)
	}

	data, err := os.ReadFile(r.OutputPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	for _, want := range []string{"race_type_header", "sb_start", "col_start", "col_end"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestProcess_Cache(t *testing.T) {
	p := newTestProcessor(t, storage.FormatYAML, true)
	src := writeInput(t, t.TempDir(), "bandit.json", banditJSON)

	first := p.process(1, src)
	if first.Error != nil || first.Cached {
		t.Fatalf("first process() = cached %v, error %v", first.Cached, first.Error)
	}

	second := p.process(1, src)
	if second.Error != nil {
		t.Fatalf("second process() error = %v", second.Error)
	}
	if !second.Cached {
		t.Error("second process() Cached = false, want true")
	}
	// A cache hit must not annotate again
	title := second.Document.Pages[0].Sections[0].Lines[0]
	if len(title.Attributes) != 1 {
		t.Errorf("cached title attributes = %v, want exactly one tag", title.Attributes)
	}

	p.force = true
	forced := p.process(1, src)
	if forced.Cached {
		t.Error("forced process() Cached = true, want false")
	}
}

func TestProcess_Failures(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		path     string
		wantType string
	}{
		{"missing file", filepath.Join(dir, "missing.json"), ErrTypeRead},
		{"unsupported", writeInput(t, dir, "notes.txt", "Armor Class 12"), ErrTypeUnsupported},
		{"schema violation", writeInput(t, dir, "bad.json", `{"pages": [{"sections": [{"lines": [{"bound": {}}]}]}]}`), ErrTypeLoad},
		{"no sections in document scope", writeInput(t, dir, "empty.json", `{"pages": []}`), ErrTypeAnnotate},
	}

	p := newTestProcessor(t, storage.FormatJSON, false)
	cfg := models.DefaultConfig()
	cfg.SectionAnnotator.Scope = models.ScopeDocument
	docScope, err := pipeline.NewPipeline(cfg, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	p.pipeline = docScope

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := p.process(1, tt.path)
			if r.Error == nil {
				t.Fatal("process() expected error")
			}
			if r.ErrorType != tt.wantType {
				t.Errorf("ErrorType = %q, want %q (error: %v)", r.ErrorType, tt.wantType, r.Error)
			}
			if r.OutputPath != "" {
				t.Errorf("OutputPath = %q, want empty on failure", r.OutputPath)
			}
		})
	}
}

func TestProcess_XLSX(t *testing.T) {
	p := newTestProcessor(t, FormatXLSX, false)
	src := writeInput(t, t.TempDir(), "bandit.json", banditJSON)

	r := p.process(1, src)
	if r.Error != nil {
		t.Fatalf("process() error = %v", r.Error)
	}
	if !strings.HasSuffix(r.OutputPath, ".annotated.xlsx") {
		t.Errorf("OutputPath = %q", r.OutputPath)
	}
	if _, err := os.Stat(r.OutputPath); err != nil {
		t.Errorf("xlsx not written: %v", err)
	}
}

func TestRun(t *testing.T) {
	p := newTestProcessor(t, storage.FormatJSON, false)
	dir := t.TempDir()

	files := []string{
		writeInput(t, dir, "a.json", banditJSON),
		writeInput(t, dir, "b.yaml", "pages:\n  - number: 1\n    sections:\n      - lines:\n          - text: Speed 30 ft.\n"),
		writeInput(t, dir, "c.txt", "not a document"),
		writeInput(t, dir, "d.json", banditJSON),
	}

	results, totals, err := run(p, files, 3)
	if err == nil {
		t.Error("run() expected error when a document fails")
	}
	if len(results) != len(files) {
		t.Fatalf("run() returned %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.SourcePath != files[i] {
			t.Errorf("results[%d] = %s, want input order %s", i, r.SourcePath, files[i])
		}
	}
	if results[2].Error == nil {
		t.Error("results[2] expected error for unsupported input")
	}
	if totals.SectionTags[pipeline.TagSBStart] != 2 {
		t.Errorf("sb_start total = %d, want 2", totals.SectionTags[pipeline.TagSBStart])
	}
	if totals.LineTags[pipeline.TagSpeed] != 1 {
		t.Errorf("speed total = %d, want 1", totals.LineTags[pipeline.TagSpeed])
	}
}

func TestProcess_PagesAndSource(t *testing.T) {
	p := newTestProcessor(t, storage.FormatJSON, true)
	dir := t.TempDir()
	src := writeInput(t, dir, "book.json", `{"pages": [
  {"number": 3, "sections": [{"lines": [{"text": "Armor Class 12"}]}]},
  {"number": 4, "sections": [{"lines": [{"text": "Speed 30 ft."}]}]}
]}`)

	all := p.process(1, src)
	if all.Error != nil {
		t.Fatalf("process() error = %v", all.Error)
	}
	if len(all.Document.Pages) != 2 {
		t.Fatalf("pages = %d, want 2 without a selection", len(all.Document.Pages))
	}
	if all.OutputBytes == 0 {
		t.Error("OutputBytes = 0, want size of written output")
	}

	p.pages = map[string][]int{src: {4}}
	p.source = &models.Source{Title: "Creature Codex"}
	selected := p.process(1, src)
	if selected.Error != nil {
		t.Fatalf("process() error = %v", selected.Error)
	}
	if selected.Cached {
		t.Error("page selection reused the unselected cache entry")
	}
	if len(selected.Document.Pages) != 1 || selected.Document.Pages[0].Number != 4 {
		t.Errorf("pages = %+v, want only page 4", selected.Document.Pages)
	}
	if selected.Frequencies.LineTags[pipeline.TagAC] != 0 || selected.Frequencies.LineTags[pipeline.TagSpeed] != 1 {
		t.Errorf("line tags = %v, want only the selected page", selected.Frequencies.LineTags)
	}
	if selected.Document.Source == nil || selected.Document.Source.Title != "Creature Codex" {
		t.Errorf("Source = %+v, want Creature Codex", selected.Document.Source)
	}
}

func TestProcess_OutputPaths(t *testing.T) {
	p := newTestProcessor(t, storage.FormatJSON, false)
	dir := t.TempDir()
	asJSON := writeInput(t, dir, "page-12.json", banditJSON)
	asYAML := writeInput(t, dir, "page-12.yaml", "pages:\n  - number: 12\n    sections:\n      - lines:\n          - text: Speed 30 ft.\n")

	a := p.process(1, asJSON)
	b := p.process(1, asYAML)
	if a.Error != nil || b.Error != nil {
		t.Fatalf("process() errors = %v, %v", a.Error, b.Error)
	}
	if a.OutputPath == b.OutputPath {
		t.Errorf("both inputs wrote %s", a.OutputPath)
	}
}
