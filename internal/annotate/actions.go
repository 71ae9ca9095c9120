// Package annotate implements the 'sbp annotate' command.
package annotate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/statblock-parser/internal/common"
	"github.com/dtnitsch/statblock-parser/models"
	pipeline "github.com/dtnitsch/statblock-parser/pkg/annotate"
	"github.com/dtnitsch/statblock-parser/pkg/caching"
	"github.com/dtnitsch/statblock-parser/pkg/db"
	"github.com/dtnitsch/statblock-parser/pkg/detector"
	"github.com/dtnitsch/statblock-parser/pkg/manifest"
	"github.com/dtnitsch/statblock-parser/pkg/storage"
)

// cacheSubdir is used under the output dir when no cache dir is configured.
const cacheSubdir = ".cache"

func AnnotateAction(c *cli.Context) error {
	logger := common.NewLogger(os.Stderr, c.Bool("quiet"), c.Bool("debug"))
	startTime := time.Now()

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format := strings.ToLower(c.String("format"))
	switch format {
	case storage.FormatJSON, storage.FormatYAML, FormatXLSX:
	default:
		return fmt.Errorf("unknown --format %q (want json, yaml or xlsx)", format)
	}

	var inputs []string
	if c.IsSet("input") {
		inputs = strings.Split(c.String("input"), ",")
	}
	inputs = append(inputs, c.Args().Slice()...)

	files, invalid := common.ExpandInputs(inputs)
	if len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d input(s) are missing or not a supported format:\n", len(invalid))
		for _, bad := range invalid {
			fmt.Fprintf(os.Stderr, "  - %s\n", bad)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Supported inputs: .json, .yaml/.yml, .hocr/.html")
		return cli.Exit("", 1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No documents provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  sbp annotate --input "monsters.json,scans/"`)
		fmt.Fprintln(os.Stderr, `  sbp annotate --format xlsx page-12.hocr`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: sbp coldstart")
		return cli.Exit("", 1)
	}

	selection, err := models.ParsePageSelection(c.String("pages"))
	if err != nil {
		return fmt.Errorf("invalid --pages: %w", err)
	}
	if err := selection.Check(len(files)); err != nil {
		return fmt.Errorf("invalid --pages: %w", err)
	}

	outputs, err := storage.OutputPaths(cfg.OutputDir, files, format)
	if err != nil {
		return err
	}

	configHash, err := common.ConfigFingerprint(cfg)
	if err != nil {
		return err
	}

	p, err := newProcessor(c, cfg, logger, format, configHash)
	if err != nil {
		return err
	}
	p.outputs = outputs
	if len(selection) > 0 {
		p.pages = make(map[string][]int, len(files))
		for i, f := range files {
			p.pages[f] = selection.For(i)
		}
	}

	var database *db.DB
	var runID int64
	var runUUID string
	if !c.Bool("no-db") {
		database, err = db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		runID, runUUID, err = database.CreateRun(configHash, cfg.OutputDir, len(files))
		if err != nil {
			return err
		}
		logger.Info("Run", "run_id", runID, "run_uuid", runUUID)

		if p.source != nil {
			if err := database.SetRunSource(runID, *p.source); err != nil {
				logger.Warn("Failed to record run source in DB", "error", err)
			}
		}
	}

	allResults, totals, runErr := run(p, files, cfg.Workers)

	stats := Stats{TotalDocuments: len(files), StatblockStarts: totals.SectionTags[pipeline.TagSBStart]}
	for _, r := range allResults {
		switch {
		case r.Error != nil:
			stats.Failed++
		case r.Cached:
			stats.Cached++
		default:
			stats.Successful++
		}
	}

	if database != nil {
		recordRun(logger, database, runID, allResults)
		if err := database.UpdateRunStats(runID, stats.Successful+stats.Cached, stats.Failed); err != nil {
			logger.Warn("Failed to update run stats in DB", "error", err)
		}
	}

	summary := manifest.Build(runUUID, toManifest(allResults), totals)
	summary.Source = p.source
	manifestPath, err := manifest.GenerateSummary(cfg.OutputDir, summary, p.storage)
	if err != nil {
		return err
	}

	stats.TotalTimeSeconds = time.Since(startTime).Seconds()
	printSummary(stats, runID, manifestPath)

	if runErr != nil {
		return cli.Exit(runErr.Error(), 1)
	}
	return nil
}

// applyFlags overrides file and environment config with explicitly set flags.
func applyFlags(c *cli.Context, cfg *models.Config) {
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("scope") {
		cfg.SectionAnnotator.Scope = c.String("scope")
	}
	if c.Bool("no-language-check") {
		cfg.Language.Enabled = false
	}
	if c.IsSet("source") {
		cfg.Source.Title = c.String("source")
	}
	if c.IsSet("authors") {
		cfg.Source.Authors = models.SplitAuthors(c.StringSlice("authors"))
	}
	if c.IsSet("url") {
		cfg.Source.URL = c.String("url")
	}
}

// newProcessor builds the shared annotation state: pipeline, language
// detector and cache.
func newProcessor(c *cli.Context, cfg *models.Config, logger *slog.Logger, format, configHash string) (*processor, error) {
	pl, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}

	p := &processor{
		logger:     logger,
		pipeline:   pl,
		force:      c.Bool("force"),
		storage:    &storage.Storage{},
		outputDir:  cfg.OutputDir,
		format:     format,
		configHash: configHash,
	}
	if !cfg.Source.IsZero() {
		src := cfg.Source
		p.source = &src
	}

	if cfg.Language.Enabled {
		p.detector, err = detector.New(cfg.Language.Expected)
		if err != nil {
			return nil, fmt.Errorf("invalid language config: %w", err)
		}
	}

	if !c.Bool("no-cache") {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return nil, fmt.Errorf("invalid max-age duration: %w", err)
		}
		cacheDir := cfg.CacheDir
		if cacheDir == "" {
			cacheDir = filepath.Join(cfg.OutputDir, cacheSubdir)
		}
		p.cache, err = caching.NewCache(cacheDir, maxAge)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// recordRun stores every document outcome under the run. DB failures are
// logged and do not fail the run.
func recordRun(logger *slog.Logger, database *db.DB, runID int64, results []Result) {
	for _, r := range results {
		rec := &db.DocumentRecord{
			Name:        filepath.Base(r.SourcePath),
			SourcePath:  r.SourcePath,
			ContentHash: r.ContentHash,
			Status:      db.StatusSuccess,
			OutputPath:  r.OutputPath,
		}
		switch {
		case r.Error != nil:
			rec.Status = db.StatusFailed
			rec.ErrorType = r.ErrorType
			rec.ErrorMessage = r.Error.Error()
		case r.Cached:
			rec.Status = db.StatusCached
		}
		if r.Document != nil {
			rec.Name = r.Document.Name
		}
		if r.Signals != nil {
			rec.Language = r.Signals.Language
			rec.Confidence = r.Signals.Confidence
			rec.PageCount = r.Signals.Pages
			rec.SectionCount = r.Signals.Sections
			rec.LineCount = r.Signals.Lines
			rec.StatblockCount = r.Signals.StatblockStarts
		}

		if _, err := database.SaveDocument(runID, rec, r.Document); err != nil {
			logger.Warn("Failed to record document in DB", "source", r.SourcePath, "error", err)
		}
	}
}

func printSummary(stats Stats, runID int64, manifestPath string) {
	if runID > 0 {
		fmt.Printf("Run %d: ", runID)
	}
	fmt.Printf("%d/%d documents annotated (%d cached, %d failed), %d statblocks in %.1fs\n",
		stats.Successful+stats.Cached, stats.TotalDocuments, stats.Cached, stats.Failed,
		stats.StatblockStarts, stats.TotalTimeSeconds)
	fmt.Printf("Manifest: %s\n", manifestPath)

	if runID > 0 {
		fmt.Printf("\nCommands:\n")
		fmt.Printf("  sbp db run %d                         # Per-document results\n", runID)
		fmt.Printf("  sbp db lines --tag statblock_title %d  # Detected titles\n", runID)
	}
}
