// Package db implements the 'sbp db' query commands over the run store.
package db

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/statblock-parser/models"
	"github.com/dtnitsch/statblock-parser/pkg/annotate"
	dbpkg "github.com/dtnitsch/statblock-parser/pkg/db"
	"github.com/dtnitsch/statblock-parser/pkg/mapreduce"
)

func RunsAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-6s %-8s %-8s %-30s\n",
		"ID", "Created", "Docs", "Success", "Failed", "Output Dir")
	fmt.Fprintln(w, strings.Repeat("-", 84))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-6d %-8d %-8d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.DocumentCount,
			r.SuccessCount,
			r.FailedCount,
			r.OutputDir,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'sbp db run <id>' to see details\n")

	return nil
}

// RunAction shows details for a specific run
func RunAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}

	docs, err := database.GetRunDocuments(runID)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Run %d (%s)\n", run.RunID, run.RunUUID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Output:      %s\n", run.OutputDir)
	fmt.Fprintf(w, "Documents:   %d total (%d success, %d failed)\n",
		run.DocumentCount, run.SuccessCount, run.FailedCount)
	fmt.Fprintf(w, "Config:      %.12s\n", run.ConfigHash)
	if !run.Source.IsZero() {
		fmt.Fprintf(w, "Source:      %s", run.Source.Title)
		if len(run.Source.Authors) > 0 {
			fmt.Fprintf(w, " by %s", strings.Join(run.Source.Authors, ", "))
		}
		if run.Source.URL != "" {
			fmt.Fprintf(w, " <%s>", run.Source.URL)
		}
		fmt.Fprintln(w)
	}

	if len(docs) > 0 {
		fmt.Fprintf(w, "\nDocuments (%d):\n", len(docs))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for i, d := range docs {
			fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, d.Status, d.SourcePath)
			if d.Status == dbpkg.StatusFailed {
				fmt.Fprintf(w, "    Error: [%s] %s\n", d.ErrorType, d.ErrorMessage)
				continue
			}
			fmt.Fprintf(w, "    Pages: %d | Sections: %d | Lines: %d | Statblocks: %d | Confidence: %.1f",
				d.PageCount, d.SectionCount, d.LineCount, d.StatblockCount, d.Confidence)
			if d.Language != "" {
				fmt.Fprintf(w, " | Language: %s", d.Language)
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "    Output: %s\n", d.OutputPath)
		}
	}

	fmt.Fprintf(w, "\nTip: Use 'sbp db lines --tag statblock_title %d' to list detected titles\n", runID)

	return nil
}

// LinesAction lists the stored lines of a run carrying --tag
func LinesAction(c *cli.Context) error {
	tag := c.String("tag")
	if !isLineTag(tag) {
		return fmt.Errorf("unknown line tag %q (see 'sbp db tags')", tag)
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	matches, err := database.FindLinesByTag(runID, tag)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if len(matches) == 0 {
		fmt.Fprintf(w, "No lines tagged %s in run %d\n", tag, runID)
		return nil
	}

	for _, m := range matches {
		fmt.Fprintf(w, "%s p%d s%d l%d: %s\n", m.DocumentName, m.PageNumber, m.Section+1, m.Position+1, m.Text)
		if c.Bool("tags") {
			fmt.Fprintf(w, "    [%s]\n", strings.Join(m.Tags, ", "))
		}
	}
	fmt.Fprintf(w, "\nTotal: %d lines\n", len(matches))

	return nil
}

// TagsAction prints line tag counts for a run grouped by taxonomy category
func TagsAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	counts, err := database.TagCounts(runID)
	if err != nil {
		return err
	}

	w := c.App.Writer
	grouped := make(map[string][]string)
	for tag, n := range counts {
		group := "other"
		if cat, ok := annotate.CategoryOf(tag); ok {
			group = string(cat)
		}
		grouped[group] = append(grouped[group], fmt.Sprintf("%s:%d", tag, n))
	}

	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	fmt.Fprintf(w, "Run %d line tags\n", runID)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, g := range groups {
		entries := grouped[g]
		sort.Strings(entries)
		fmt.Fprintf(w, "%-12s %s\n", g, strings.Join(entries, " "))
	}

	fmt.Fprintf(w, "\nMost frequent:\n")
	mapreduce.PrintTopTags(w, counts, c.Int("top"))

	return nil
}

// InitAction creates the database and its schema
func InitAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Fprintf(c.App.Writer, "Database ready at %s\n", database.Path())
	return nil
}

// openDatabase opens --db, then SBP_DB_PATH, then the default next to the binary.
func openDatabase(c *cli.Context) (*dbpkg.DB, error) {
	path := c.String("db")
	if path == "" {
		cfg, err := models.LoadConfig("")
		if err == nil {
			path = cfg.DBPath
		}
	}

	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
