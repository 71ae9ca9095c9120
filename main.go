package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/statblock-parser/internal/annotate"
	"github.com/dtnitsch/statblock-parser/internal/db"
	"github.com/dtnitsch/statblock-parser/pkg/help"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sbp",
		Usage: "Tag creature statblock structure in OCR'd rulebook pages",
		Commands: []*cli.Command{
			{
				Name:      "annotate",
				Usage:     "Annotate documents and write tagged output, a manifest and a run record",
				ArgsUsage: "[documents...]",
				Flags:     annotate.Flags,
				Action:    annotate.AnnotateAction,
			},
			{
				Name:  "db",
				Usage: "Query recorded runs",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "List runs, newest first",
						Flags:  []cli.Flag{dbFlag(), &cli.IntFlag{Name: "limit", Value: 20, Usage: "Max runs to list (0 = all)"}},
						Action: db.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "Show per-document results of a run",
						ArgsUsage: "[run_id]",
						Flags:     []cli.Flag{dbFlag()},
						Action:    db.RunAction,
					},
					{
						Name:      "lines",
						Usage:     "List lines of a run carrying a tag",
						ArgsUsage: "[run_id]",
						Flags: []cli.Flag{
							dbFlag(),
							&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Required: true, Usage: "Line tag, e.g. statblock_title"},
							&cli.BoolFlag{Name: "tags", Usage: "Print every tag of each matching line"},
						},
						Action: db.LinesAction,
					},
					{
						Name:      "tags",
						Usage:     "Count line tags of a run by category",
						ArgsUsage: "[run_id]",
						Flags:     []cli.Flag{dbFlag(), &cli.IntFlag{Name: "top", Value: 5, Usage: "Number of most frequent tags to list"}},
						Action:    db.TagsAction,
					},
					{
						Name:   "init",
						Usage:  "Create the database and schema",
						Flags:  []cli.Flag{dbFlag()},
						Action: db.InitAction,
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "SQLite run store path (default: SBP_DB_PATH, then next to the binary)",
	}
}
