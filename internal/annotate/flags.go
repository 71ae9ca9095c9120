package annotate

import "github.com/urfave/cli/v2"

// Flags are the options of 'sbp annotate'.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Comma-separated documents or directories (.json, .yaml, .hocr)",
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML config file (tolerances, vocabulary, language check)",
		EnvVars: []string{"SBP_CONFIG"},
	},
	&cli.StringFlag{
		Name:  "output-dir",
		Usage: "Directory for annotated documents and the run manifest",
	},
	&cli.StringFlag{
		Name:  "format",
		Value: "json",
		Usage: "Output format: json, yaml or xlsx (review spreadsheet)",
	},
	&cli.StringFlag{
		Name:  "scope",
		Usage: "Section scope for column bookends: page or document",
	},
	&cli.StringFlag{
		Name:  "pages",
		Usage: `Page numbers to annotate, e.g. "1,2;5": groups separated by ';' match inputs in order, one group applies to all`,
	},
	&cli.StringFlag{
		Name:  "source",
		Usage: "Title of the publication the documents come from",
	},
	&cli.StringSliceFlag{
		Name:  "authors",
		Usage: "Publication authors (repeat or comma separate)",
	},
	&cli.StringFlag{
		Name:  "url",
		Usage: "Where the publication can be found",
	},
	&cli.IntFlag{
		Name:  "workers",
		Usage: "Number of documents annotated concurrently",
	},
	&cli.StringFlag{
		Name:  "db",
		Usage: "SQLite run store path (default: next to the binary)",
	},
	&cli.BoolFlag{
		Name:  "no-db",
		Usage: "Do not record the run in the database",
	},
	&cli.StringFlag{
		Name:  "cache-dir",
		Usage: "Cache directory (default: <output-dir>/.cache)",
	},
	&cli.StringFlag{
		Name:  "max-age",
		Value: "24h",
		Usage: "Reuse cached annotations younger than this; 0 never expires",
	},
	&cli.BoolFlag{
		Name:  "force",
		Usage: "Re-annotate even when a cached result exists",
	},
	&cli.BoolFlag{
		Name:  "no-cache",
		Usage: "Disable the annotation cache",
	},
	&cli.BoolFlag{
		Name:  "no-language-check",
		Usage: "Skip document language detection",
	},
	&cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Only log errors",
	},
	&cli.BoolFlag{
		Name:  "debug",
		Usage: "Log per-document debug detail",
	},
}
