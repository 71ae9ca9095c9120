package db

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/statblock-parser/pkg/annotate"
	dbpkg "github.com/dtnitsch/statblock-parser/pkg/db"
)

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runID, err := database.GetLatestRunID()
		if err != nil {
			return 0, fmt.Errorf("%w. Run 'sbp annotate --input \"...\"' first", err)
		}
		return runID, nil
	}

	var runID int64
	_, err := fmt.Sscanf(c.Args().First(), "%d", &runID)
	if err != nil || runID <= 0 {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}

// isLineTag reports whether tag is one the line annotator can assign.
func isLineTag(tag string) bool {
	for _, t := range annotate.LineTags {
		if t == tag {
			return true
		}
	}
	return false
}
