package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtnitsch/statblock-parser/models"
)

const runColumns = `run_id, run_uuid, created_at, config_hash, output_dir,
	COALESCE(source_title, ''), COALESCE(source_authors, ''), COALESCE(source_url, ''),
	document_count, success_count, failed_count`

// Run is one 'sbp annotate' invocation.
type Run struct {
	RunID         int64
	RunUUID       string
	CreatedAt     time.Time
	ConfigHash    string
	OutputDir     string
	Source        models.Source
	DocumentCount int
	SuccessCount  int
	FailedCount   int
}

// CreateRun inserts a new run and returns its ID and UUID.
func (db *DB) CreateRun(configHash, outputDir string, documentCount int) (int64, string, error) {
	runUUID := uuid.NewString()

	result, err := db.Exec(`
		INSERT INTO runs (run_uuid, config_hash, output_dir, document_count)
		VALUES (?, ?, ?, ?)
	`, runUUID, configHash, outputDir, documentCount)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, "", fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, runUUID, nil
}

// UpdateRunStats updates the success and failed counts for a run
func (db *DB) UpdateRunStats(runID int64, successCount, failedCount int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET success_count = ?, failed_count = ?
		WHERE run_id = ?
	`, successCount, failedCount, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// SetRunSource records the publication the run's documents came from.
func (db *DB) SetRunSource(runID int64, src models.Source) error {
	_, err := db.Exec(`
		UPDATE runs
		SET source_title = ?, source_authors = ?, source_url = ?
		WHERE run_id = ?
	`, nullString(src.Title), nullString(strings.Join(src.Authors, ",")), nullString(src.URL), runID)
	if err != nil {
		return fmt.Errorf("failed to set run source: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var authors string
	err := row.Scan(
		&run.RunID,
		&run.RunUUID,
		&run.CreatedAt,
		&run.ConfigHash,
		&run.OutputDir,
		&run.Source.Title,
		&authors,
		&run.Source.URL,
		&run.DocumentCount,
		&run.SuccessCount,
		&run.FailedCount,
	)
	if err != nil {
		return nil, err
	}
	if authors != "" {
		run.Source.Authors = strings.Split(authors, ",")
	}
	return &run, nil
}

// GetRunByID retrieves a run by its ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	run, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetLatestRunID returns the most recent run, or an error when none exist.
func (db *DB) GetLatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&runID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no runs found")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// ListRuns returns runs newest first. limit <= 0 returns all of them.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY run_id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}
