package db

import (
	"database/sql"
	"fmt"

	"github.com/dtnitsch/statblock-parser/models"
)

// Document statuses
const (
	StatusSuccess = "success"
	StatusCached  = "cached"
	StatusFailed  = "failed"
)

// DocumentRecord is the per-document outcome of a run.
type DocumentRecord struct {
	DocumentID     int64
	RunID          int64
	Name           string
	SourcePath     string
	ContentHash    string
	Status         string
	ErrorType      string
	ErrorMessage   string
	OutputPath     string
	Language       string
	Confidence     float64
	PageCount      int
	SectionCount   int
	LineCount      int
	StatblockCount int
}

// LineMatch is a stored line found by tag.
type LineMatch struct {
	LineID       int64
	DocumentName string
	PageNumber   int
	Section      int
	Position     int
	Text         string
	Tags         []string
}

// SaveDocument records rec under runID. When doc is non-nil its sections,
// lines and tags are stored as well, all in one transaction.
func (db *DB) SaveDocument(runID int64, rec *DocumentRecord, doc *models.Document) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	result, err := tx.Exec(`
		INSERT INTO documents (
			run_id, name, source_path, content_hash, status, error_type, error_message,
			output_path, language, confidence, page_count, section_count, line_count, statblock_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, rec.Name, rec.SourcePath, rec.ContentHash, rec.Status,
		nullString(rec.ErrorType), nullString(rec.ErrorMessage), nullString(rec.OutputPath),
		nullString(rec.Language), rec.Confidence,
		rec.PageCount, rec.SectionCount, rec.LineCount, rec.StatblockCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	documentID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get document ID: %w", err)
	}

	if doc != nil {
		if err := insertPages(tx, documentID, doc.Pages); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit document: %w", err)
	}

	rec.DocumentID = documentID
	rec.RunID = runID
	return documentID, nil
}

func insertPages(tx *sql.Tx, documentID int64, pages []*models.Page) error {
	for _, page := range pages {
		for si, section := range page.Sections {
			result, err := tx.Exec(`
				INSERT INTO sections (document_id, page_number, position)
				VALUES (?, ?, ?)
			`, documentID, page.Number, si)
			if err != nil {
				return fmt.Errorf("failed to insert section: %w", err)
			}
			sectionID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get section ID: %w", err)
			}

			for ti, tag := range section.Attributes {
				if _, err := tx.Exec("INSERT INTO section_tags (section_id, position, tag) VALUES (?, ?, ?)", sectionID, ti, tag); err != nil {
					return fmt.Errorf("failed to insert section tag: %w", err)
				}
			}

			for li, line := range section.Lines {
				if err := insertLine(tx, sectionID, li, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func insertLine(tx *sql.Tx, sectionID int64, position int, line *models.Line) error {
	var left, top, width, height interface{}
	if line.Bound != nil {
		left, top, width, height = line.Bound.Left, line.Bound.Top, line.Bound.Width, line.Bound.Height
	}

	result, err := tx.Exec(`
		INSERT INTO lines (section_id, position, text, bound_left, bound_top, bound_width, bound_height)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sectionID, position, line.Text, left, top, width, height)
	if err != nil {
		return fmt.Errorf("failed to insert line: %w", err)
	}
	lineID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get line ID: %w", err)
	}

	for ti, tag := range line.Attributes {
		if _, err := tx.Exec("INSERT INTO line_tags (line_id, position, tag) VALUES (?, ?, ?)", lineID, ti, tag); err != nil {
			return fmt.Errorf("failed to insert line tag: %w", err)
		}
	}
	return nil
}

// GetRunDocuments retrieves every document recorded for a run, in insertion order
func (db *DB) GetRunDocuments(runID int64) ([]DocumentRecord, error) {
	rows, err := db.Query(`
		SELECT document_id, run_id, name, source_path, COALESCE(content_hash, ''), status,
			COALESCE(error_type, ''), COALESCE(error_message, ''), COALESCE(output_path, ''),
			COALESCE(language, ''), COALESCE(confidence, 0),
			page_count, section_count, line_count, statblock_count
		FROM documents
		WHERE run_id = ?
		ORDER BY document_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		err := rows.Scan(
			&rec.DocumentID, &rec.RunID, &rec.Name, &rec.SourcePath, &rec.ContentHash, &rec.Status,
			&rec.ErrorType, &rec.ErrorMessage, &rec.OutputPath,
			&rec.Language, &rec.Confidence,
			&rec.PageCount, &rec.SectionCount, &rec.LineCount, &rec.StatblockCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, rec)
	}

	return docs, rows.Err()
}

// FindLinesByTag returns the lines of a run carrying tag, in document and reading order.
// Each match carries the line's full tag list.
func (db *DB) FindLinesByTag(runID int64, tag string) ([]LineMatch, error) {
	rows, err := db.Query(`
		SELECT DISTINCT l.line_id, d.name, s.page_number, s.position, l.position, l.text
		FROM lines l
		JOIN line_tags lt ON lt.line_id = l.line_id
		JOIN sections s ON s.section_id = l.section_id
		JOIN documents d ON d.document_id = s.document_id
		WHERE d.run_id = ? AND lt.tag = ?
		ORDER BY d.document_id, s.section_id, l.position
	`, runID, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}

	var matches []LineMatch
	for rows.Next() {
		var m LineMatch
		if err := rows.Scan(&m.LineID, &m.DocumentName, &m.PageNumber, &m.Section, &m.Position, &m.Text); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Release the connection before the per-line tag lookups
	rows.Close()

	for i := range matches {
		tags, err := db.lineTags(matches[i].LineID)
		if err != nil {
			return nil, err
		}
		matches[i].Tags = tags
	}

	return matches, nil
}

func (db *DB) lineTags(lineID int64) ([]string, error) {
	rows, err := db.Query("SELECT tag FROM line_tags WHERE line_id = ? ORDER BY position", lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan line tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// TagCounts returns how many lines of a run carry each line tag.
func (db *DB) TagCounts(runID int64) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT lt.tag, COUNT(DISTINCT lt.line_id)
		FROM line_tags lt
		JOIN lines l ON l.line_id = lt.line_id
		JOIN sections s ON s.section_id = l.section_id
		JOIN documents d ON d.document_id = s.document_id
		WHERE d.run_id = ?
		GROUP BY lt.tag
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tag string
		var n int
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, fmt.Errorf("failed to scan tag count: %w", err)
		}
		counts[tag] = n
	}
	return counts, rows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
