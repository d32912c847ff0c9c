// Package store persists parse and validation results to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dgallion1/edigest/internal/interchange"
	_ "modernc.org/sqlite"
)

// Schema for the pipeline tables. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	format TEXT NOT NULL,
	size_bytes INTEGER NOT NULL DEFAULT 0,
	confidence REAL NOT NULL DEFAULT 0,
	processed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	status TEXT NOT NULL DEFAULT 'processed',
	error_message TEXT
);

CREATE TABLE IF NOT EXISTS fields (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id INTEGER NOT NULL REFERENCES files(id),
	name TEXT NOT NULL,
	value TEXT,
	segment_type TEXT,
	position INTEGER NOT NULL DEFAULT 0,
	confidence REAL NOT NULL DEFAULT 1.0
);
CREATE INDEX IF NOT EXISTS idx_fields_file ON fields(file_id);

CREATE TABLE IF NOT EXISTS issues (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id INTEGER NOT NULL REFERENCES files(id),
	severity TEXT NOT NULL,
	code TEXT NOT NULL,
	message TEXT NOT NULL,
	related_field TEXT
);
CREATE INDEX IF NOT EXISTS idx_issues_file ON issues(file_id);
`

// FileRecord is one row of the files table.
type FileRecord struct {
	ID           int64   `json:"id"`
	Filename     string  `json:"filename"`
	Format       string  `json:"format"`
	SizeBytes    int64   `json:"size_bytes"`
	Confidence   float64 `json:"confidence"`
	ProcessedAt  string  `json:"processed_at"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// Export bundles a file with everything extracted from it.
type Export struct {
	File   FileRecord                    `json:"file"`
	Fields []interchange.FieldRecord     `json:"fields"`
	Issues []interchange.ValidationIssue `json:"issues"`
}

// Store wraps the SQLite database holding processed interchange data.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies Schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// SQLite allows one writer; the worker pool shares this handle.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InsertFile records a processed file and returns its row ID.
func (s *Store) InsertFile(ctx context.Context, filename string, format interchange.Format, sizeBytes int64, confidence float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO files (filename, format, size_bytes, confidence) VALUES (?, ?, ?, ?)`,
		filename, string(format), sizeBytes, confidence)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert file id: %w", err)
	}
	return id, nil
}

// InsertFields writes all field rows for a file in one transaction.
func (s *Store) InsertFields(ctx context.Context, fileID int64, fields []interchange.FieldRecord) error {
	if len(fields) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO fields (file_id, name, value, segment_type, position, confidence)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare fields insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range fields {
		if _, err := stmt.Exec(fileID, f.Name, f.Value, f.SegmentType, f.Position, f.Confidence); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert field %s: %w", f.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fields: %w", err)
	}
	return nil
}

// InsertIssues writes validation issues for a file in one transaction.
func (s *Store) InsertIssues(ctx context.Context, fileID int64, issues []interchange.ValidationIssue) error {
	if len(issues) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO issues (file_id, severity, code, message, related_field)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare issues insert: %w", err)
	}
	defer stmt.Close()

	for _, is := range issues {
		if _, err := stmt.Exec(fileID, string(is.Severity), is.Code, is.Message, is.RelatedField); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert issue %s: %w", is.Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit issues: %w", err)
	}
	return nil
}

// UpdateStatus sets the processing status and optional error message.
func (s *Store) UpdateStatus(ctx context.Context, fileID int64, status, errorMessage string) error {
	var msg any
	if errorMessage != "" {
		msg = errorMessage
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE files SET status = ?, error_message = ? WHERE id = ?`, status, msg, fileID); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// FileByID returns one file row, or nil when absent.
func (s *Store) FileByID(ctx context.Context, fileID int64) (*FileRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, format, size_bytes, confidence, processed_at, status, COALESCE(error_message, '')
		 FROM files WHERE id = ?`, fileID)
	var f FileRecord
	err := row.Scan(&f.ID, &f.Filename, &f.Format, &f.SizeBytes, &f.Confidence, &f.ProcessedAt, &f.Status, &f.ErrorMessage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select file %d: %w", fileID, err)
	}
	return &f, nil
}

// ListFiles returns all processed files, newest first.
func (s *Store) ListFiles(ctx context.Context) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, format, size_bytes, confidence, processed_at, status, COALESCE(error_message, '')
		 FROM files ORDER BY processed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.ID, &f.Filename, &f.Format, &f.SizeBytes, &f.Confidence, &f.ProcessedAt, &f.Status, &f.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// FieldsByFile returns all extracted fields for a file in storage order.
func (s *Store) FieldsByFile(ctx context.Context, fileID int64) ([]interchange.FieldRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, COALESCE(value, ''), COALESCE(segment_type, ''), position, confidence
		 FROM fields WHERE file_id = ? ORDER BY position, id`, fileID)
	if err != nil {
		return nil, fmt.Errorf("select fields: %w", err)
	}
	defer rows.Close()

	var fields []interchange.FieldRecord
	for rows.Next() {
		var f interchange.FieldRecord
		if err := rows.Scan(&f.Name, &f.Value, &f.SegmentType, &f.Position, &f.Confidence); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// IssuesByFile returns all validation issues recorded for a file.
func (s *Store) IssuesByFile(ctx context.Context, fileID int64) ([]interchange.ValidationIssue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT severity, code, message, COALESCE(related_field, '') FROM issues WHERE file_id = ? ORDER BY id`, fileID)
	if err != nil {
		return nil, fmt.Errorf("select issues: %w", err)
	}
	defer rows.Close()

	var issues []interchange.ValidationIssue
	for rows.Next() {
		var is interchange.ValidationIssue
		var sev string
		if err := rows.Scan(&sev, &is.Code, &is.Message, &is.RelatedField); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		is.Severity = interchange.Severity(sev)
		issues = append(issues, is)
	}
	return issues, rows.Err()
}

// FileCount returns the number of processed files.
func (s *Store) FileCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return n, nil
}

// ExportFile assembles the full stored view of one file, or nil when absent.
func (s *Store) ExportFile(ctx context.Context, fileID int64) (*Export, error) {
	file, err := s.FileByID(ctx, fileID)
	if err != nil || file == nil {
		return nil, err
	}
	fields, err := s.FieldsByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	issues, err := s.IssuesByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return &Export{File: *file, Fields: fields, Issues: issues}, nil
}
