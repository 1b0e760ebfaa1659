// ABOUTME: SQLite-backed CRUD store for prompt templates used to seed the submit line.
// ABOUTME: The board never depends on this storage format; it only consumes template content.
package prompts

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a template id has no row.
var ErrNotFound = errors.New("prompt template not found")

// Template is a stored prompt: the content populates the submit text and the
// name/tags drive the prompt manager listing.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists templates in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the template database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			content TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new template with a fresh id and timestamps.
func (s *Store) Create(name, content string, tags []string) (*Template, error) {
	now := time.Now().UTC()
	t := &Template{
		ID:        uuid.New().String(),
		Name:      name,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`INSERT INTO templates (id, name, content, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Content, tagsJSON,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	return t, nil
}

// Get returns the template with the given id, or ErrNotFound.
func (s *Store) Get(id string) (*Template, error) {
	row := s.db.QueryRow(
		"SELECT id, name, content, tags, created_at, updated_at FROM templates WHERE id = ?", id)
	return scanTemplate(row)
}

// Update replaces name, content, and tags, bumping updated_at. Returns
// ErrNotFound when no row matches.
func (s *Store) Update(id, name, content string, tags []string) (*Template, error) {
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return nil, err
	}
	res, err := s.db.Exec(
		`UPDATE templates SET name = ?, content = ?, tags = ?, updated_at = ? WHERE id = ?`,
		name, content, tagsJSON, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(id)
}

// Delete removes a template. Returns ErrNotFound when no row matches.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all templates ordered by updated_at descending.
func (s *Store) List() ([]Template, error) {
	rows, err := s.db.Query(
		"SELECT id, name, content, tags, created_at, updated_at FROM templates ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*Template, error) {
	var t Template
	var tagsJSON, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.Name, &t.Content, &tagsJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan template row: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
		return nil, fmt.Errorf("parse tags: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &t, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(data), nil
}
