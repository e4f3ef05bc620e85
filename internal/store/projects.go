// Package store persists whole-document snapshots as named projects. The
// in-memory store stays authoritative; saving and loading are explicit user
// actions, never implicit autosaves.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/inkwell/internal/core/model"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    document TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

type ProjectInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProjectStore struct {
	db *sql.DB
}

func Open(path string) (*ProjectStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &ProjectStore{db: db}, nil
}

func (p *ProjectStore) Close() error {
	return p.db.Close()
}

// Save writes the snapshot under a new project id and returns its info.
func (p *ProjectStore) Save(name string, doc model.Document) (*ProjectInfo, error) {
	info := &ProjectInfo{
		ID:        uuid.New().String(),
		Name:      name,
		UpdatedAt: time.Now().UTC(),
	}
	return info, p.write(info, doc)
}

// Overwrite replaces an existing project's snapshot in place.
func (p *ProjectStore) Overwrite(id, name string, doc model.Document) (*ProjectInfo, error) {
	info := &ProjectInfo{
		ID:        id,
		Name:      name,
		UpdatedAt: time.Now().UTC(),
	}
	return info, p.write(info, doc)
}

func (p *ProjectStore) write(info *ProjectInfo, doc model.Document) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = p.db.Exec(
		`INSERT INTO projects (id, name, document, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, document = excluded.document, updated_at = excluded.updated_at`,
		info.ID, info.Name, string(blob), info.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

func (p *ProjectStore) Load(id string) (model.Document, error) {
	var blob string
	err := p.db.QueryRow(`SELECT document FROM projects WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return model.Document{}, fmt.Errorf("project %s not found", id)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("load project: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(blob), &doc); err != nil {
		return model.Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func (p *ProjectStore) List() ([]ProjectInfo, error) {
	rows, err := p.db.Query(`SELECT id, name, updated_at FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var infos []ProjectInfo
	for rows.Next() {
		var info ProjectInfo
		var updated string
		if err := rows.Scan(&info.ID, &info.Name, &updated); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (p *ProjectStore) Delete(id string) error {
	_, err := p.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
