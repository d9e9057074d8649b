// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/brainsait/nphies-chat/internal/model"
)

// ErrNotFound is returned when a transcript id does not exist.
var ErrNotFound = errors.New("transcript not found")

// schema creates the archive tables.
const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	archived_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id                TEXT NOT NULL,
	transcript_id     TEXT NOT NULL REFERENCES transcripts(id) ON DELETE CASCADE,
	seq               INTEGER NOT NULL,
	role              TEXT NOT NULL,
	content           TEXT NOT NULL,
	localized_content TEXT NOT NULL DEFAULT '',
	image_uri         TEXT NOT NULL DEFAULT '',
	timestamp         INTEGER NOT NULL,
	PRIMARY KEY (transcript_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_messages_transcript ON messages(transcript_id);
`

// TranscriptInfo summarizes one archived conversation for listing.
type TranscriptInfo struct {
	ID         string
	Title      string
	CreatedAt  time.Time
	ArchivedAt time.Time
	Messages   int
}

// =============================================================================
// ARCHIVE
// =============================================================================

// Archive stores conversation transcripts in a SQLite database.
type Archive struct {
	db *sql.DB
}

// Open opens (or creates) the archive at path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close releases the database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save archives the conversation as one transcript. The title comes
// from the first user message; re-saving the same conversation replaces
// the earlier transcript.
func (a *Archive) Save(conv *model.Conversation) error {
	if conv == nil || conv.IsEmpty() {
		return errors.New("nothing to archive")
	}

	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	title := conv.Preview()

	if _, err := tx.Exec(`
		INSERT INTO transcripts (id, title, created_at, archived_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, archived_at = excluded.archived_at
	`, conv.ID, title, conv.CreatedAt.Unix(), now.Unix()); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE transcript_id = ?`, conv.ID); err != nil {
		return err
	}

	for i, msg := range conv.Messages {
		if _, err := tx.Exec(`
			INSERT INTO messages (id, transcript_id, seq, role, content, localized_content, image_uri, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, msg.ID, conv.ID, i, string(msg.Role), msg.Content, msg.LocalizedContent, msg.AttachedImage, msg.Timestamp.Unix()); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	return tx.Commit()
}

// List returns archived transcripts, most recently archived first.
func (a *Archive) List(limit int) ([]TranscriptInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.db.Query(`
		SELECT t.id, t.title, t.created_at, t.archived_at, COUNT(m.id)
		FROM transcripts t
		LEFT JOIN messages m ON m.transcript_id = t.id
		GROUP BY t.id
		ORDER BY t.archived_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []TranscriptInfo
	for rows.Next() {
		var info TranscriptInfo
		var createdAt, archivedAt int64
		if err := rows.Scan(&info.ID, &info.Title, &createdAt, &archivedAt, &info.Messages); err != nil {
			return nil, err
		}
		info.CreatedAt = time.Unix(createdAt, 0)
		info.ArchivedAt = time.Unix(archivedAt, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Load reconstructs an archived conversation by transcript id.
func (a *Archive) Load(id string) (*model.Conversation, error) {
	var createdAt int64
	err := a.db.QueryRow(`SELECT created_at FROM transcripts WHERE id = ?`, id).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := a.db.Query(`
		SELECT id, role, content, localized_content, image_uri, timestamp
		FROM messages
		WHERE transcript_id = ?
		ORDER BY seq
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conv := &model.Conversation{
		ID:        id,
		CreatedAt: time.Unix(createdAt, 0),
	}
	for rows.Next() {
		var msg model.Message
		var role string
		var ts int64
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &msg.LocalizedContent, &msg.AttachedImage, &ts); err != nil {
			return nil, err
		}
		msg.Role = model.Role(role)
		msg.Timestamp = time.Unix(ts, 0)
		conv.Messages = append(conv.Messages, &msg)
	}
	return conv, rows.Err()
}

// Search returns transcripts whose messages contain the query text.
func (a *Archive) Search(query string, limit int) ([]TranscriptInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.db.Query(`
		SELECT DISTINCT t.id, t.title, t.created_at, t.archived_at,
			(SELECT COUNT(*) FROM messages WHERE transcript_id = t.id)
		FROM transcripts t
		JOIN messages m ON m.transcript_id = t.id
		WHERE m.content LIKE '%' || ? || '%' OR m.localized_content LIKE '%' || ? || '%'
		ORDER BY t.archived_at DESC
		LIMIT ?
	`, query, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []TranscriptInfo
	for rows.Next() {
		var info TranscriptInfo
		var createdAt, archivedAt int64
		if err := rows.Scan(&info.ID, &info.Title, &createdAt, &archivedAt, &info.Messages); err != nil {
			return nil, err
		}
		info.CreatedAt = time.Unix(createdAt, 0)
		info.ArchivedAt = time.Unix(archivedAt, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a transcript and its messages.
func (a *Archive) Delete(id string) error {
	res, err := a.db.Exec(`DELETE FROM transcripts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
