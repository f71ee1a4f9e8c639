package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
)

const noteColumns = `id, title, content, folder_id, date_created, date_modified`

// NoteRepo implements NoteStore over the notes table.
type NoteRepo struct {
	db *DB
}

// NewNoteRepo creates a note repository on db.
func NewNoteRepo(db *DB) *NoteRepo {
	return &NoteRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (models.Note, error) {
	var n models.Note
	err := s.Scan(&n.ID, &n.Title, &n.Content, &n.FolderID, &n.DateCreated, &n.DateModified)
	n.DateCreated = n.DateCreated.UTC()
	n.DateModified = n.DateModified.UTC()
	return n, err
}

// List returns every note in id order.
func (r *NoteRepo) List(ctx context.Context) ([]models.Note, error) {
	rows, err := r.db.conn.QueryContext(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	out := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Get returns the note with id, or apperr.ErrNotFound.
func (r *NoteRepo) Get(ctx context.Context, id int64) (*models.Note, error) {
	row := r.db.conn.QueryRowContext(ctx, r.db.rebind(`SELECT `+noteColumns+` FROM notes WHERE id = ?`), id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note %d: %w", id, err)
	}
	return &n, nil
}

// Create inserts a note. Both timestamps are set to n.CreatedAt.
func (r *NoteRepo) Create(ctx context.Context, n models.NoteCreate) (int64, error) {
	var id int64
	err := r.db.conn.QueryRowContext(ctx, r.db.rebind(`
		INSERT INTO notes (title, content, folder_id, date_created, date_modified)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), n.Title, n.Content, n.FolderID, n.CreatedAt.UTC(), n.CreatedAt.UTC()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: insert note: %w", err)
	}
	return id, nil
}

// Delete removes the note with id and returns the number of rows removed.
func (r *NoteRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.conn.ExecContext(ctx, r.db.rebind(`DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("store: delete note %d: %w", id, err)
	}
	return res.RowsAffected()
}

// Update applies the non-nil fields of u and returns the number of rows changed.
func (r *NoteRepo) Update(ctx context.Context, id int64, u models.NoteUpdate) (int64, error) {
	var sets setClause
	if u.Title != nil {
		sets.add("title", *u.Title)
	}
	if u.Content != nil {
		sets.add("content", *u.Content)
	}
	if u.FolderID != nil {
		sets.add("folder_id", *u.FolderID)
	}
	if u.DateModified != nil {
		sets.add("date_modified", u.DateModified.UTC())
	}
	return r.db.update(ctx, "notes", id, sets)
}

// setClause accumulates column assignments for a partial update.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

// update runs UPDATE table SET ... WHERE id = ?. Table and column names come
// from this package only. An empty clause is a no-op.
func (db *DB) update(ctx context.Context, table string, id int64, s setClause) (int64, error) {
	if len(s.cols) == 0 {
		return 0, nil
	}
	query := db.rebind(`UPDATE ` + table + ` SET ` + strings.Join(s.cols, ", ") + ` WHERE id = ?`)
	res, err := db.conn.ExecContext(ctx, query, append(s.args, id)...)
	if err != nil {
		return 0, fmt.Errorf("store: update %s %d: %w", table, id, err)
	}
	return res.RowsAffected()
}
