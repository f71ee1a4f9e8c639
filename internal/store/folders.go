package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
)

// FolderRepo implements FolderStore over the folders table.
type FolderRepo struct {
	db *DB
}

// NewFolderRepo creates a folder repository on db.
func NewFolderRepo(db *DB) *FolderRepo {
	return &FolderRepo{db: db}
}

// List returns every folder in id order.
func (r *FolderRepo) List(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.db.conn.QueryContext(ctx, `SELECT id, name FROM folders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list folders: %w", err)
	}
	defer rows.Close()

	out := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("store: scan folder: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Get returns the folder with id, or apperr.ErrNotFound.
func (r *FolderRepo) Get(ctx context.Context, id int64) (*models.Folder, error) {
	var f models.Folder
	err := r.db.conn.QueryRowContext(ctx, r.db.rebind(`SELECT id, name FROM folders WHERE id = ?`), id).
		Scan(&f.ID, &f.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get folder %d: %w", id, err)
	}
	return &f, nil
}

// Create inserts a folder and returns its id.
func (r *FolderRepo) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.conn.QueryRowContext(ctx, r.db.rebind(`INSERT INTO folders (name) VALUES (?) RETURNING id`), name).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: insert folder: %w", err)
	}
	return id, nil
}

// Delete removes the folder with id and returns the number of rows removed.
func (r *FolderRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.conn.ExecContext(ctx, r.db.rebind(`DELETE FROM folders WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("store: delete folder %d: %w", id, err)
	}
	return res.RowsAffected()
}

// Update applies the non-nil fields of u and returns the number of rows changed.
func (r *FolderRepo) Update(ctx context.Context, id int64, u models.FolderUpdate) (int64, error) {
	var sets setClause
	if u.Name != nil {
		sets.add("name", *u.Name)
	}
	return r.db.update(ctx, "folders", id, sets)
}
