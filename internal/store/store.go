package store

import (
	"context"

	"github.com/starford/noteful/internal/models"
)

// FolderStore defines the folder repository operations.
// Consumers should depend on this interface rather than *FolderRepo.
type FolderStore interface {
	List(ctx context.Context) ([]models.Folder, error)
	Get(ctx context.Context, id int64) (*models.Folder, error)
	Create(ctx context.Context, name string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, u models.FolderUpdate) (int64, error)
}

// NoteStore defines the note repository operations.
type NoteStore interface {
	List(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Create(ctx context.Context, n models.NoteCreate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, u models.NoteUpdate) (int64, error)
}

// Verify the concrete repositories satisfy the interfaces at compile time.
var (
	_ FolderStore = (*FolderRepo)(nil)
	_ NoteStore   = (*NoteRepo)(nil)
)
