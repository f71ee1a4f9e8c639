package noteservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/validate"
)

// Folder error messages.
const (
	MsgInvalidFolderName = "invalid folder name"
	MsgFolderNotFound    = "folder not found"
)

// ListFolders returns every folder.
func (s *Service) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folders.List(ctx)
}

// GetFolder returns the folder with id.
func (s *Service) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	f, err := s.folders.Get(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound(MsgFolderNotFound)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return f, nil
}

// CreateFolder validates name and inserts a folder, returning its id.
func (s *Service) CreateFolder(ctx context.Context, name any) (int64, error) {
	var res validate.Result
	if !res.Check("name", MsgInvalidFolderName, validate.Name(name)) {
		return 0, res.Err()
	}
	n := name.(string)

	id, err := s.folders.Create(ctx, n)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	s.logger.Info("folder added", slog.String("name", n), slog.Int64("id", id))
	s.publish(ResourceFolder, ActionCreated, id)
	return id, nil
}

// RenameFolder validates name and applies it to the folder with id.
func (s *Service) RenameFolder(ctx context.Context, id int64, name any) error {
	var res validate.Result
	if !res.Check("name", MsgInvalidFolderName, validate.Name(name)) {
		return res.Err()
	}
	n := name.(string)

	rows, err := s.folders.Update(ctx, id, models.FolderUpdate{Name: &n})
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.NotFound(MsgFolderNotFound)
	}
	s.logger.Info("folder updated", slog.Int64("id", id))
	s.publish(ResourceFolder, ActionUpdated, id)
	return nil
}

// DeleteFolder removes the folder with id. Notes that reference it are left
// untouched.
func (s *Service) DeleteFolder(ctx context.Context, id int64) error {
	rows, err := s.folders.Delete(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.NotFound(MsgFolderNotFound)
	}
	s.logger.Info("folder deleted", slog.Int64("id", id))
	s.publish(ResourceFolder, ActionDeleted, id)
	return nil
}

// FolderExists reports whether folderID names an existing folder.
//
// The check fails closed: a lookup error is logged and reported as false, so
// the caller answers "invalid folder_id" rather than a server error.
func (s *Service) FolderExists(ctx context.Context, folderID any) bool {
	id, ok := validate.FolderID(folderID)
	if !ok {
		return false
	}
	f, err := s.folders.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("folder lookup failed", slog.Int64("folder_id", id), slog.String("error", err.Error()))
		}
		return false
	}
	return f != nil && f.ID == id
}
