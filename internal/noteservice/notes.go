package noteservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/validate"
)

// Note error messages.
const (
	MsgInvalidNoteTitle    = "invalid note title"
	MsgInvalidNoteContent  = "invalid note content"
	MsgInvalidNoteFolderID = "invalid note folder_id"
	MsgNoValidFields       = "no valid fields"
	MsgNoteNotFound        = "note not found"
)

// NoteInput carries the raw, decoded request fields of a note write.
// A nil field was not provided.
type NoteInput struct {
	Title    any `json:"title"`
	Content  any `json:"content"`
	FolderID any `json:"folder_id"`
}

// ListNotes returns every note.
func (s *Service) ListNotes(ctx context.Context) ([]models.Note, error) {
	return s.notes.List(ctx)
}

// GetNote returns the note with id.
func (s *Service) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	n, err := s.notes.Get(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound(MsgNoteNotFound)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return n, nil
}

// CreateNote validates title, content and folder_id, in that order, and
// inserts the note. The first failing field decides the error.
func (s *Service) CreateNote(ctx context.Context, in NoteInput) (int64, error) {
	var res validate.Result
	if !res.Check("title", MsgInvalidNoteTitle, validate.Title(in.Title)) {
		return 0, res.Err()
	}
	if !res.Check("content", MsgInvalidNoteContent, validate.Content(in.Content)) {
		return 0, res.Err()
	}
	if !s.FolderExists(ctx, in.FolderID) {
		res.FailReferential("folder_id", MsgInvalidNoteFolderID)
		return 0, res.Err()
	}
	folderID, _ := validate.FolderID(in.FolderID)

	nc := models.NoteCreate{
		Title:     in.Title.(string),
		Content:   in.Content.(string),
		FolderID:  folderID,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.notes.Create(ctx, nc)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	s.logger.Info("note added",
		slog.Int64("id", id),
		slog.String("title", nc.Title),
		slog.Int64("folder_id", nc.FolderID))
	s.publish(ResourceNote, ActionCreated, id)
	return id, nil
}

// UpdateNote applies the provided fields of in to the note with id. Every
// provided field must be valid before anything is written; at least one
// field must be provided. date_modified is refreshed on success.
func (s *Service) UpdateNote(ctx context.Context, id int64, in NoteInput) error {
	var (
		res validate.Result
		u   models.NoteUpdate
	)
	if in.Title != nil {
		if !res.Check("title", MsgInvalidNoteTitle, validate.Title(in.Title)) {
			return res.Err()
		}
		t := in.Title.(string)
		u.Title = &t
	}
	if in.Content != nil {
		if !res.Check("content", MsgInvalidNoteContent, validate.Content(in.Content)) {
			return res.Err()
		}
		c := in.Content.(string)
		u.Content = &c
	}
	if in.FolderID != nil {
		if !s.FolderExists(ctx, in.FolderID) {
			res.FailReferential("folder_id", MsgInvalidNoteFolderID)
			return res.Err()
		}
		fid, _ := validate.FolderID(in.FolderID)
		u.FolderID = &fid
	}
	if u.Empty() {
		return apperr.Validation("", MsgNoValidFields)
	}

	now := s.now().UTC()
	u.DateModified = &now
	rows, err := s.notes.Update(ctx, id, u)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.NotFound(MsgNoteNotFound)
	}
	s.logger.Info("note updated", slog.Int64("id", id))
	s.publish(ResourceNote, ActionUpdated, id)
	return nil
}

// DeleteNote removes the note with id.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	rows, err := s.notes.Delete(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.NotFound(MsgNoteNotFound)
	}
	s.logger.Info("note deleted", slog.Int64("id", id))
	s.publish(ResourceNote, ActionDeleted, id)
	return nil
}
