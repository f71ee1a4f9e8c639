package api

import (
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/noteservice"
)

// FolderRequest is the request body for creating or renaming a folder.
// Name stays untyped so a non-string value is reported as an invalid name.
type FolderRequest struct {
	Name any `json:"name" example:"Recipes"`
}

// NoteRequest is the request body for creating or patching a note.
type NoteRequest = noteservice.NoteInput

// CreatedResponse is returned by successful POSTs.
type CreatedResponse struct {
	ID int64 `json:"id" example:"1" validate:"required"`
}

// Folder is the folder response type (aliased from the domain layer).
type Folder = models.Folder

// Note is the note response type (aliased from the domain layer).
type Note = models.Note
