// Package models defines the domain types for noteful.
package models

import "time"

// Folder is a named grouping container for notes.
type Folder struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Note is a titled content record that belongs to a folder.
type Note struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	FolderID     int64     `json:"folder_id"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// FolderUpdate is a partial folder update. Nil fields are left untouched.
type FolderUpdate struct {
	Name *string
}

// Empty reports whether no field is set.
func (u FolderUpdate) Empty() bool {
	return u.Name == nil
}

// NoteCreate carries the pre-validated fields of a new note.
type NoteCreate struct {
	Title     string
	Content   string
	FolderID  int64
	CreatedAt time.Time
}

// NoteUpdate is a partial note update. Nil fields are left untouched.
type NoteUpdate struct {
	Title        *string
	Content      *string
	FolderID     *int64
	DateModified *time.Time
}

// Empty reports whether no field is set.
func (u NoteUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.FolderID == nil && u.DateModified == nil
}
