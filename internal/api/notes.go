package api

import (
	"net/http"
)

// ListNotes handles GET /api/notes.
//
//	@Summary		List all notes
//	@Tags			notes
//	@Produce		json
//	@Success		200	{array}	Note
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListNotes(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a note in an existing folder
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		NoteRequest	true	"Note to create"
//	@Success		201		{object}	CreatedResponse
//	@Failure		400		{object}	errResponse
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	id, err := h.svc.CreateNote(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	created(w, r, id)
}

// GetNote handles GET /api/notes/{id}.
//
//	@Summary		Get a note by id
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		int	true	"Note id"
//	@Success		200	{object}	Note
//	@Failure		404	{object}	errResponse
//	@Router			/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, noteFrom(r.Context()))
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note
//	@Tags			notes
//	@Param			id	path	int	true	"Note id"
//	@Success		204	"Note deleted"
//	@Failure		404	{object}	errResponse
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	n := noteFrom(r.Context())
	if err := h.svc.DeleteNote(r.Context(), n.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateNote handles PATCH /api/notes/{id}.
//
//	@Summary		Update any subset of title, content and folder_id
//	@Tags			notes
//	@Accept			json
//	@Param			id		path	int			true	"Note id"
//	@Param			body	body	NoteRequest	true	"Fields to change"
//	@Success		204		"Note updated"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/notes/{id} [patch]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	n := noteFrom(r.Context())
	var req NoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdateNote(r.Context(), n.ID, req); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
