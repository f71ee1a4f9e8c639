package api

import (
	"net/http"
)

// ListFolders handles GET /api/folders.
//
//	@Summary		List all folders
//	@Tags			folders
//	@Produce		json
//	@Success		200	{array}	Folder
//	@Router			/folders [get]
func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.svc.ListFolders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// CreateFolder handles POST /api/folders.
//
//	@Summary		Create a folder
//	@Tags			folders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FolderRequest	true	"Folder to create"
//	@Success		201		{object}	CreatedResponse
//	@Failure		400		{object}	errResponse
//	@Router			/folders [post]
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	id, err := h.svc.CreateFolder(r.Context(), req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	created(w, r, id)
}

// GetFolder handles GET /api/folders/{id}.
//
//	@Summary		Get a folder by id
//	@Tags			folders
//	@Produce		json
//	@Param			id	path		int	true	"Folder id"
//	@Success		200	{object}	Folder
//	@Failure		404	{object}	errResponse
//	@Router			/folders/{id} [get]
func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, folderFrom(r.Context()))
}

// DeleteFolder handles DELETE /api/folders/{id}.
//
//	@Summary		Delete a folder
//	@Tags			folders
//	@Param			id	path	int	true	"Folder id"
//	@Success		204	"Folder deleted"
//	@Failure		404	{object}	errResponse
//	@Router			/folders/{id} [delete]
func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	f := folderFrom(r.Context())
	if err := h.svc.DeleteFolder(r.Context(), f.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateFolder handles PATCH /api/folders/{id}.
//
//	@Summary		Rename a folder
//	@Tags			folders
//	@Accept			json
//	@Param			id		path	int				true	"Folder id"
//	@Param			body	body	FolderRequest	true	"New name"
//	@Success		204		"Folder updated"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/folders/{id} [patch]
func (h *Handler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	f := folderFrom(r.Context())
	var req FolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.RenameFolder(r.Context(), f.ID, req.Name); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
