package api

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/noteservice"
)

const msgServerError = "server error"

// Handler holds API route handlers.
type Handler struct {
	svc        *noteservice.Service
	production bool
}

// NewHandler creates a new Handler. In production, 500 responses hide the
// underlying error message.
func NewHandler(svc *noteservice.Service, production bool) *Handler {
	return &Handler{svc: svc, production: production}
}

func serverMessage(production bool, err error) string {
	if production {
		return msgServerError
	}
	return err.Error()
}

// fail writes err as a JSON error response. Validation, referential and
// not-found errors carry their own message; anything else is logged and
// answered with 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status != http.StatusInternalServerError {
		writeJSON(w, status, errorBody(err.Error()))
		return
	}
	slog.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()))
	writeJSON(w, status, errorBody(serverMessage(h.production, err)))
}

// created answers 201 {id} with Location set to <request path>/<id>.
func created(w http.ResponseWriter, r *http.Request, id int64) {
	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(id, 10)))
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}
