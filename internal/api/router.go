package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/noteful/internal/noteservice"
)

// NewRouter creates a chi router with all API routes, meant to be mounted at /api.
// production hides internal error messages from 500 responses.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *noteservice.Service, production bool, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, production)

	r := chi.NewRouter()
	r.Use(Recoverer(production))
	r.Use(CORS)

	// Folders CRUD.
	r.Route("/folders", func(r chi.Router) {
		r.Get("/", h.ListFolders)
		r.Post("/", h.CreateFolder)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.folderCtx)
			r.Get("/", h.GetFolder)
			r.Delete("/", h.DeleteFolder)
			r.Patch("/", h.UpdateFolder)
		})
	})

	// Notes CRUD.
	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.ListNotes)
		r.Post("/", h.CreateNote)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.noteCtx)
			r.Get("/", h.GetNote)
			r.Delete("/", h.DeleteNote)
			r.Patch("/", h.UpdateNote)
		})
	})

	// Change stream.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
