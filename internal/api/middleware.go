// Package api implements the noteful REST API using chi.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/noteservice"
)

type ctxKey int

const (
	folderKey ctxKey = iota
	noteKey
)

// Recoverer turns a handler panic into a JSON 500. In production the body
// carries a generic message; otherwise it carries the panic value.
func Recoverer(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				slog.Error("handler panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("error", err.Error()),
					slog.String("stack", string(debug.Stack())))
				writeJSON(w, http.StatusInternalServerError, errorBody(serverMessage(production, err)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows cross-origin access to the API from any origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Location")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets the conservative response headers applied to every route.
func SecurityHeaders() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.SetHeader("X-Content-Type-Options", "nosniff"),
		middleware.SetHeader("X-Frame-Options", "SAMEORIGIN"),
		middleware.SetHeader("Referrer-Policy", "no-referrer"),
		middleware.SetHeader("X-DNS-Prefetch-Control", "off"),
	}
}

// parseID reads the {id} URL parameter. Anything that is not a base-10
// integer is reported as not ok and answered like a missing row.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// folderCtx loads the folder named by {id} into the request context, or
// answers 404.
func (h *Handler) folderCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody(noteservice.MsgFolderNotFound))
			return
		}
		f, err := h.svc.GetFolder(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), folderKey, f)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// noteCtx loads the note named by {id} into the request context, or answers 404.
func (h *Handler) noteCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody(noteservice.MsgNoteNotFound))
			return
		}
		n, err := h.svc.GetNote(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), noteKey, n)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func folderFrom(ctx context.Context) *models.Folder {
	f, _ := ctx.Value(folderKey).(*models.Folder)
	return f
}

func noteFrom(ctx context.Context) *models.Note {
	n, _ := ctx.Value(noteKey).(*models.Note)
	return n
}
