// Package noteservice coordinates validation, referential checks and the
// folder/note repositories. Both the HTTP API and the MCP server go through it.
package noteservice

import (
	"log/slog"
	"time"

	"github.com/starford/noteful/internal/store"
)

// Change actions published after a successful write.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Resource names used in change events.
const (
	ResourceFolder = "folder"
	ResourceNote   = "note"
)

// Publisher receives a notification after every successful write.
type Publisher interface {
	PublishChange(resource, action string, id int64)
}

// Service implements the folder and note operations.
type Service struct {
	folders store.FolderStore
	notes   store.NoteStore
	logger  *slog.Logger
	events  Publisher
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithPublisher sets the change event sink.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

// WithClock overrides the time source used for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new note service over the given repositories.
func NewService(folders store.FolderStore, notes store.NoteStore, opts ...Option) *Service {
	s := &Service{
		folders: folders,
		notes:   notes,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) publish(resource, action string, id int64) {
	if s.events != nil {
		s.events.PublishChange(resource, action, id)
	}
}
