// Package testutil provides shared test helpers for setting up databases and services.
package testutil

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "noteful-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(context.Background(), dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestService creates a note service over a fresh temporary database.
func TestService(t *testing.T, opts ...noteservice.Option) *noteservice.Service {
	t.Helper()
	db := TestDB(t)
	return noteservice.NewService(store.NewFolderRepo(db), store.NewNoteRepo(db), opts...)
}

// Clock is a manual time source. Each call to Now advances it by Step.
type Clock struct {
	mu   sync.Mutex
	t    time.Time
	Step time.Duration
}

// NewClock returns a clock starting at start that advances by step per reading.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{t: start, Step: step}
}

// Now returns the current reading and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.Step)
	return now
}

// Recorder collects published change events.
type Recorder struct {
	mu     sync.Mutex
	Events []string
}

// PublishChange records "resource.action:id".
func (r *Recorder) PublishChange(resource, action string, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, resource+"."+action+":"+strconv.FormatInt(id, 10))
}

// Snapshot returns a copy of the recorded events.
func (r *Recorder) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Events...)
}
