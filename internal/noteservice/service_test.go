package noteservice_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/store"
	"github.com/starford/noteful/internal/testutil"
)

var epoch = time.Date(2020, 2, 17, 7, 39, 5, 0, time.UTC)

func newService(t *testing.T) (*noteservice.Service, *testutil.Recorder) {
	t.Helper()
	rec := &testutil.Recorder{}
	clock := testutil.NewClock(epoch, time.Minute)
	svc := testutil.TestService(t, noteservice.WithPublisher(rec), noteservice.WithClock(clock.Now))
	return svc, rec
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()
	svc, rec := newService(t)

	id, err := svc.CreateFolder(ctx, "Recipes")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	f, err := svc.GetFolder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.Folder{ID: 1, Name: "Recipes"}, *f)
	assert.Equal(t, []string{"folder.created:1"}, rec.Snapshot())
}

func TestCreateFolder_InvalidName(t *testing.T) {
	ctx := context.Background()
	svc, rec := newService(t)

	for _, name := range []any{"<script>", "   ", "", nil, json.Number("5")} {
		_, err := svc.CreateFolder(ctx, name)
		require.Error(t, err, "name %#v", name)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, noteservice.MsgInvalidFolderName, err.Error())
	}
	folders, err := svc.ListFolders(ctx)
	require.NoError(t, err)
	assert.Empty(t, folders)
	assert.Empty(t, rec.Snapshot())
}

func TestRenameAndDeleteFolder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	id, _ := svc.CreateFolder(ctx, "Old")

	require.NoError(t, svc.RenameFolder(ctx, id, "New name!"))
	f, _ := svc.GetFolder(ctx, id)
	assert.Equal(t, "New name!", f.Name)

	err := svc.RenameFolder(ctx, id, "bad/name")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	f, _ = svc.GetFolder(ctx, id)
	assert.Equal(t, "New name!", f.Name)

	require.NoError(t, svc.DeleteFolder(ctx, id))
	_, err = svc.GetFolder(ctx, id)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, noteservice.MsgFolderNotFound, err.Error())

	err = svc.DeleteFolder(ctx, id)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	err = svc.RenameFolder(ctx, id, "Ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFolderExists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	id, _ := svc.CreateFolder(ctx, "Inbox")

	assert.True(t, svc.FolderExists(ctx, id))
	assert.True(t, svc.FolderExists(ctx, json.Number("1")))
	assert.True(t, svc.FolderExists(ctx, float64(1)))
	assert.False(t, svc.FolderExists(ctx, "1"), "numeric string must not match")
	assert.False(t, svc.FolderExists(ctx, json.Number("999")))
	assert.False(t, svc.FolderExists(ctx, nil))
	assert.False(t, svc.FolderExists(ctx, json.Number("1.5")))
}

// brokenFolders fails every lookup with a storage error.
type brokenFolders struct {
	store.FolderStore
}

func (brokenFolders) Get(context.Context, int64) (*models.Folder, error) {
	return nil, errors.New("connection reset by peer")
}

func TestFolderExists_FailsClosedOnStorageError(t *testing.T) {
	ctx := context.Background()
	db := testutil.TestDB(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	svc := noteservice.NewService(brokenFolders{store.NewFolderRepo(db)}, store.NewNoteRepo(db), noteservice.WithLogger(logger))

	assert.False(t, svc.FolderExists(ctx, json.Number("1")))
	assert.Contains(t, logs.String(), "connection reset by peer")
	assert.Contains(t, logs.String(), `"level":"WARN"`)

	_, err := svc.CreateNote(ctx, noteservice.NoteInput{Title: "t", Content: "c", FolderID: json.Number("1")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindReferential, apperr.KindOf(err))
	assert.Equal(t, noteservice.MsgInvalidNoteFolderID, err.Error())
}

func TestCreateNote_ValidationOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	cases := []struct {
		name string
		in   noteservice.NoteInput
		want string
	}{
		{"all bad", noteservice.NoteInput{Title: "<x>", Content: " ", FolderID: json.Number("999")}, noteservice.MsgInvalidNoteTitle},
		{"content and folder bad", noteservice.NoteInput{Title: "X", Content: " ", FolderID: json.Number("999")}, noteservice.MsgInvalidNoteContent},
		{"folder missing", noteservice.NoteInput{Title: "X", Content: "Y", FolderID: json.Number("999")}, noteservice.MsgInvalidNoteFolderID},
		{"folder absent", noteservice.NoteInput{Title: "X", Content: "Y"}, noteservice.MsgInvalidNoteFolderID},
		{"title absent", noteservice.NoteInput{Content: "Y", FolderID: json.Number("1")}, noteservice.MsgInvalidNoteTitle},
	}
	for _, tc := range cases {
		_, err := svc.CreateNote(ctx, tc.in)
		require.Error(t, err, tc.name)
		assert.Equal(t, tc.want, err.Error(), tc.name)
		assert.Equal(t, 400, apperr.HTTPStatus(err), tc.name)
	}
	notes, _ := svc.ListNotes(ctx)
	assert.Empty(t, notes)
}

func TestCreateAndGetNote(t *testing.T) {
	ctx := context.Background()
	svc, rec := newService(t)
	fid, _ := svc.CreateFolder(ctx, "Inbox")

	id, err := svc.CreateNote(ctx, noteservice.NoteInput{Title: "Hello", Content: "<p>any text</p>", FolderID: json.Number("1")})
	require.NoError(t, err)

	n, err := svc.GetNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hello", n.Title)
	assert.Equal(t, "<p>any text</p>", n.Content)
	assert.Equal(t, fid, n.FolderID)
	assert.True(t, n.DateCreated.Equal(epoch), "date_created = %v", n.DateCreated)
	assert.True(t, n.DateModified.Equal(n.DateCreated))
	assert.Equal(t, []string{"folder.created:1", "note.created:1"}, rec.Snapshot())
}

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	svc.CreateFolder(ctx, "One")
	f2, _ := svc.CreateFolder(ctx, "Two")
	id, _ := svc.CreateNote(ctx, noteservice.NoteInput{Title: "Old", Content: "body", FolderID: json.Number("1")})
	before, _ := svc.GetNote(ctx, id)

	require.NoError(t, svc.UpdateNote(ctx, id, noteservice.NoteInput{Title: "New"}))
	after, _ := svc.GetNote(ctx, id)
	assert.Equal(t, "New", after.Title)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.FolderID, after.FolderID)
	assert.True(t, after.DateModified.After(before.DateModified))
	assert.True(t, after.DateCreated.Equal(before.DateCreated))

	require.NoError(t, svc.UpdateNote(ctx, id, noteservice.NoteInput{FolderID: json.Number("2")}))
	after, _ = svc.GetNote(ctx, id)
	assert.Equal(t, f2, after.FolderID)
}

func TestUpdateNote_NoPartialApply(t *testing.T) {
	ctx := context.Background()
	svc, rec := newService(t)
	svc.CreateFolder(ctx, "One")
	id, _ := svc.CreateNote(ctx, noteservice.NoteInput{Title: "Keep", Content: "keep", FolderID: json.Number("1")})
	before, _ := svc.GetNote(ctx, id)

	inputs := []noteservice.NoteInput{
		{Title: "Valid", Content: "valid", FolderID: json.Number("42")},
		{Title: "Valid", Content: "   "},
		{Title: "in<valid>", Content: "valid"},
		{Title: 7},
	}
	for _, in := range inputs {
		err := svc.UpdateNote(ctx, id, in)
		require.Error(t, err)
		assert.Equal(t, 400, apperr.HTTPStatus(err))
	}

	err := svc.UpdateNote(ctx, id, noteservice.NoteInput{})
	require.Error(t, err)
	assert.Equal(t, noteservice.MsgNoValidFields, err.Error())

	after, _ := svc.GetNote(ctx, id)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"folder.created:1", "note.created:1"}, rec.Snapshot())
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	svc.CreateFolder(ctx, "One")
	id, _ := svc.CreateNote(ctx, noteservice.NoteInput{Title: "T", Content: "C", FolderID: json.Number("1")})

	require.NoError(t, svc.DeleteNote(ctx, id))
	_, err := svc.GetNote(ctx, id)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, noteservice.MsgNoteNotFound, err.Error())

	err = svc.UpdateNote(ctx, id, noteservice.NoteInput{Title: "Ghost"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
