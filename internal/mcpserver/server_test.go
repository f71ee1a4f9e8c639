package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/testutil"
)

func testServer(t *testing.T) (*Server, *noteservice.Service) {
	t.Helper()
	svc := testutil.TestService(t)
	return New(svc, "test"), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"list_folders":  srv.listFolders,
		"get_folder":    srv.getFolder,
		"create_folder": srv.createFolder,
		"rename_folder": srv.renameFolder,
		"delete_folder": srv.deleteFolder,
		"list_notes":    srv.listNotes,
		"get_note":      srv.getNote,
		"create_note":   srv.createNote,
		"update_note":   srv.updateNote,
		"delete_note":   srv.deleteNote,
	}
	h, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := h(ctx, req)
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndListFolders(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_folder", map[string]interface{}{"name": "Work"})
	if r.IsError {
		t.Fatalf("create_folder failed: %s", resultText(r))
	}
	if resultText(r) != "created folder 1" {
		t.Errorf("unexpected text: %q", resultText(r))
	}

	r = callTool(t, srv, "list_folders", nil)
	var folders []models.Folder
	if err := json.Unmarshal([]byte(resultText(r)), &folders); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Work" {
		t.Errorf("folders = %+v", folders)
	}
}

func TestCreateFolder_InvalidName(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_folder", map[string]interface{}{"name": "bad<>"})
	if !r.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(r), noteservice.MsgInvalidFolderName) {
		t.Errorf("unexpected text: %q", resultText(r))
	}
}

func TestRenameAndDeleteFolder(t *testing.T) {
	srv, svc := testServer(t)
	ctx := context.Background()
	id, err := svc.CreateFolder(ctx, "Old")
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "rename_folder", map[string]interface{}{"id": float64(id), "name": "New"})
	if r.IsError {
		t.Fatalf("rename_folder failed: %s", resultText(r))
	}
	f, err := svc.GetFolder(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "New" {
		t.Errorf("name = %q", f.Name)
	}

	r = callTool(t, srv, "delete_folder", map[string]interface{}{"id": float64(id)})
	if r.IsError {
		t.Fatalf("delete_folder failed: %s", resultText(r))
	}
	r = callTool(t, srv, "get_folder", map[string]interface{}{"id": float64(id)})
	if !r.IsError || !strings.Contains(resultText(r), noteservice.MsgFolderNotFound) {
		t.Errorf("expected not found, got %q", resultText(r))
	}
}

func TestGetFolder_BadID(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_folder", map[string]interface{}{"id": "abc"})
	if !r.IsError {
		t.Fatal("expected error result")
	}
}

func TestNoteLifecycle(t *testing.T) {
	srv, svc := testServer(t)
	ctx := context.Background()
	folderID, err := svc.CreateFolder(ctx, "Inbox")
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"title":     "Groceries",
		"content":   "milk",
		"folder_id": float64(folderID),
	})
	if r.IsError {
		t.Fatalf("create_note failed: %s", resultText(r))
	}

	r = callTool(t, srv, "get_note", map[string]interface{}{"id": float64(1)})
	var n models.Note
	if err := json.Unmarshal([]byte(resultText(r)), &n); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n.Title != "Groceries" || n.FolderID != folderID {
		t.Errorf("note = %+v", n)
	}

	r = callTool(t, srv, "update_note", map[string]interface{}{"id": float64(1), "content": "eggs"})
	if r.IsError {
		t.Fatalf("update_note failed: %s", resultText(r))
	}
	got, err := svc.GetNote(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "eggs" || got.Title != "Groceries" {
		t.Errorf("note after update = %+v", got)
	}

	r = callTool(t, srv, "list_notes", nil)
	var notes []models.Note
	if err := json.Unmarshal([]byte(resultText(r)), &notes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("expected 1 note, got %d", len(notes))
	}

	r = callTool(t, srv, "delete_note", map[string]interface{}{"id": float64(1)})
	if r.IsError {
		t.Fatalf("delete_note failed: %s", resultText(r))
	}
	r = callTool(t, srv, "delete_note", map[string]interface{}{"id": float64(1)})
	if !r.IsError || !strings.Contains(resultText(r), noteservice.MsgNoteNotFound) {
		t.Errorf("expected not found, got %q", resultText(r))
	}
}

func TestCreateNote_UnknownFolder(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"title":     "Orphan",
		"content":   "x",
		"folder_id": float64(42),
	})
	if !r.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(r), noteservice.MsgInvalidNoteFolderID) {
		t.Errorf("unexpected text: %q", resultText(r))
	}
}

func TestUpdateNote_NoFields(t *testing.T) {
	srv, svc := testServer(t)
	ctx := context.Background()
	folderID, err := svc.CreateFolder(ctx, "Inbox")
	if err != nil {
		t.Fatal(err)
	}
	id, err := svc.CreateNote(ctx, noteservice.NoteInput{Title: "T", Content: "c", FolderID: folderID})
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "update_note", map[string]interface{}{"id": float64(id)})
	if !r.IsError || !strings.Contains(resultText(r), noteservice.MsgNoValidFields) {
		t.Errorf("expected no valid fields, got %q", resultText(r))
	}
}

func TestReadContract(t *testing.T) {
	srv, _ := testServer(t)

	contents, err := srv.readContract(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || !strings.Contains(tc.Text, "folder_id") {
		t.Errorf("unexpected contract: %+v", contents[0])
	}
}
