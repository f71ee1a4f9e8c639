// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes folder and note operations over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/validate"
)

const contractURI = "noteful://data-contract"

// Server wraps the MCP server with noteful tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Noteful",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_folders",
		mcp.WithDescription("List every folder with its id and name."),
	), s.listFolders)

	s.mcp.AddTool(mcp.NewTool("get_folder",
		mcp.WithDescription("Get a single folder by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Folder id")),
	), s.getFolder)

	s.mcp.AddTool(mcp.NewTool("create_folder",
		mcp.WithDescription("Create a folder. Read the data contract for the allowed name characters."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
	), s.createFolder)

	s.mcp.AddTool(mcp.NewTool("rename_folder",
		mcp.WithDescription("Rename an existing folder."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Folder id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("New folder name")),
	), s.renameFolder)

	s.mcp.AddTool(mcp.NewTool("delete_folder",
		mcp.WithDescription("Delete a folder. Its notes are not deleted."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Folder id")),
	), s.deleteFolder)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List every note."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_note",
		mcp.WithDescription("Get a single note by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	), s.getNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note inside an existing folder."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note body")),
		mcp.WithNumber("folder_id", mcp.Required(), mcp.Description("Id of an existing folder")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Change any subset of a note's title, content and folder_id. "+
			"Nothing is written if any supplied field is invalid."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New content")),
		mcp.WithNumber("folder_id", mcp.Description("Id of the destination folder")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteNote)

	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Data Contract",
			mcp.WithResourceDescription("Validation rules for folders and notes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContract,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func requireID(req mcp.CallToolRequest, key string) (int64, error) {
	id, ok := validate.FolderID(req.GetArguments()[key])
	if !ok {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return id, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listFolders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folders, err := s.svc.ListFolders(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(folders)
}

func (s *Server) getFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := s.svc.GetFolder(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(f)
}

func (s *Server) createFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.svc.CreateFolder(ctx, req.GetArguments()["name"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created folder %d", id)), nil
}

func (s *Server) renameFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.RenameFolder(ctx, id, req.GetArguments()["name"]); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("renamed folder %d", id)), nil
}

func (s *Server) deleteFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteFolder(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted folder %d", id)), nil
}

func (s *Server) listNotes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.svc.ListNotes(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(notes)
}

func (s *Server) getNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.svc.GetNote(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n)
}

func noteInput(req mcp.CallToolRequest) noteservice.NoteInput {
	args := req.GetArguments()
	return noteservice.NoteInput{
		Title:    args["title"],
		Content:  args["content"],
		FolderID: args["folder_id"],
	}
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.svc.CreateNote(ctx, noteInput(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created note %d", id)), nil
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.GetNote(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.UpdateNote(ctx, id, noteInput(req)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated note %d", id)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteNote(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted note %d", id)), nil
}

func (s *Server) readContract(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     DataContract,
		},
	}, nil
}
