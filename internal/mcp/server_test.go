package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/phrazzld/todolist-api/internal/api"
	"github.com/phrazzld/todolist-api/internal/platform/sqlstore"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	db := testdb.OpenSQLite(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := sqlstore.NewUserStore(db, log)
	categories := sqlstore.NewCategoryStore(db, log)
	tasks := sqlstore.NewTaskStore(db, log)

	return NewServer(Services{
		Tasks:      service.NewTaskService(tasks, users, categories, nil, 1, log),
		Categories: service.NewCategoryService(categories, log),
		Users:      service.NewUserService(users, log),
	}, log)
}

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func decode(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, result.IsError, "tool error: %s", text(t, result))
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), v))
}

func TestNewServer_RegistersAllTools(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{
		"create_task", "update_task", "get_task", "list_tasks", "tasks_by_assignee",
		"create_category", "list_categories", "delete_category",
		"create_user", "list_users", "get_user", "update_user", "delete_user",
	} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestTaskTools(t *testing.T) {
	s := newTestServer(t)

	var ann api.UserResponse
	decode(t, call(t, s, "create_user", map[string]any{"name": "Ann", "email": "ann@example.com"}), &ann)
	require.Equal(t, int64(1), ann.ID)

	var work api.CategoryResponse
	decode(t, call(t, s, "create_category", map[string]any{"name": "Work"}), &work)

	var task api.TaskResponse
	decode(t, call(t, s, "create_task", map[string]any{
		"title":       "Write spec",
		"category_id": float64(work.ID),
		"assignee_id": float64(ann.ID),
		"due_date":    "2024-07-15",
	}), &task)
	assert.Equal(t, 0, task.Version)
	assert.Equal(t, "Work", *task.CategoryName)
	assert.Equal(t, "Ann", *task.AssigneeName)

	decode(t, call(t, s, "update_task", map[string]any{
		"id":      float64(task.ID),
		"version": float64(0),
		"status":  "COMPLETED",
	}), &task)
	assert.Equal(t, 1, task.Version)
	assert.NotNil(t, task.CompletedAt)

	stale := call(t, s, "update_task", map[string]any{
		"id":      float64(task.ID),
		"version": float64(0),
		"title":   "Stale",
	})
	require.True(t, stale.IsError)
	assert.True(t, strings.HasPrefix(text(t, stale), "409 Conflict: Update conflict:"), text(t, stale))

	var got api.TaskResponse
	decode(t, call(t, s, "get_task", map[string]any{"id": float64(task.ID)}), &got)
	assert.Equal(t, "Write spec", got.Title)

	var list []api.TaskResponse
	decode(t, call(t, s, "list_tasks", map[string]any{"status": "COMPLETED"}), &list)
	assert.Len(t, list, 1)

	decode(t, call(t, s, "list_tasks", map[string]any{"status": "PENDING"}), &list)
	assert.Empty(t, list)

	decode(t, call(t, s, "tasks_by_assignee", map[string]any{"user_id": float64(ann.ID)}), &list)
	assert.Len(t, list, 1)
}

func TestToolErrors(t *testing.T) {
	s := newTestServer(t)
	call(t, s, "create_user", map[string]any{"name": "Ann", "email": "ann@example.com"})

	tests := []struct {
		name       string
		tool       string
		args       map[string]any
		wantPrefix string
	}{
		{"blank title", "create_task", map[string]any{"title": " "}, "400 Bad Request:"},
		{"fractional id", "get_task", map[string]any{"id": 1.5}, "400 Bad Request:"},
		{"missing id", "get_task", map[string]any{}, "400 Bad Request:"},
		{"unknown task", "get_task", map[string]any{"id": float64(9)}, "404 Not Found: task not found with id: 9"},
		{"missing version", "update_task", map[string]any{"id": float64(9)}, "400 Bad Request:"},
		{"bad status", "list_tasks", map[string]any{"status": "DONE"}, "400 Bad Request:"},
		{"bad date", "create_task", map[string]any{"title": "t", "due_date": "tomorrow"}, "400 Bad Request:"},
		{"unknown category", "create_task", map[string]any{"title": "t", "category_id": float64(5)}, "404 Not Found:"},
		{"duplicate email", "create_user", map[string]any{"name": "Again", "email": "ANN@example.com"}, "400 Bad Request:"},
		{"unknown user", "delete_user", map[string]any{"id": float64(8)}, "404 Not Found:"},
		{"wrong type", "update_user", map[string]any{"id": float64(1), "name": 5.0}, "400 Bad Request:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := call(t, s, tc.tool, tc.args)
			require.True(t, result.IsError, text(t, result))
			assert.True(t, strings.HasPrefix(text(t, result), tc.wantPrefix), text(t, result))
		})
	}
}

func TestCategoryAndUserTools(t *testing.T) {
	s := newTestServer(t)

	var first, second api.CategoryResponse
	decode(t, call(t, s, "create_category", map[string]any{"name": "Home"}), &first)
	decode(t, call(t, s, "create_category", map[string]any{"name": " HOME"}), &second)
	assert.Equal(t, first.ID, second.ID)

	var categories []api.CategoryResponse
	decode(t, call(t, s, "list_categories", nil), &categories)
	assert.Len(t, categories, 1)

	deleted := call(t, s, "delete_category", map[string]any{"id": float64(first.ID)})
	assert.False(t, deleted.IsError, text(t, deleted))

	var bob api.UserResponse
	decode(t, call(t, s, "create_user", map[string]any{"name": "Bob", "email": "bob@example.com"}), &bob)
	decode(t, call(t, s, "update_user", map[string]any{"id": float64(bob.ID), "name": "Robert"}), &bob)
	assert.Equal(t, "Robert", bob.Name)

	var users []api.UserResponse
	decode(t, call(t, s, "list_users", nil), &users)
	assert.Len(t, users, 1)

	var got api.UserResponse
	decode(t, call(t, s, "get_user", map[string]any{"id": "1"}), &got)
	assert.Equal(t, "bob@example.com", got.Email)

	result := call(t, s, "delete_user", map[string]any{"id": float64(bob.ID)})
	assert.False(t, result.IsError, text(t, result))
}

func TestOptionalInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    *int64
		wantErr bool
	}{
		{"absent", nil, nil, false},
		{"float", float64(3), ptr(int64(3)), false},
		{"int", 4, ptr(int64(4)), false},
		{"json number", json.Number("5"), ptr(int64(5)), false},
		{"string", "6", ptr(int64(6)), false},
		{"fraction", 1.25, nil, true},
		{"bool", true, nil, true},
		{"garbage string", "six", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := map[string]any{}
			if tc.value != nil {
				args["n"] = tc.value
			}
			got, err := optionalInt(args, "n")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func ptr[T any](v T) *T { return &v }
