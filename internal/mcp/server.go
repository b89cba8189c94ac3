package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/phrazzld/todolist-api/internal/api"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/redact"
	"github.com/phrazzld/todolist-api/internal/service"
)

// ServerName and ServerVersion identify the tool server to clients.
const (
	ServerName    = "todolist"
	ServerVersion = "0.1.0"
)

// Services are the operations exposed as tools.
type Services struct {
	Tasks      service.TaskService
	Categories service.CategoryService
	Users      service.UserService
}

type handlers struct {
	Services
	logger *slog.Logger
}

// NewServer creates a new MCP server exposing svc.
func NewServer(svc Services, log *slog.Logger) *server.MCPServer {
	if log == nil {
		log = slog.Default()
	}
	h := &handlers{Services: svc, logger: log.With(slog.String("component", "mcp"))}

	s := server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false))

	// Tasks
	s.AddTool(mcp.NewTool("create_task",
		mcp.WithDescription("Create a PENDING task at version 0."),
		mcp.WithString("title", mcp.Description("Task title"), mcp.Required()),
		mcp.WithString("description", mcp.Description("Task description")),
		mcp.WithNumber("category_id", mcp.Description("Category id")),
		mcp.WithNumber("assignee_id", mcp.Description("Assigned user id")),
		mcp.WithString("due_date", mcp.Description("Due date as YYYY-MM-DD")),
		mcp.WithNumber("user_id", mcp.Description("Acting user; defaults to the configured creator")),
	), h.createTask)

	s.AddTool(mcp.NewTool("update_task",
		mcp.WithDescription("Update a task. version must equal the task's current version; omitted fields are left unchanged."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
		mcp.WithNumber("version", mcp.Description("Version the change is based on"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithNumber("category_id", mcp.Description("New category id")),
		mcp.WithNumber("assignee_id", mcp.Description("New assignee id")),
		mcp.WithString("status", mcp.Description("New status (PENDING|IN_PROGRESS|COMPLETED)")),
		mcp.WithString("due_date", mcp.Description("New due date as YYYY-MM-DD")),
	), h.updateTask)

	s.AddTool(mcp.NewTool("get_task",
		mcp.WithDescription("Get a single task by id."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
	), h.getTask)

	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks, optionally filtered by status."),
		mcp.WithString("status", mcp.Description("Filter by status (PENDING|IN_PROGRESS|COMPLETED)")),
	), h.listTasks)

	s.AddTool(mcp.NewTool("tasks_by_assignee",
		mcp.WithDescription("List the tasks assigned to a user."),
		mcp.WithNumber("user_id", mcp.Description("Assigned user id"), mcp.Required()),
	), h.tasksByAssignee)

	// Categories
	s.AddTool(mcp.NewTool("create_category",
		mcp.WithDescription("Create a category, or return the existing one with the same name ignoring case."),
		mcp.WithString("name", mcp.Description("Category name"), mcp.Required()),
	), h.createCategory)

	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List all categories."),
	), h.listCategories)

	s.AddTool(mcp.NewTool("delete_category",
		mcp.WithDescription("Delete a category. Its tasks keep existing without a category."),
		mcp.WithNumber("id", mcp.Description("Category id"), mcp.Required()),
	), h.deleteCategory)

	// Users
	s.AddTool(mcp.NewTool("create_user",
		mcp.WithDescription("Create a user. Emails are unique ignoring case."),
		mcp.WithString("name", mcp.Description("User name"), mcp.Required()),
		mcp.WithString("email", mcp.Description("Email address"), mcp.Required()),
	), h.createUser)

	s.AddTool(mcp.NewTool("list_users",
		mcp.WithDescription("List all users."),
	), h.listUsers)

	s.AddTool(mcp.NewTool("get_user",
		mcp.WithDescription("Get a single user by id."),
		mcp.WithNumber("id", mcp.Description("User id"), mcp.Required()),
	), h.getUser)

	s.AddTool(mcp.NewTool("update_user",
		mcp.WithDescription("Update a user's name or email."),
		mcp.WithNumber("id", mcp.Description("User id"), mcp.Required()),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("email", mcp.Description("New email")),
	), h.updateUser)

	s.AddTool(mcp.NewTool("delete_user",
		mcp.WithDescription("Delete a user. Users who created tasks cannot be deleted."),
		mcp.WithNumber("id", mcp.Description("User id"), mcp.Required()),
	), h.deleteUser)

	return s
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// toolError renders err the way the REST API would, prefixed with the
// status code. Unexpected errors are logged and hidden from the client.
func (h *handlers) toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	status := api.MapErrorToStatusCode(err)
	message := api.GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError {
		logger.FromContextOrDefault(ctx, h.logger).Error("tool failed",
			slog.String("tool", tool),
			slog.String("error", redact.Error(err)))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%d %s: %s", status, http.StatusText(status), message))
}

func (h *handlers) jsonResult(ctx context.Context, tool string, v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return h.toolError(ctx, tool, err)
	}
	return mcp.NewToolResultText(string(data))
}

func (h *handlers) createTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	input := service.CreateTaskInput{Title: mcp.ParseString(request, "title", "")}
	var err error
	if input.Description, err = optionalString(args, "description"); err != nil {
		return h.toolError(ctx, "create_task", err), nil
	}
	if input.CategoryID, err = optionalInt(args, "category_id"); err != nil {
		return h.toolError(ctx, "create_task", err), nil
	}
	if input.AssigneeID, err = optionalInt(args, "assignee_id"); err != nil {
		return h.toolError(ctx, "create_task", err), nil
	}
	if input.DueDate, err = optionalDate(args, "due_date"); err != nil {
		return h.toolError(ctx, "create_task", err), nil
	}
	if input.CreatorID, err = optionalInt(args, "user_id"); err != nil {
		return h.toolError(ctx, "create_task", err), nil
	}

	task, err := h.Tasks.CreateTask(ctx, input)
	if err != nil {
		return h.toolError(ctx, "create_task", err), nil
	}
	return h.jsonResult(ctx, "create_task", api.TaskToResponse(task)), nil
}

func (h *handlers) updateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, err := requiredID(args, "id")
	if err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}

	var patch service.TaskPatch
	version, err := optionalInt(args, "version")
	if err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}
	if version != nil {
		v := int(*version)
		patch.Version = &v
	}
	if patch.Title, err = optionalString(args, "title"); err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}
	if patch.Description, err = optionalString(args, "description"); err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}
	if patch.CategoryID, err = optionalInt(args, "category_id"); err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}
	if patch.AssigneeID, err = optionalInt(args, "assignee_id"); err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}
	if patch.Status, err = optionalStatus(args, "status"); err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}
	if patch.DueDate, err = optionalDate(args, "due_date"); err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}

	task, err := h.Tasks.UpdateTask(ctx, id, patch)
	if err != nil {
		return h.toolError(ctx, "update_task", err), nil
	}
	return h.jsonResult(ctx, "update_task", api.TaskToResponse(task)), nil
}

func (h *handlers) getTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(request.GetArguments(), "id")
	if err != nil {
		return h.toolError(ctx, "get_task", err), nil
	}
	task, err := h.Tasks.GetTask(ctx, id)
	if err != nil {
		return h.toolError(ctx, "get_task", err), nil
	}
	return h.jsonResult(ctx, "get_task", api.TaskToResponse(task)), nil
}

func (h *handlers) listTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := optionalStatus(request.GetArguments(), "status")
	if err != nil {
		return h.toolError(ctx, "list_tasks", err), nil
	}
	tasks, err := h.Tasks.ListTasks(ctx, status)
	if err != nil {
		return h.toolError(ctx, "list_tasks", err), nil
	}
	return h.jsonResult(ctx, "list_tasks", api.TasksToResponse(tasks)), nil
}

func (h *handlers) tasksByAssignee(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := requiredID(request.GetArguments(), "user_id")
	if err != nil {
		return h.toolError(ctx, "tasks_by_assignee", err), nil
	}
	tasks, err := h.Tasks.ListTasksByAssignee(ctx, userID)
	if err != nil {
		return h.toolError(ctx, "tasks_by_assignee", err), nil
	}
	return h.jsonResult(ctx, "tasks_by_assignee", api.TasksToResponse(tasks)), nil
}

func (h *handlers) createCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := h.Categories.CreateCategory(ctx, mcp.ParseString(request, "name", ""))
	if err != nil {
		return h.toolError(ctx, "create_category", err), nil
	}
	return h.jsonResult(ctx, "create_category", api.CategoryToResponse(category)), nil
}

func (h *handlers) listCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := h.Categories.ListCategories(ctx)
	if err != nil {
		return h.toolError(ctx, "list_categories", err), nil
	}
	out := make([]api.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, api.CategoryToResponse(c))
	}
	return h.jsonResult(ctx, "list_categories", out), nil
}

func (h *handlers) deleteCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(request.GetArguments(), "id")
	if err != nil {
		return h.toolError(ctx, "delete_category", err), nil
	}
	if err := h.Categories.DeleteCategory(ctx, id); err != nil {
		return h.toolError(ctx, "delete_category", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Category %d deleted", id)), nil
}

func (h *handlers) createUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.Users.CreateUser(ctx,
		mcp.ParseString(request, "name", ""),
		mcp.ParseString(request, "email", ""))
	if err != nil {
		return h.toolError(ctx, "create_user", err), nil
	}
	return h.jsonResult(ctx, "create_user", api.UserToResponse(user)), nil
}

func (h *handlers) listUsers(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	users, err := h.Users.ListUsers(ctx)
	if err != nil {
		return h.toolError(ctx, "list_users", err), nil
	}
	out := make([]api.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, api.UserToResponse(u))
	}
	return h.jsonResult(ctx, "list_users", out), nil
}

func (h *handlers) getUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(request.GetArguments(), "id")
	if err != nil {
		return h.toolError(ctx, "get_user", err), nil
	}
	user, err := h.Users.GetUser(ctx, id)
	if err != nil {
		return h.toolError(ctx, "get_user", err), nil
	}
	return h.jsonResult(ctx, "get_user", api.UserToResponse(user)), nil
}

func (h *handlers) updateUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, err := requiredID(args, "id")
	if err != nil {
		return h.toolError(ctx, "update_user", err), nil
	}

	var input service.UpdateUserInput
	if input.Name, err = optionalString(args, "name"); err != nil {
		return h.toolError(ctx, "update_user", err), nil
	}
	if input.Email, err = optionalString(args, "email"); err != nil {
		return h.toolError(ctx, "update_user", err), nil
	}

	user, err := h.Users.UpdateUser(ctx, id, input)
	if err != nil {
		return h.toolError(ctx, "update_user", err), nil
	}
	return h.jsonResult(ctx, "update_user", api.UserToResponse(user)), nil
}

func (h *handlers) deleteUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(request.GetArguments(), "id")
	if err != nil {
		return h.toolError(ctx, "delete_user", err), nil
	}
	if err := h.Users.DeleteUser(ctx, id); err != nil {
		return h.toolError(ctx, "delete_user", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("User %d deleted", id)), nil
}
