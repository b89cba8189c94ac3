package api

import (
	"time"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service"
)

// CreateTaskRequest defines the payload for POST /api/tasks.
type CreateTaskRequest struct {
	Title       string       `json:"title"       validate:"required,max=255"`
	Description *string      `json:"description" validate:"omitempty,max=4000"`
	CategoryID  *int64       `json:"categoryId"  validate:"omitempty,gt=0"`
	AssigneeID  *int64       `json:"assigneeId"  validate:"omitempty,gt=0"`
	DueDate     *domain.Date `json:"dueDate"`
}

// UpdateTaskRequest defines the payload for PUT /api/tasks/{id}. Absent or
// null fields are left unchanged; version is the token read with the task.
type UpdateTaskRequest struct {
	Version     *int         `json:"version"     validate:"required,gte=0"`
	Title       *string      `json:"title"       validate:"omitempty,max=255"`
	Description *string      `json:"description" validate:"omitempty,max=4000"`
	CategoryID  *int64       `json:"categoryId"  validate:"omitempty,gt=0"`
	AssigneeID  *int64       `json:"assigneeId"  validate:"omitempty,gt=0"`
	Status      *string      `json:"status"      validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	DueDate     *domain.Date `json:"dueDate"`
}

// TaskResponse is the task view. Optional fields are rendered as null
// rather than omitted.
type TaskResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description"`
	Status        domain.TaskStatus `json:"status"`
	CategoryID    *int64            `json:"categoryId"`
	CategoryName  *string           `json:"categoryName"`
	AssigneeID    *int64            `json:"assigneeId"`
	AssigneeName  *string           `json:"assigneeName"`
	CreatedByID   int64             `json:"createdById"`
	CreatedByName *string           `json:"createdByName"`
	DueDate       *domain.Date      `json:"dueDate"`
	CompletedAt   *time.Time        `json:"completedAt"`
	Version       int               `json:"version"`
}

// CreateCategoryRequest defines the payload for POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse is the category view.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateUserRequest defines the payload for POST /api/users. The email is
// trimmed and lower-cased before its format is checked.
type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,max=255"`
}

// UpdateUserRequest defines the payload for PUT /api/users/{id}.
type UpdateUserRequest struct {
	Name  *string `json:"name"  validate:"omitempty,max=100"`
	Email *string `json:"email" validate:"omitempty,max=255"`
}

// UserResponse is the user view.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskToResponse converts a task and its resolved names to the task view.
func TaskToResponse(t *service.TaskDetails) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		CategoryID:    t.CategoryID,
		CategoryName:  t.CategoryName,
		AssigneeID:    t.AssigneeID,
		AssigneeName:  t.AssigneeName,
		CreatedByID:   t.CreatedByID,
		CreatedByName: t.CreatedByName,
		DueDate:       t.DueDate,
		CompletedAt:   t.CompletedAt,
		Version:       t.Version,
	}
}

// TasksToResponse converts a list of tasks; the result is never nil.
func TasksToResponse(tasks []*service.TaskDetails) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskToResponse(t))
	}
	return out
}

// CategoryToResponse converts a category to its view.
func CategoryToResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// UserToResponse converts a user to its view.
func UserToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
