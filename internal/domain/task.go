package domain

import (
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a Task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every valid status in lifecycle order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts s to a TaskStatus. Matching is exact.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", NewValidationError("status", "must be one of PENDING, IN_PROGRESS, COMPLETED", ErrInvalidStatus)
	}
	return status, nil
}

// Task is a unit of work created by a user, optionally categorized and
// assigned. Version is the optimistic-lock token: it starts at 0 and the
// store increments it by one on every successful update.
type Task struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	CategoryID  *int64     `json:"categoryId,omitempty" db:"category_id"`
	AssigneeID  *int64     `json:"assigneeId,omitempty" db:"assignee_id"`
	CreatedByID int64      `json:"createdById" db:"created_by_id"`
	DueDate     *Date      `json:"dueDate,omitempty" db:"due_date"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	Version     int        `json:"version" db:"version"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// NewTask creates a PENDING task at version 0 with a trimmed title.
// The ID is assigned by the store on insert.
func NewTask(title string, description *string, createdByID int64) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      TaskStatusPending,
		CreatedByID: createdByID,
		Version:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the fields a task must always satisfy.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}

	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of PENDING, IN_PROGRESS, COMPLETED", ErrInvalidStatus)
	}

	if t.CreatedByID <= 0 {
		return NewValidationError("createdById", "must reference a user", nil)
	}

	if t.Version < 0 {
		return NewValidationError("version", "cannot be negative", nil)
	}

	return nil
}

// SetTitle replaces the title after trimming it.
func (t *Task) SetTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	t.Title = trimmed
	return nil
}

// SetStatus replaces the status. Every transition to COMPLETED stamps
// CompletedAt with now; leaving COMPLETED keeps the previous stamp.
func (t *Task) SetStatus(status TaskStatus, now time.Time) error {
	if !status.Valid() {
		return NewValidationError("status", "must be one of PENDING, IN_PROGRESS, COMPLETED", ErrInvalidStatus)
	}
	t.Status = status
	if status == TaskStatusCompleted {
		completedAt := now.UTC()
		t.CompletedAt = &completedAt
	}
	return nil
}

// Clone returns a deep copy so a pending update never aliases the loaded row.
func (t *Task) Clone() *Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.CategoryID != nil {
		id := *t.CategoryID
		c.CategoryID = &id
	}
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		c.AssigneeID = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}
