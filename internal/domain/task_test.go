package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	desc := "draft the storage layer"
	task, err := NewTask("  Write spec  ", &desc, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Title != "Write spec" {
		t.Errorf("Expected trimmed title %q, got %q", "Write spec", task.Title)
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}

	if task.Version != 0 {
		t.Errorf("Expected version 0, got %d", task.Version)
	}

	if task.CompletedAt != nil {
		t.Error("Expected nil CompletedAt on a new task")
	}

	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	// Blank titles are rejected
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err = NewTask(title, nil, 1)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Title %q: expected validation error, got %v", title, err)
		}
		if !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("Title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}

	// Creator is required
	_, err = NewTask("Title", nil, 0)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for missing creator, got %v", err)
	}
}

func TestTaskStatus(t *testing.T) {
	t.Parallel()

	for _, s := range TaskStatuses {
		parsed, err := ParseTaskStatus(string(s))
		if err != nil {
			t.Errorf("Expected %s to parse, got %v", s, err)
		}
		if parsed != s {
			t.Errorf("Expected %s, got %s", s, parsed)
		}
	}

	for _, s := range []string{"", "pending", "DONE", "IN PROGRESS"} {
		_, err := ParseTaskStatus(s)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("Status %q: expected ErrInvalidStatus, got %v", s, err)
		}
	}
}

func TestTaskSetStatus(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Ship it", nil, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if err := task.SetStatus(TaskStatusCompleted, first); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(first) {
		t.Fatalf("Expected CompletedAt %v, got %v", first, task.CompletedAt)
	}

	// Reopening keeps the stamp
	if err := task.SetStatus(TaskStatusInProgress, first.Add(time.Hour)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(first) {
		t.Errorf("Expected CompletedAt to stay %v after reopen, got %v", first, task.CompletedAt)
	}

	// Completing again refreshes it
	second := first.Add(2 * time.Hour)
	if err := task.SetStatus(TaskStatusCompleted, second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !task.CompletedAt.Equal(second) {
		t.Errorf("Expected CompletedAt %v, got %v", second, task.CompletedAt)
	}

	if err := task.SetStatus("ARCHIVED", second); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status to stay %s, got %s", TaskStatusCompleted, task.Status)
	}
}

func TestTaskSetTitle(t *testing.T) {
	t.Parallel()

	task, _ := NewTask("Original", nil, 1)

	if err := task.SetTitle("   "); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
	if task.Title != "Original" {
		t.Errorf("Expected title unchanged, got %q", task.Title)
	}

	if err := task.SetTitle(" Renamed "); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Title != "Renamed" {
		t.Errorf("Expected %q, got %q", "Renamed", task.Title)
	}
}

func TestTaskClone(t *testing.T) {
	t.Parallel()

	desc := "original"
	categoryID := int64(3)
	due := NewDate(2024, time.June, 1)
	completed := time.Now().UTC()
	task := &Task{
		ID:          7,
		Title:       "Clone me",
		Description: &desc,
		Status:      TaskStatusCompleted,
		CategoryID:  &categoryID,
		CreatedByID: 1,
		DueDate:     &due,
		CompletedAt: &completed,
		Version:     4,
	}

	clone := task.Clone()
	*clone.Description = "changed"
	*clone.CategoryID = 99
	*clone.DueDate = NewDate(2030, time.January, 1)
	clone.Title = "changed"

	if *task.Description != "original" {
		t.Errorf("Description aliased: %q", *task.Description)
	}
	if *task.CategoryID != 3 {
		t.Errorf("CategoryID aliased: %d", *task.CategoryID)
	}
	if !task.DueDate.Equal(NewDate(2024, time.June, 1)) {
		t.Errorf("DueDate aliased: %s", task.DueDate)
	}
	if task.Title != "Clone me" {
		t.Errorf("Title changed: %q", task.Title)
	}
	if clone.AssigneeID != nil {
		t.Error("Expected nil AssigneeID to stay nil")
	}
}
