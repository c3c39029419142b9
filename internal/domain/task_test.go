package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	due := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	task, err := NewTask(userID, "Buy groceries", "milk and eggs", &due, "Errands")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, task.UserID)
	}

	if task.Title != "Buy groceries" {
		t.Errorf("Expected title %q, got %q", "Buy groceries", task.Title)
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}

	if task.Category != "Errands" {
		t.Errorf("Expected category %q, got %q", "Errands", task.Category)
	}

	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("Expected due date %v, got %v", due, task.DueDate)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}
}

func TestNewTaskDefaultsCategory(t *testing.T) {
	t.Parallel()
	task, err := NewTask(uuid.New(), "Water plants", "", nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Category != DefaultTaskCategory {
		t.Errorf("Expected category %q, got %q", DefaultTaskCategory, task.Category)
	}
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	if _, err := NewTask(uuid.Nil, "title", "", nil, "Work"); err != ErrEmptyTaskUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskUserID, err)
	}

	if _, err := NewTask(userID, "", "", nil, "Work"); err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	validTask := Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "Valid task",
		Status:   TaskStatusPending,
		Category: "Personal",
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error for valid task, got %v", err)
	}

	tests := []struct {
		name    string
		modify  func(task *Task)
		wantErr error
	}{
		{"empty ID", func(task *Task) { task.ID = uuid.Nil }, ErrEmptyTaskID},
		{"empty user ID", func(task *Task) { task.UserID = uuid.Nil }, ErrEmptyTaskUserID},
		{"empty title", func(task *Task) { task.Title = "" }, ErrEmptyTaskTitle},
		{"empty category", func(task *Task) { task.Category = "" }, ErrEmptyTaskCategory},
		{"invalid status", func(task *Task) { task.Status = "archived" }, ErrInvalidTaskStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := validTask
			tc.modify(&task)
			if err := task.Validate(); err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTaskSetStatus(t *testing.T) {
	t.Parallel()
	task, err := NewTask(uuid.New(), "Flip me", "", nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := task.UpdatedAt

	if err := task.SetStatus(TaskStatusCompleted); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status %s, got %s", TaskStatusCompleted, task.Status)
	}
	if task.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	if err := task.SetStatus(TaskStatusPending); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}

	if err := task.SetStatus("paused"); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}
}
