package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a read-only work item listed by /api/tasks.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a new Task with a fresh id.
func NewTask(title, description string) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// SampleTasks returns the tasks loaded when seeding is enabled.
func SampleTasks() []*Task {
	return []*Task{
		NewTask("Review BIM model", "Check clash detection results for level 2"),
		NewTask("Update takeoff", "Re-run PlanSwift quantities after the revision"),
	}
}

// Forum is a static discussion topic.
type Forum struct {
	ID    int    `json:"id"`
	Topic string `json:"topic"`
}

// Resource is a static learning resource.
type Resource struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
