// Package task provides the task value type used by the demo application.
package task

import (
	"strings"
	"time"
)

// Status of a task.
type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// Task is an immutable value type representing one task.
type Task struct {
	ID        string
	Title     string
	Notes     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DOMID returns the conventional DOM identifier for the task.
func (t Task) DOMID() string {
	return "task_" + t.ID
}

// Validate returns field-level errors, or an empty map when the task is
// valid.
func (t Task) Validate() map[string][]string {
	errs := make(map[string][]string)
	title := strings.TrimSpace(t.Title)
	if title == "" {
		errs["title"] = append(errs["title"], "can't be blank")
	}
	if len(title) > 200 {
		errs["title"] = append(errs["title"], "is too long (maximum is 200 characters)")
	}
	if t.Status != StatusOpen && t.Status != StatusDone {
		errs["status"] = append(errs["status"], "is not a valid status")
	}
	return errs
}

// Attributes returns the serializable representation used by JSON, CSV
// and XML responses.
func (t Task) Attributes() map[string]any {
	return map[string]any{
		"id":         t.ID,
		"title":      t.Title,
		"notes":      t.Notes,
		"status":     string(t.Status),
		"created_at": t.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
