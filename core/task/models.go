package task

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskistry/collabo/core"
)

// Status of a task. Tasks move freely between the three statuses.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task belongs to exactly one project (ProjectID, immutable after creation).
// AssignedTo, when set, references a member of that project.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProjectID   string    `json:"project_id"`
	Status      Status    `json:"status"`
	DueDate     time.Time `json:"due_date"`
	AssignedTo  *string   `json:"assigned_to"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// IsOverdue reports whether the task is past due and not yet completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusCompleted && t.DueDate.Before(now)
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	ProjectID   string    `json:"project_id" validate:"required"`
	Status      Status    `json:"status" validate:"omitempty,status"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	AssignedTo  *string   `json:"assigned_to"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	return validate.Struct(nt)
}
