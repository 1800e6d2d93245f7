package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a task sits in its workflow
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskPriority represents the urgency of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task is a unit of work on a board
type Task struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	BoardID     uuid.UUID    `json:"board_id" db:"board_id"`
	ProjectID   uuid.UUID    `json:"project_id" db:"project_id"`
	WorkspaceID uuid.UUID    `json:"workspace_id" db:"workspace_id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description,omitempty" db:"description"`
	Status      TaskStatus   `json:"status" db:"status"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	AssigneeID  *uuid.UUID   `json:"assignee_id,omitempty" db:"assignee_id"`
	DueDate     *time.Time   `json:"due_date,omitempty" db:"due_date"`
	Position    int          `json:"position" db:"position"`
	CreatedBy   uuid.UUID    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a new todo Task with medium priority on the given board
func NewTask(board *Board, title string, createdBy uuid.UUID) *Task {
	now := time.Now()
	return &Task{
		ID:          uuid.New(),
		BoardID:     board.ID,
		ProjectID:   board.ProjectID,
		WorkspaceID: board.WorkspaceID,
		Title:       title,
		Status:      TaskTodo,
		Priority:    PriorityMedium,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsAssignedTo returns true if the task is assigned to the given user
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// Comment is a message left on a task
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// NewComment creates a new Comment instance
func NewComment(taskID, authorID uuid.UUID, body string) *Comment {
	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
