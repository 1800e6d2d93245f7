package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityAction represents the kind of change recorded in the activity feed
type ActivityAction string

const (
	ActivityWorkspaceCreated ActivityAction = "workspace_created"
	ActivityMemberAdded      ActivityAction = "member_added"
	ActivityProjectCreated   ActivityAction = "project_created"
	ActivityProjectUpdated   ActivityAction = "project_updated"
	ActivityBoardCreated     ActivityAction = "board_created"
	ActivityTaskCreated      ActivityAction = "task_created"
	ActivityTaskUpdated      ActivityAction = "task_updated"
	ActivityTaskDeleted      ActivityAction = "task_deleted"
	ActivityCommentAdded     ActivityAction = "comment_added"
)

// Resource types referenced by activity logs and notifications
const (
	ResourceWorkspace = "workspace"
	ResourceProject   = "project"
	ResourceBoard     = "board"
	ResourceTask      = "task"
	ResourceComment   = "comment"
)

// ActivityLog is an append-only record of a change inside a workspace
type ActivityLog struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	WorkspaceID  uuid.UUID       `json:"workspace_id" db:"workspace_id"`
	ActorID      uuid.UUID       `json:"actor_id" db:"actor_id"`
	Action       ActivityAction  `json:"action" db:"action"`
	ResourceType string          `json:"resource_type" db:"resource_type"`
	ResourceID   uuid.UUID       `json:"resource_id" db:"resource_id"`
	Details      json.RawMessage `json:"details,omitempty" db:"details"` // JSONB
	RequestID    string          `json:"request_id,omitempty" db:"request_id"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates a new ActivityLog instance
func NewActivityLog(workspaceID, actorID uuid.UUID, action ActivityAction, resourceType string, resourceID uuid.UUID) *ActivityLog {
	return &ActivityLog{
		ID:           uuid.New(),
		WorkspaceID:  workspaceID,
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CreatedAt:    time.Now(),
	}
}

// WithDetails marshals details into the log entry
func (a *ActivityLog) WithDetails(details map[string]interface{}) *ActivityLog {
	if len(details) == 0 {
		return a
	}
	if raw, err := json.Marshal(details); err == nil {
		a.Details = raw
	}
	return a
}
