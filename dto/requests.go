package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
)

// CreateWorkspaceRequest is the body of POST /workspaces
type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddWorkspaceMemberRequest is the body of POST /workspaces/{id}/members.
// Role defaults to member.
type AddWorkspaceMemberRequest struct {
	Email string            `json:"email"`
	Role  models.MemberRole `json:"role"`
}

// CreateProjectRequest is the body of POST /workspaces/{id}/projects
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest is the body of PATCH /projects/{id}
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *models.ProjectStatus `json:"status"`
}

// CreateBoardRequest is the body of POST /projects/{id}/boards.
// A nil Position appends the board after the existing ones.
type CreateBoardRequest struct {
	Name     string `json:"name"`
	Position *int   `json:"position"`
}

// CreateTaskRequest is the body of POST /boards/{id}/tasks
type CreateTaskRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	AssigneeID  *uuid.UUID           `json:"assignee_id"`
	DueDate     *time.Time           `json:"due_date"`
	Position    *int                 `json:"position"`
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}.
// assignee_id and due_date may be sent as null to clear them.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	AssigneeID  Optional[uuid.UUID]  `json:"assignee_id"`
	DueDate     Optional[time.Time]  `json:"due_date"`
	Position    *int                 `json:"position"`
}

// CreateCommentRequest is the body of POST /tasks/{id}/comments
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// UpdateProfileRequest is the body of PATCH /users/me
type UpdateProfileRequest struct {
	DisplayName *string          `json:"display_name"`
	PhotoURL    Optional[string] `json:"photo_url"`
}
