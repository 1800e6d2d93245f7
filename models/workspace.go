package models

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole represents the role of a user within a workspace
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
	RoleViewer MemberRole = "viewer"
)

// MemberRoles lists every valid role, in descending privilege
var MemberRoles = []MemberRole{RoleOwner, RoleAdmin, RoleMember, RoleViewer}

// Workspace is the top-level container that owns projects and members
type Workspace struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Workspace model
func (Workspace) TableName() string {
	return "workspaces"
}

// NewWorkspace creates a new Workspace instance
func NewWorkspace(name, description string, ownerID uuid.UUID) *Workspace {
	now := time.Now()
	return &Workspace{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WorkspaceMember links a user to a workspace with a role
type WorkspaceMember struct {
	WorkspaceID uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Role        MemberRole `json:"role" db:"role"`
	JoinedAt    time.Time  `json:"joined_at" db:"joined_at"`
}

// TableName returns the table name for the WorkspaceMember model
func (WorkspaceMember) TableName() string {
	return "workspace_members"
}

// NewWorkspaceMember creates a new WorkspaceMember instance
func NewWorkspaceMember(workspaceID, userID uuid.UUID, role MemberRole) *WorkspaceMember {
	return &WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
}

// CanManageMembers returns true if the member may add other members
func (m *WorkspaceMember) CanManageMembers() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}

// CanWrite returns true if the member may create or modify content
func (m *WorkspaceMember) CanWrite() bool {
	return m.Role != RoleViewer
}
