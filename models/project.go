package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// Project groups boards inside a workspace
type Project struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	WorkspaceID uuid.UUID     `json:"workspace_id" db:"workspace_id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description,omitempty" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	CreatedBy   uuid.UUID     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new active Project
func NewProject(workspaceID uuid.UUID, name, description string, createdBy uuid.UUID) *Project {
	now := time.Now()
	return &Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
		Status:      ProjectActive,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsArchived returns true if the project no longer accepts new boards
func (p *Project) IsArchived() bool {
	return p.Status == ProjectArchived
}

// Board is a column-style container of tasks within a project
type Board struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProjectID   uuid.UUID `json:"project_id" db:"project_id"`
	WorkspaceID uuid.UUID `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Board model
func (Board) TableName() string {
	return "boards"
}

// NewBoard creates a new Board in the project's workspace
func NewBoard(project *Project, name string, position int) *Board {
	now := time.Now()
	return &Board{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		WorkspaceID: project.WorkspaceID,
		Name:        name,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
