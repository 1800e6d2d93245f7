package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

// WorkspaceRepository implements the repositories.WorkspaceRepository interface
type WorkspaceRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB, logger *zap.Logger) repositories.WorkspaceRepository {
	return &WorkspaceRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		ws.ID, ws.Name, ws.Description, ws.OwnerID, ws.CreatedAt, ws.UpdatedAt)
	if err != nil {
		return mapError(err, "create workspace")
	}

	r.logger.Debug("workspace created", zap.String("id", ws.ID.String()))
	return nil
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	ws := &models.Workspace{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&ws.ID, &ws.Name, &ws.Description, &ws.OwnerID, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "get workspace")
	}
	return ws, nil
}

// ListForUser returns the workspaces the user belongs to, newest first
func (r *WorkspaceRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.description, w.owner_id, w.created_at, w.updated_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.created_at DESC
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list workspaces")
	}
	defer rows.Close()

	var out []*models.Workspace
	for rows.Next() {
		ws := &models.Workspace{}
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.OwnerID, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, mapError(err, "scan workspace")
		}
		out = append(out, ws)
	}
	return out, mapError(rows.Err(), "list workspaces")
}

// AddMember inserts a workspace membership
func (r *WorkspaceRepository) AddMember(ctx context.Context, member *models.WorkspaceMember) error {
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`

	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query, member.WorkspaceID, member.UserID, member.Role, member.JoinedAt)
	if err != nil {
		return mapError(err, "add workspace member")
	}
	return nil
}

// GetMember retrieves a single membership
func (r *WorkspaceRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*models.WorkspaceMember, error) {
	query := `
		SELECT workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2
	`

	executor := GetExecutor(ctx, r.db)
	m := &models.WorkspaceMember{}
	err := executor.QueryRowContext(ctx, query, workspaceID, userID).Scan(
		&m.WorkspaceID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		return nil, mapError(err, "get workspace member")
	}
	return m, nil
}

// ListMembers returns all members, oldest first
func (r *WorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]*models.WorkspaceMember, error) {
	query := `
		SELECT workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY joined_at
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, mapError(err, "list workspace members")
	}
	defer rows.Close()

	var out []*models.WorkspaceMember
	for rows.Next() {
		m := &models.WorkspaceMember{}
		if err := rows.Scan(&m.WorkspaceID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, mapError(err, "scan workspace member")
		}
		out = append(out, m)
	}
	return out, mapError(rows.Err(), "list workspace members")
}
