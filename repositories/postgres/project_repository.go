package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

const projectColumns = `id, workspace_id, name, description, status, created_by, created_at, updated_at`

// ProjectRepository implements the repositories.ProjectRepository interface
type ProjectRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *DB, logger *zap.Logger) repositories.ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		p.ID, p.WorkspaceID, p.Name, p.Description, p.Status, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapError(err, "create project")
	}

	r.logger.Debug("project created", zap.String("id", p.ID.String()))
	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	p := &models.Project{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &p.Description, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "get project")
	}
	return p, nil
}

// ListByWorkspace returns a workspace's projects ordered by name
func (r *ProjectRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE workspace_id = $1 ORDER BY name`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, mapError(err, "list projects")
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.Description, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapError(err, "scan project")
		}
		out = append(out, p)
	}
	return out, mapError(rows.Err(), "list projects")
}

// Update updates name, description and status
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	p.UpdatedAt = time.Now()

	executor := GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.Status, p.UpdatedAt)
	if err != nil {
		return mapError(err, "update project")
	}
	return requireAffected(res, "update project")
}

const boardColumns = `id, project_id, workspace_id, name, position, created_at, updated_at`

// BoardRepository implements the repositories.BoardRepository interface
type BoardRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *DB, logger *zap.Logger) repositories.BoardRepository {
	return &BoardRepository{db: db, logger: logger}
}

// Create creates a new board
func (r *BoardRepository) Create(ctx context.Context, b *models.Board) error {
	query := `INSERT INTO boards (` + boardColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		b.ID, b.ProjectID, b.WorkspaceID, b.Name, b.Position, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return mapError(err, "create board")
	}
	return nil
}

// GetByID retrieves a board by ID
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	b := &models.Board{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ProjectID, &b.WorkspaceID, &b.Name, &b.Position, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "get board")
	}
	return b, nil
}

// ListByProject returns a project's boards ordered by position
func (r *BoardRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE project_id = $1 ORDER BY position, created_at`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, mapError(err, "list boards")
	}
	defer rows.Close()

	var out []*models.Board
	for rows.Next() {
		b := &models.Board{}
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.WorkspaceID, &b.Name, &b.Position, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, mapError(err, "scan board")
		}
		out = append(out, b)
	}
	return out, mapError(rows.Err(), "list boards")
}
