package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

const taskColumns = `id, board_id, project_id, workspace_id, title, description, status, priority,
	assignee_id, due_date, position, created_by, created_at, updated_at`

// TaskRepository implements the repositories.TaskRepository interface
type TaskRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB, logger *zap.Logger) repositories.TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(
		&t.ID,
		&t.BoardID,
		&t.ProjectID,
		&t.WorkspaceID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.AssigneeID,
		&t.DueDate,
		&t.Position,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		t.ID,
		t.BoardID,
		t.ProjectID,
		t.WorkspaceID,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.AssigneeID,
		t.DueDate,
		t.Position,
		t.CreatedBy,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create task")
	}

	r.logger.Debug("task created", zap.String("id", t.ID.String()), zap.String("board_id", t.BoardID.String()))
	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	t, err := scanTask(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get task")
	}
	return t, nil
}

// ListByBoard returns one page of a board's tasks ordered by position
func (r *TaskRepository) ListByBoard(ctx context.Context, boardID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE board_id = $1`
	args := []interface{}{boardID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		query += fmt.Sprintf(" AND assignee_id = $%d", len(args))
	}
	page := pageOrDefault(filter.Page)
	args = append(args, page.Limit, page.Offset)
	query += fmt.Sprintf(" ORDER BY position, created_at LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list tasks")
	}
	defer rows.Close()

	var out []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, mapError(err, "scan task")
		}
		out = append(out, t)
	}
	return out, mapError(rows.Err(), "list tasks")
}

// Update writes every mutable task field
func (r *TaskRepository) Update(ctx context.Context, t *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
			assignee_id = $6, due_date = $7, position = $8, updated_at = $9
		WHERE id = $1
	`

	t.UpdatedAt = time.Now()

	executor := GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.AssigneeID, t.DueDate, t.Position, t.UpdatedAt)
	if err != nil {
		return mapError(err, "update task")
	}
	return requireAffected(res, "update task")
}

// Delete deletes a task and, by cascade, its comments
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete task")
	}
	return requireAffected(res, "delete task")
}

// CommentRepository implements the repositories.CommentRepository interface
type CommentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *DB, logger *zap.Logger) repositories.CommentRepository {
	return &CommentRepository{db: db, logger: logger}
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	query := `
		INSERT INTO comments (id, task_id, author_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query, c.ID, c.TaskID, c.AuthorID, c.Body, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapError(err, "create comment")
	}
	return nil
}

// ListByTask returns a task's comments oldest first
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Comment, error) {
	query := `
		SELECT id, task_id, author_id, body, created_at, updated_at
		FROM comments
		WHERE task_id = $1
		ORDER BY created_at
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, mapError(err, "list comments")
	}
	defer rows.Close()

	var out []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, mapError(err, "scan comment")
		}
		out = append(out, c)
	}
	return out, mapError(rows.Err(), "list comments")
}
