package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

// ActivityRepository implements the repositories.ActivityRepository interface
type ActivityRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *DB, logger *zap.Logger) repositories.ActivityRepository {
	return &ActivityRepository{db: db, logger: logger}
}

// Insert appends an entry to the activity feed
func (r *ActivityRepository) Insert(ctx context.Context, log *models.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, workspace_id, actor_id, action, resource_type, resource_id, details, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var details []byte
	if len(log.Details) > 0 {
		details = log.Details
	}

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		log.ID,
		log.WorkspaceID,
		log.ActorID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		details,
		log.RequestID,
		log.CreatedAt,
	)
	if err != nil {
		return mapError(err, "insert activity log")
	}
	return nil
}

// ListByWorkspace returns the workspace feed, newest first
func (r *ActivityRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page repositories.Page) ([]*models.ActivityLog, error) {
	page = pageOrDefault(page)

	query := `
		SELECT id, workspace_id, actor_id, action, resource_type, resource_id, details, COALESCE(request_id, ''), created_at
		FROM activity_logs
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, workspaceID, page.Limit, page.Offset)
	if err != nil {
		return nil, mapError(err, "list activity")
	}
	defer rows.Close()

	var out []*models.ActivityLog
	for rows.Next() {
		log := &models.ActivityLog{}
		var details []byte
		if err := rows.Scan(
			&log.ID,
			&log.WorkspaceID,
			&log.ActorID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&details,
			&log.RequestID,
			&log.CreatedAt,
		); err != nil {
			return nil, mapError(err, "scan activity log")
		}
		log.Details = details
		out = append(out, log)
	}
	return out, mapError(rows.Err(), "list activity")
}
