package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

const notificationColumns = `id, user_id, type, title, body, resource_type, resource_id, read_at, created_at`

// NotificationRepository implements the repositories.NotificationRepository interface
type NotificationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB, logger *zap.Logger) repositories.NotificationRepository {
	return &NotificationRepository{db: db, logger: logger}
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.ResourceType, &n.ResourceID, &n.ReadAt, &n.CreatedAt)
	return n, err
}

// Create stores a notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		n.ID, n.UserID, n.Type, n.Title, n.Body, n.ResourceType, n.ResourceID, n.ReadAt, n.CreatedAt)
	if err != nil {
		return mapError(err, "create notification")
	}

	r.logger.Debug("notification stored",
		zap.String("user_id", n.UserID.String()),
		zap.String("type", string(n.Type)))
	return nil
}

// GetByID retrieves a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	n, err := scanNotification(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get notification")
	}
	return n, nil
}

// ListForUser returns a user's notifications, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page repositories.Page) ([]*models.Notification, error) {
	page = pageOrDefault(page)

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND ($2 = false OR read_at IS NULL)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, userID, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, mapError(err, "list notifications")
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, mapError(err, "scan notification")
		}
		out = append(out, n)
	}
	return out, mapError(rows.Err(), "list notifications")
}

// MarkRead sets read_at once; marking an already read notification is a no-op
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET read_at = COALESCE(read_at, $2) WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return mapError(err, "mark notification read")
	}
	return requireAffected(res, "mark notification read")
}
