package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

const userColumns = `id, firebase_uid, email, display_name, photo_url, created_at, updated_at`

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		user.ID,
		user.FirebaseUID,
		user.Email,
		user.DisplayName,
		user.PhotoURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create user")
	}

	r.logger.Debug("user created", zap.String("id", user.ID.String()))
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, "get user "+id.String(), `WHERE id = $1`, id)
}

// GetByFirebaseUID retrieves a user by Firebase subject
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.getOne(ctx, "get user by firebase_uid", `WHERE firebase_uid = $1`, firebaseUID)
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "get user by email", `WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepository) getOne(ctx context.Context, op, where string, arg interface{}) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ` + where

	executor := GetExecutor(ctx, r.db)
	user := &models.User{}

	err := executor.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.FirebaseUID,
		&user.Email,
		&user.DisplayName,
		&user.PhotoURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, op)
	}

	return user, nil
}

// Update updates profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET display_name = $2, photo_url = $3, updated_at = $4
		WHERE id = $1
	`

	user.UpdatedAt = time.Now()

	executor := GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, query, user.ID, user.DisplayName, user.PhotoURL, user.UpdatedAt)
	if err != nil {
		return mapError(err, "update user")
	}
	return requireAffected(res, "update user")
}

// LinkFirebaseUID repoints a user at a different Firebase subject
func (r *UserRepository) LinkFirebaseUID(ctx context.Context, id uuid.UUID, firebaseUID string) error {
	query := `UPDATE users SET firebase_uid = $2, updated_at = $3 WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, query, id, firebaseUID, time.Now())
	if err != nil {
		return mapError(err, "link firebase uid")
	}
	if err := requireAffected(res, "link firebase uid"); err != nil {
		return err
	}

	r.logger.Info("firebase identity linked", zap.String("id", id.String()))
	return nil
}

