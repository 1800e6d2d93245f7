package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
)

var (
	// ErrNotFound is wrapped by repositories when no row matches
	ErrNotFound = errors.New("record not found")

	// ErrConflict is wrapped by repositories when a unique constraint is violated
	ErrConflict = errors.New("record already exists")
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Repositories called with the ctx passed to fn run inside the transaction.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// Page bounds list queries. A zero Limit means DefaultPageLimit; larger
// limits are clamped to MaxPageLimit.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// UserRepository handles user data operations
type UserRepository interface {
	// Create creates a new user; a duplicate firebase_uid or email wraps ErrConflict
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByFirebaseUID retrieves the user mapped to a Firebase subject
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update updates profile fields
	Update(ctx context.Context, user *models.User) error

	// LinkFirebaseUID repoints a user at a different Firebase subject
	LinkFirebaseUID(ctx context.Context, id uuid.UUID, firebaseUID string) error
}

// WorkspaceRepository handles workspaces and their membership
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)

	// ListForUser returns the workspaces the user is a member of
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Workspace, error)

	// AddMember inserts a membership; an existing membership wraps ErrConflict
	AddMember(ctx context.Context, member *models.WorkspaceMember) error
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*models.WorkspaceMember, error)
	ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]*models.WorkspaceMember, error)
}

// ProjectRepository handles project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
}

// BoardRepository handles board data operations
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Board, error)
}

// TaskFilter narrows ListByBoard
type TaskFilter struct {
	Status     *models.TaskStatus
	AssigneeID *uuid.UUID
	Page       Page
}

// TaskRepository handles task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	// ListByBoard returns tasks ordered by position
	ListByBoard(ctx context.Context, boardID uuid.UUID, filter TaskFilter) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository handles task comments
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error

	// ListByTask returns comments oldest first
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Comment, error)
}

// NotificationRepository handles stored notifications
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)

	// ListForUser returns newest first
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page Page) ([]*models.Notification, error)

	// MarkRead sets read_at if it is not already set
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// ActivityRepository handles the append-only activity feed
type ActivityRepository interface {
	Insert(ctx context.Context, log *models.ActivityLog) error

	// ListByWorkspace returns newest first
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page Page) ([]*models.ActivityLog, error)
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Repositories holds all repository instances
type Repositories struct {
	Users         UserRepository
	Workspaces    WorkspaceRepository
	Projects      ProjectRepository
	Boards        BoardRepository
	Tasks         TaskRepository
	Comments      CommentRepository
	Notifications NotificationRepository
	Activity      ActivityRepository
}
