package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
)

// MockTransactionManager runs fn inline so repository mocks see every call
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, nil)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	args := m.Called(ctx, firebaseUID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) LinkFirebaseUID(ctx context.Context, id uuid.UUID, firebaseUID string) error {
	return m.Called(ctx, id, firebaseUID).Error(0)
}

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	return m.Called(ctx, ws).Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, id)
	if ws := args.Get(0); ws != nil {
		return ws.(*models.Workspace), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Workspace, error) {
	args := m.Called(ctx, userID)
	if l := args.Get(0); l != nil {
		return l.([]*models.Workspace), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceRepository) AddMember(ctx context.Context, member *models.WorkspaceMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockWorkspaceRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*models.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if mem := args.Get(0); mem != nil {
		return mem.(*models.WorkspaceMember), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]*models.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	if l := args.Get(0); l != nil {
		return l.([]*models.WorkspaceMember), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *models.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*models.Project, error) {
	args := m.Called(ctx, workspaceID)
	if l := args.Get(0); l != nil {
		return l.([]*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *models.Project) error {
	return m.Called(ctx, p).Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, b *models.Board) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.Board), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBoardRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Board, error) {
	args := m.Called(ctx, projectID)
	if l := args.Get(0); l != nil {
		return l.([]*models.Board), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *models.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) ListByBoard(ctx context.Context, boardID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error) {
	args := m.Called(ctx, boardID, filter)
	if l := args.Get(0); l != nil {
		return l.([]*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *models.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Comment, error) {
	args := m.Called(ctx, taskID)
	if l := args.Get(0); l != nil {
		return l.([]*models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if n := args.Get(0); n != nil {
		return n.(*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page repositories.Page) ([]*models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, page)
	if l := args.Get(0); l != nil {
		return l.([]*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Insert(ctx context.Context, log *models.ActivityLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockActivityRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page repositories.Page) ([]*models.ActivityLog, error) {
	args := m.Called(ctx, workspaceID, page)
	if l := args.Get(0); l != nil {
		return l.([]*models.ActivityLog), args.Error(1)
	}
	return nil, args.Error(1)
}

// expectMember stubs a membership lookup
func expectMember(ws *MockWorkspaceRepository, workspaceID, userID uuid.UUID, role models.MemberRole) {
	ws.On("GetMember", mock.Anything, workspaceID, userID).
		Return(models.NewWorkspaceMember(workspaceID, userID, role), nil)
}

// expectNonMember stubs an existing workspace the user does not belong to
func expectNonMember(ws *MockWorkspaceRepository, workspaceID, userID uuid.UUID) {
	ws.On("GetMember", mock.Anything, workspaceID, userID).Return(nil, repositories.ErrNotFound)
	ws.On("GetByID", mock.Anything, workspaceID).Return(&models.Workspace{ID: workspaceID}, nil)
}
