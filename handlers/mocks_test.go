package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/taskhub/auth"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/middleware"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
)

// newRequest builds a request as RequireAuth and chi would hand it to a handler
func newRequest(method, target, body string, actorID uuid.UUID, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := req.Context()
	if actorID != uuid.Nil {
		ctx = middleware.WithPrincipal(ctx, &auth.Principal{Source: auth.SourceFirebase, UID: actorID.String()})
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	envelope := struct {
		Data interface{} `json:"data"`
	}{Data: out}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateWorkspaceRequest) (*models.Workspace, error) {
	args := m.Called(ctx, actorID, req)
	if ws := args.Get(0); ws != nil {
		return ws.(*models.Workspace), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceService) ListForUser(ctx context.Context, actorID uuid.UUID) ([]*models.Workspace, error) {
	args := m.Called(ctx, actorID)
	if list := args.Get(0); list != nil {
		return list.([]*models.Workspace), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceService) Get(ctx context.Context, actorID, workspaceID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, actorID, workspaceID)
	if ws := args.Get(0); ws != nil {
		return ws.(*models.Workspace), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceService) AddMember(ctx context.Context, actorID, workspaceID uuid.UUID, req dto.AddWorkspaceMemberRequest) (*models.WorkspaceMember, error) {
	args := m.Called(ctx, actorID, workspaceID, req)
	if member := args.Get(0); member != nil {
		return member.(*models.WorkspaceMember), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceService) ListMembers(ctx context.Context, actorID, workspaceID uuid.UUID) ([]*models.WorkspaceMember, error) {
	args := m.Called(ctx, actorID, workspaceID)
	if list := args.Get(0); list != nil {
		return list.([]*models.WorkspaceMember), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) ListForWorkspace(ctx context.Context, actorID, workspaceID uuid.UUID, page repositories.Page) ([]*models.ActivityLog, error) {
	args := m.Called(ctx, actorID, workspaceID, page)
	if list := args.Get(0); list != nil {
		return list.([]*models.ActivityLog), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, actorID, workspaceID uuid.UUID, req dto.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, actorID, workspaceID, req)
	if p := args.Get(0); p != nil {
		return p.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectService) ListByWorkspace(ctx context.Context, actorID, workspaceID uuid.UUID) ([]*models.Project, error) {
	args := m.Called(ctx, actorID, workspaceID)
	if list := args.Get(0); list != nil {
		return list.([]*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, actorID, projectID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, actorID, projectID)
	if p := args.Get(0); p != nil {
		return p.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, actorID, projectID uuid.UUID, req dto.UpdateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, actorID, projectID, req)
	if p := args.Get(0); p != nil {
		return p.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectService) CreateBoard(ctx context.Context, actorID, projectID uuid.UUID, req dto.CreateBoardRequest) (*models.Board, error) {
	args := m.Called(ctx, actorID, projectID, req)
	if b := args.Get(0); b != nil {
		return b.(*models.Board), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectService) ListBoards(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.Board, error) {
	args := m.Called(ctx, actorID, projectID)
	if list := args.Get(0); list != nil {
		return list.([]*models.Board), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, actorID, boardID uuid.UUID, req dto.CreateTaskRequest) (*models.Task, error) {
	args := m.Called(ctx, actorID, boardID, req)
	if task := args.Get(0); task != nil {
		return task.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, actorID, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, actorID, taskID)
	if task := args.Get(0); task != nil {
		return task.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) ListByBoard(ctx context.Context, actorID, boardID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error) {
	args := m.Called(ctx, actorID, boardID, filter)
	if list := args.Get(0); list != nil {
		return list.([]*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, actorID, taskID uuid.UUID, req dto.UpdateTaskRequest) (*models.Task, error) {
	args := m.Called(ctx, actorID, taskID, req)
	if task := args.Get(0); task != nil {
		return task.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, actorID, taskID uuid.UUID) error {
	return m.Called(ctx, actorID, taskID).Error(0)
}

func (m *MockTaskService) AddComment(ctx context.Context, actorID, taskID uuid.UUID, req dto.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, actorID, taskID, req)
	if c := args.Get(0); c != nil {
		return c.(*models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) ListComments(ctx context.Context, actorID, taskID uuid.UUID) ([]*models.Comment, error) {
	args := m.Called(ctx, actorID, taskID)
	if list := args.Get(0); list != nil {
		return list.([]*models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page repositories.Page) ([]*models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, page)
	if list := args.Get(0); list != nil {
		return list.([]*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, userID, notificationID)
	if n := args.Get(0); n != nil {
		return n.(*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}
