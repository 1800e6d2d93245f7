package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

// WorkspaceService manages workspaces and their membership
type WorkspaceService struct {
	workspaces repositories.WorkspaceRepository
	users      repositories.UserRepository
	txMgr      repositories.TransactionManager
	members    *membership
	activity   *ActivityService
	logger     *zap.Logger
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(
	workspaces repositories.WorkspaceRepository,
	users repositories.UserRepository,
	txMgr repositories.TransactionManager,
	activity *ActivityService,
	logger *zap.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		workspaces: workspaces,
		users:      users,
		txMgr:      txMgr,
		members:    newMembership(workspaces),
		activity:   activity,
		logger:     logger,
	}
}

// Create creates a workspace and makes the actor its owner in one transaction
func (s *WorkspaceService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateWorkspaceRequest) (*models.Workspace, error) {
	ws := models.NewWorkspace(strings.TrimSpace(req.Name), req.Description, actorID)

	err := WithTransaction(ctx, s.txMgr, func(ctx context.Context) error {
		if err := s.workspaces.Create(ctx, ws); err != nil {
			return err
		}
		return s.workspaces.AddMember(ctx, models.NewWorkspaceMember(ws.ID, actorID, models.RoleOwner))
	})
	if err != nil {
		return nil, fromRepository(err, ErrWorkspaceNotFound, "create workspace")
	}

	s.logger.Info("workspace created",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("owner_id", actorID.String()))
	s.activity.Record(ctx, models.NewActivityLog(ws.ID, actorID, models.ActivityWorkspaceCreated, models.ResourceWorkspace, ws.ID).
		WithDetails(map[string]interface{}{"name": ws.Name}))

	return ws, nil
}

// ListForUser returns the workspaces the actor belongs to
func (s *WorkspaceService) ListForUser(ctx context.Context, actorID uuid.UUID) ([]*models.Workspace, error) {
	list, err := s.workspaces.ListForUser(ctx, actorID)
	if err != nil {
		return nil, WrapInternal("failed to list workspaces", err)
	}
	if list == nil {
		list = []*models.Workspace{}
	}
	return list, nil
}

// Get returns a workspace the actor is a member of
func (s *WorkspaceService) Get(ctx context.Context, actorID, workspaceID uuid.UUID) (*models.Workspace, error) {
	if _, err := s.members.require(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fromRepository(err, ErrWorkspaceNotFound, "get workspace")
	}
	return ws, nil
}

// AddMember adds an existing user, found by email, to the workspace.
// Only owners and admins may add members and the owner role cannot be granted.
func (s *WorkspaceService) AddMember(ctx context.Context, actorID, workspaceID uuid.UUID, req dto.AddWorkspaceMemberRequest) (*models.WorkspaceMember, error) {
	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if role == models.RoleOwner {
		return nil, ErrOwnerRoleReserved
	}

	if _, err := s.members.requireManager(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fromRepository(err, ErrUserNotFound, "find user")
	}

	member := models.NewWorkspaceMember(workspaceID, user.ID, role)
	if err := s.workspaces.AddMember(ctx, member); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, Wrap(ErrAlreadyMember, err)
		}
		return nil, WrapInternal("failed to add member", err)
	}

	s.activity.Record(ctx, models.NewActivityLog(workspaceID, actorID, models.ActivityMemberAdded, models.ResourceWorkspace, workspaceID).
		WithDetails(map[string]interface{}{"user_id": user.ID.String(), "role": string(role)}))

	return member, nil
}

// ListMembers returns the workspace roster; any member may read it
func (s *WorkspaceService) ListMembers(ctx context.Context, actorID, workspaceID uuid.UUID) ([]*models.WorkspaceMember, error) {
	if _, err := s.members.require(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	list, err := s.workspaces.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, WrapInternal("failed to list members", err)
	}
	return list, nil
}
