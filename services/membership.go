package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
)

// membership gates access to workspace-scoped resources
type membership struct {
	workspaces repositories.WorkspaceRepository
}

func newMembership(workspaces repositories.WorkspaceRepository) *membership {
	return &membership{workspaces: workspaces}
}

// require returns the actor's membership. A missing workspace is ErrWorkspaceNotFound,
// an existing workspace the actor does not belong to is ErrNotMember.
func (m *membership) require(ctx context.Context, workspaceID, actorID uuid.UUID) (*models.WorkspaceMember, error) {
	member, err := m.workspaces.GetMember(ctx, workspaceID, actorID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, WrapInternal("failed to load membership", err)
	}

	if _, err := m.workspaces.GetByID(ctx, workspaceID); err != nil {
		return nil, fromRepository(err, ErrWorkspaceNotFound, "get workspace")
	}
	return nil, ErrNotMember
}

// requireWriter additionally rejects viewers
func (m *membership) requireWriter(ctx context.Context, workspaceID, actorID uuid.UUID) (*models.WorkspaceMember, error) {
	member, err := m.require(ctx, workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !member.CanWrite() {
		return nil, ErrInsufficientPermissions
	}
	return member, nil
}

// requireManager rejects everyone but owners and admins
func (m *membership) requireManager(ctx context.Context, workspaceID, actorID uuid.UUID) (*models.WorkspaceMember, error) {
	member, err := m.require(ctx, workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !member.CanManageMembers() {
		return nil, ErrInsufficientPermissions
	}
	return member, nil
}
