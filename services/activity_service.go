package services

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

// ActivityService writes and reads the per-workspace activity feed
type ActivityService struct {
	activity repositories.ActivityRepository
	members  *membership
	logger   *zap.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activity repositories.ActivityRepository, workspaces repositories.WorkspaceRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activity: activity,
		members:  newMembership(workspaces),
		logger:   logger,
	}
}

// Record stores an entry. It is best effort: failures are logged and never returned,
// so a broken feed cannot fail the write that produced it.
func (s *ActivityService) Record(ctx context.Context, entry *models.ActivityLog) {
	if entry.RequestID == "" {
		entry.RequestID = chimw.GetReqID(ctx)
	}
	if err := s.activity.Insert(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("request_id", entry.RequestID),
			zap.String("action", string(entry.Action)),
			zap.String("resource_id", entry.ResourceID.String()),
			zap.Error(err))
	}
}

// ListForWorkspace returns the feed newest first; the actor must be a member
func (s *ActivityService) ListForWorkspace(ctx context.Context, actorID, workspaceID uuid.UUID, page repositories.Page) ([]*models.ActivityLog, error) {
	if _, err := s.members.require(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}

	logs, err := s.activity.ListByWorkspace(ctx, workspaceID, page)
	if err != nil {
		return nil, fromRepository(err, ErrWorkspaceNotFound, "list activity")
	}
	return logs, nil
}
