package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

// WorkspaceService is the part of services.WorkspaceService the HTTP layer uses
type WorkspaceService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateWorkspaceRequest) (*models.Workspace, error)
	ListForUser(ctx context.Context, actorID uuid.UUID) ([]*models.Workspace, error)
	Get(ctx context.Context, actorID, workspaceID uuid.UUID) (*models.Workspace, error)
	AddMember(ctx context.Context, actorID, workspaceID uuid.UUID, req dto.AddWorkspaceMemberRequest) (*models.WorkspaceMember, error)
	ListMembers(ctx context.Context, actorID, workspaceID uuid.UUID) ([]*models.WorkspaceMember, error)
}

// ActivityService lists a workspace's audit trail
type ActivityService interface {
	ListForWorkspace(ctx context.Context, actorID, workspaceID uuid.UUID, page repositories.Page) ([]*models.ActivityLog, error)
}

// WorkspaceHandler handles workspace, membership and activity requests
type WorkspaceHandler struct {
	workspaces WorkspaceService
	activity   ActivityService
	logger     *zap.Logger
}

// NewWorkspaceHandler creates a new WorkspaceHandler
func NewWorkspaceHandler(workspaces WorkspaceService, activity ActivityService, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaces: workspaces,
		activity:   activity,
		logger:     logger,
	}
}

// HandleCreate handles POST /workspaces
func (h *WorkspaceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if !decodeBody(w, r, dto.CreateWorkspaceSchema, &req, h.logger) {
		return
	}

	ws, err := h.workspaces.Create(r.Context(), actorID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, ws)
}

// HandleList handles GET /workspaces
func (h *WorkspaceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}

	list, err := h.workspaces.ListForUser(r.Context(), actorID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleGet handles GET /workspaces/{workspaceID}
func (h *WorkspaceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(w, r, "workspaceID", h.logger)
	if !ok {
		return
	}

	ws, err := h.workspaces.Get(r.Context(), actorID, workspaceID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, ws)
}

// HandleAddMember handles POST /workspaces/{workspaceID}/members
func (h *WorkspaceHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(w, r, "workspaceID", h.logger)
	if !ok {
		return
	}

	var req dto.AddWorkspaceMemberRequest
	if !decodeBody(w, r, dto.AddWorkspaceMemberSchema, &req, h.logger) {
		return
	}

	member, err := h.workspaces.AddMember(r.Context(), actorID, workspaceID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, member)
}

// HandleListMembers handles GET /workspaces/{workspaceID}/members
func (h *WorkspaceHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(w, r, "workspaceID", h.logger)
	if !ok {
		return
	}

	members, err := h.workspaces.ListMembers(r.Context(), actorID, workspaceID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, members)
}

// HandleListActivity handles GET /workspaces/{workspaceID}/activity
func (h *WorkspaceHandler) HandleListActivity(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(w, r, "workspaceID", h.logger)
	if !ok {
		return
	}
	page, err := parsePage(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	entries, err := h.activity.ListForWorkspace(r.Context(), actorID, workspaceID, page)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, entries)
}
