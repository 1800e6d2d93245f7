package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

// ProjectService is the part of services.ProjectService the HTTP layer uses
type ProjectService interface {
	Create(ctx context.Context, actorID, workspaceID uuid.UUID, req dto.CreateProjectRequest) (*models.Project, error)
	ListByWorkspace(ctx context.Context, actorID, workspaceID uuid.UUID) ([]*models.Project, error)
	Get(ctx context.Context, actorID, projectID uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, actorID, projectID uuid.UUID, req dto.UpdateProjectRequest) (*models.Project, error)
	CreateBoard(ctx context.Context, actorID, projectID uuid.UUID, req dto.CreateBoardRequest) (*models.Board, error)
	ListBoards(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.Board, error)
}

// ProjectHandler handles project and board requests
type ProjectHandler struct {
	projects ProjectService
	logger   *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// HandleCreate handles POST /workspaces/{workspaceID}/projects
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(w, r, "workspaceID", h.logger)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !decodeBody(w, r, dto.CreateProjectSchema, &req, h.logger) {
		return
	}

	project, err := h.projects.Create(r.Context(), actorID, workspaceID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, project)
}

// HandleList handles GET /workspaces/{workspaceID}/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathUUID(w, r, "workspaceID", h.logger)
	if !ok {
		return
	}

	projects, err := h.projects.ListByWorkspace(r.Context(), actorID, workspaceID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, projects)
}

// HandleGet handles GET /projects/{projectID}
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUUID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), actorID, projectID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, project)
}

// HandleUpdate handles PATCH /projects/{projectID}
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUUID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !decodeBody(w, r, dto.UpdateProjectSchema, &req, h.logger) {
		return
	}

	project, err := h.projects.Update(r.Context(), actorID, projectID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, project)
}

// HandleCreateBoard handles POST /projects/{projectID}/boards
func (h *ProjectHandler) HandleCreateBoard(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUUID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if !decodeBody(w, r, dto.CreateBoardSchema, &req, h.logger) {
		return
	}

	board, err := h.projects.CreateBoard(r.Context(), actorID, projectID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, board)
}

// HandleListBoards handles GET /projects/{projectID}/boards
func (h *ProjectHandler) HandleListBoards(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUUID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	boards, err := h.projects.ListBoards(r.Context(), actorID, projectID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, boards)
}
