package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

// ProjectService manages projects and their boards
type ProjectService struct {
	projects repositories.ProjectRepository
	boards   repositories.BoardRepository
	members  *membership
	activity *ActivityService
	logger   *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects repositories.ProjectRepository,
	boards repositories.BoardRepository,
	workspaces repositories.WorkspaceRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		boards:   boards,
		members:  newMembership(workspaces),
		activity: activity,
		logger:   logger,
	}
}

// Create adds a project to a workspace; viewers may not create
func (s *ProjectService) Create(ctx context.Context, actorID, workspaceID uuid.UUID, req dto.CreateProjectRequest) (*models.Project, error) {
	if _, err := s.members.requireWriter(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}

	project := models.NewProject(workspaceID, strings.TrimSpace(req.Name), req.Description, actorID)
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fromRepository(err, ErrWorkspaceNotFound, "create project")
	}

	s.activity.Record(ctx, models.NewActivityLog(workspaceID, actorID, models.ActivityProjectCreated, models.ResourceProject, project.ID).
		WithDetails(map[string]interface{}{"name": project.Name}))
	return project, nil
}

// ListByWorkspace returns a workspace's projects
func (s *ProjectService) ListByWorkspace(ctx context.Context, actorID, workspaceID uuid.UUID) ([]*models.Project, error) {
	if _, err := s.members.require(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	list, err := s.projects.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, WrapInternal("failed to list projects", err)
	}
	if list == nil {
		list = []*models.Project{}
	}
	return list, nil
}

// Get returns a project the actor can see
func (s *ProjectService) Get(ctx context.Context, actorID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fromRepository(err, ErrProjectNotFound, "get project")
	}
	if _, err := s.members.require(ctx, project.WorkspaceID, actorID); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies a partial update; setting status to archived archives the project
func (s *ProjectService) Update(ctx context.Context, actorID, projectID uuid.UUID, req dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fromRepository(err, ErrProjectNotFound, "get project")
	}
	if _, err := s.members.requireWriter(ctx, project.WorkspaceID, actorID); err != nil {
		return nil, err
	}

	changed := []string{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrBlankProjectName
		}
		project.Name = name
		changed = append(changed, "name")
	}
	if req.Description != nil {
		project.Description = *req.Description
		changed = append(changed, "description")
	}
	if req.Status != nil && *req.Status != project.Status {
		project.Status = *req.Status
		changed = append(changed, "status")
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fromRepository(err, ErrProjectNotFound, "update project")
	}

	s.activity.Record(ctx, models.NewActivityLog(project.WorkspaceID, actorID, models.ActivityProjectUpdated, models.ResourceProject, project.ID).
		WithDetails(map[string]interface{}{"fields": changed}))
	return project, nil
}

// CreateBoard adds a board to an active project
func (s *ProjectService) CreateBoard(ctx context.Context, actorID, projectID uuid.UUID, req dto.CreateBoardRequest) (*models.Board, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fromRepository(err, ErrProjectNotFound, "get project")
	}
	if _, err := s.members.requireWriter(ctx, project.WorkspaceID, actorID); err != nil {
		return nil, err
	}
	if project.IsArchived() {
		return nil, ErrProjectArchived
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		existing, err := s.boards.ListByProject(ctx, projectID)
		if err != nil {
			return nil, WrapInternal("failed to list boards", err)
		}
		position = len(existing)
	}

	board := models.NewBoard(project, strings.TrimSpace(req.Name), position)
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fromRepository(err, ErrProjectNotFound, "create board")
	}

	s.activity.Record(ctx, models.NewActivityLog(project.WorkspaceID, actorID, models.ActivityBoardCreated, models.ResourceBoard, board.ID).
		WithDetails(map[string]interface{}{"name": board.Name, "project_id": project.ID.String()}))
	return board, nil
}

// ListBoards returns a project's boards ordered by position
func (s *ProjectService) ListBoards(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.Board, error) {
	project, err := s.Get(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	list, err := s.boards.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, WrapInternal("failed to list boards", err)
	}
	if list == nil {
		list = []*models.Board{}
	}
	return list, nil
}
