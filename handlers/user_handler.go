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

// UserService is the part of services.UserService the HTTP layer uses
type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*models.User, error)
}

// UserHandler serves the authenticated user's own profile
type UserHandler struct {
	users  UserService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleGetMe handles GET /users/me
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}

	user, err := h.users.Me(r.Context(), actorID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}

// HandleUpdateMe handles PATCH /users/me
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeBody(w, r, dto.UpdateProfileSchema, &req, h.logger) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), actorID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}
