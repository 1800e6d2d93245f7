package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

// NotificationService is the part of services.NotificationService the HTTP layer uses
type NotificationService interface {
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page repositories.Page) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error)
}

// NotificationHandler serves the caller's own notifications
type NotificationHandler struct {
	notifications NotificationService
	logger        *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// HandleList handles GET /notifications?unread=&limit=&offset=
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}

	unreadOnly := false
	if v := r.URL.Query().Get("unread"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			HandleServiceError(w, utils.NewFieldValidationError([]utils.FieldError{{
				Field: "unread", Code: utils.CodeType, Message: "must be a boolean",
			}}), h.logger)
			return
		}
		unreadOnly = b
	}
	page, err := parsePage(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	list, err := h.notifications.ListForUser(r.Context(), actorID, unreadOnly, page)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleMarkRead handles POST /notifications/{notificationID}/read
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	notificationID, ok := pathUUID(w, r, "notificationID", h.logger)
	if !ok {
		return
	}

	n, err := h.notifications.MarkRead(r.Context(), actorID, notificationID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, n)
}
