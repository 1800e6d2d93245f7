package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

func TestNotificationService_MarkRead(t *testing.T) {
	owner := uuid.New()

	t.Run("own notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		n := models.NewNotification(owner, models.NotificationTaskAssigned, "Assigned", models.ResourceTask, uuid.New())
		repo.On("GetByID", mock.Anything, n.ID).Return(n, nil)
		repo.On("MarkRead", mock.Anything, n.ID).Return(nil)

		got, err := NewNotificationService(repo, zap.NewNop()).MarkRead(context.Background(), owner, n.ID)

		require.NoError(t, err)
		assert.True(t, got.IsRead())
		repo.AssertExpectations(t)
	})

	t.Run("already read is a no-op", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		n := models.NewNotification(owner, models.NotificationCommentAdded, "Comment", models.ResourceTask, uuid.New())
		readAt := time.Now().Add(-time.Hour)
		n.ReadAt = &readAt
		repo.On("GetByID", mock.Anything, n.ID).Return(n, nil)

		got, err := NewNotificationService(repo, zap.NewNop()).MarkRead(context.Background(), owner, n.ID)

		require.NoError(t, err)
		assert.Equal(t, readAt, *got.ReadAt)
		repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("someone else's notification looks missing", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		n := models.NewNotification(uuid.New(), models.NotificationTaskAssigned, "Assigned", models.ResourceTask, uuid.New())
		repo.On("GetByID", mock.Anything, n.ID).Return(n, nil)

		_, err := NewNotificationService(repo, zap.NewNop()).MarkRead(context.Background(), owner, n.ID)

		assert.ErrorIs(t, err, ErrNotificationNotFound)
		repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

		_, err := NewNotificationService(repo, zap.NewNop()).MarkRead(context.Background(), owner, id)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})
}

func TestNotificationService_ListForUser(t *testing.T) {
	repo := new(MockNotificationRepository)
	owner := uuid.New()
	page := repositories.Page{Limit: 20}
	repo.On("ListForUser", mock.Anything, owner, true, page).Return(nil, nil)

	list, err := NewNotificationService(repo, zap.NewNop()).ListForUser(context.Background(), owner, true, page)

	require.NoError(t, err)
	assert.NotNil(t, list)
	repo.AssertExpectations(t)
}
