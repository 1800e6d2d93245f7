package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

func TestUserService_UpdateProfile(t *testing.T) {
	repo := new(MockUserRepository)
	user := models.NewUser("p1", "a@x.com", "Ada")
	user.PhotoURL = "https://example.com/a.png"
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	name := " Ada L. "
	got, err := NewUserService(repo, zap.NewNop()).UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{
		DisplayName: &name,
		PhotoURL:    dto.Null[string](),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.DisplayName)
	assert.Empty(t, got.PhotoURL)
}

func TestUserService_Find(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())
	user := models.NewUser("p1", "a@x.com", "Ada")

	repo.On("GetByFirebaseUID", mock.Anything, "p1").Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, repositories.ErrNotFound)

	got, err := svc.Find(context.Background(), UserQuery{FirebaseUID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Find(context.Background(), UserQuery{Email: "ghost@x.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Find(context.Background(), UserQuery{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserService_Provision(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, repositories.ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.FirebaseUID == "p1" && u.Email == "a@x.com"
		})).Return(nil)

		got, err := NewUserService(repo, zap.NewNop()).Provision(context.Background(), ProvisionInput{
			FirebaseUID: "p1",
			Email:       "a@x.com",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, got.ID)
	})

	t.Run("email already provisioned", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(models.NewUser("p0", "a@x.com", "Ada"), nil)

		_, err := NewUserService(repo, zap.NewNop()).Provision(context.Background(), ProvisionInput{FirebaseUID: "p1", Email: "a@x.com"})

		assert.ErrorIs(t, err, ErrDuplicateEmail)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("firebase uid taken", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, repositories.ErrNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("create: %w", repositories.ErrConflict))

		_, err := NewUserService(repo, zap.NewNop()).Provision(context.Background(), ProvisionInput{FirebaseUID: "p1", Email: "a@x.com"})
		assert.True(t, IsConflictError(err))
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("email lookup failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection reset"))

		_, err := NewUserService(repo, zap.NewNop()).Provision(context.Background(), ProvisionInput{FirebaseUID: "p1", Email: "a@x.com"})
		assert.True(t, IsInternalError(err))
	})

	t.Run("invalid email", func(t *testing.T) {
		repo := new(MockUserRepository)

		_, err := NewUserService(repo, zap.NewNop()).Provision(context.Background(), ProvisionInput{FirebaseUID: "p1", Email: "not-an-email"})

		require.Error(t, err)
		assert.Equal(t, "must be a valid email", utils.GetValidationFields(err)["Email"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_LinkFirebaseUID(t *testing.T) {
	t.Run("relinks a stale mapping", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := models.NewUser("old", "a@x.com", "Ada")
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)
		repo.On("LinkFirebaseUID", mock.Anything, user.ID, "p1").Return(nil)

		got, err := NewUserService(repo, zap.NewNop()).LinkFirebaseUID(context.Background(), "a@x.com", "p1")

		require.NoError(t, err)
		assert.Equal(t, "p1", got.FirebaseUID)
	})

	t.Run("already linked", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := models.NewUser("p1", "a@x.com", "Ada")
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)

		_, err := NewUserService(repo, zap.NewNop()).LinkFirebaseUID(context.Background(), "a@x.com", "p1")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "LinkFirebaseUID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("subject owned by another user", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := models.NewUser("old", "a@x.com", "Ada")
		repo.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)
		repo.On("LinkFirebaseUID", mock.Anything, user.ID, "p1").Return(fmt.Errorf("link: %w", repositories.ErrConflict))

		_, err := NewUserService(repo, zap.NewNop()).LinkFirebaseUID(context.Background(), "a@x.com", "p1")
		assert.True(t, IsConflictError(err))
	})
}
