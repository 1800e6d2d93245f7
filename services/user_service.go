package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

// UserService reads and maintains local user records
type UserService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// ProvisionInput describes a user created out of band
type ProvisionInput struct {
	FirebaseUID string `validate:"required,max=128"`
	Email       string `validate:"required,email"`
	DisplayName string `validate:"max=100"`
	PhotoURL    string `validate:"omitempty,http_url"`
}

// UserQuery selects a user by exactly one of its keys
type UserQuery struct {
	ID          uuid.UUID
	FirebaseUID string
	Email       string
}

// Me returns the local record behind the authenticated principal
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fromRepository(err, ErrUserNotFound, "get user")
	}
	return user, nil
}

// UpdateProfile changes display name and photo
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fromRepository(err, ErrUserNotFound, "get user")
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.PhotoURL.Set {
		user.PhotoURL = ""
		if req.PhotoURL.Value != nil {
			user.PhotoURL = *req.PhotoURL.Value
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fromRepository(err, ErrUserNotFound, "update user")
	}
	return user, nil
}

// Find looks a user up by ID, Firebase subject or email, in that order of preference
func (s *UserService) Find(ctx context.Context, q UserQuery) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case q.ID != uuid.Nil:
		user, err = s.users.GetByID(ctx, q.ID)
	case q.FirebaseUID != "":
		user, err = s.users.GetByFirebaseUID(ctx, q.FirebaseUID)
	case q.Email != "":
		user, err = s.users.GetByEmail(ctx, q.Email)
	default:
		return nil, ErrInvalidInput
	}
	if err != nil {
		return nil, fromRepository(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

// Provision creates the local record for a Firebase identity
func (s *UserService) Provision(ctx context.Context, in ProvisionInput) (*models.User, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	switch _, err := s.users.GetByEmail(ctx, email); {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, WrapInternal("failed to check email", err)
	}

	user := models.NewUser(in.FirebaseUID, email, strings.TrimSpace(in.DisplayName))
	user.PhotoURL = in.PhotoURL

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fromRepository(err, ErrUserNotFound, "provision user")
	}

	s.logger.Info("user provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	return user, nil
}

// LinkFirebaseUID points the user with the given email at a Firebase subject.
// It repairs records whose mapping is missing or stale.
func (s *UserService) LinkFirebaseUID(ctx context.Context, email, firebaseUID string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fromRepository(err, ErrUserNotFound, "find user")
	}
	if user.FirebaseUID == firebaseUID {
		return user, nil
	}

	if err := s.users.LinkFirebaseUID(ctx, user.ID, firebaseUID); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, NewDomainError(ErrorTypeConflict, "firebase uid is linked to another user", err)
		}
		return nil, fromRepository(err, ErrUserNotFound, "link firebase uid")
	}

	s.logger.Info("firebase uid relinked",
		zap.String("user_id", user.ID.String()),
		zap.String("previous_firebase_uid", user.FirebaseUID))
	user.FirebaseUID = firebaseUID
	return user, nil
}
