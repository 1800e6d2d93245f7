package auth

import (
	"context"
	"errors"

	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
)

// UserLookup is the slice of the user repository the resolver needs
type UserLookup interface {
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// StoreResolver resolves provider subjects through the user repository.
// It never creates users; provisioning happens out of band.
type StoreResolver struct {
	users UserLookup
}

// NewStoreResolver creates a resolver backed by the given lookup
func NewStoreResolver(users UserLookup) *StoreResolver {
	return &StoreResolver{users: users}
}

// ResolveUserID implements UserResolver
func (r *StoreResolver) ResolveUserID(ctx context.Context, subject string) (string, error) {
	user, err := r.users.GetByFirebaseUID(ctx, subject)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.ID.String(), nil
}
