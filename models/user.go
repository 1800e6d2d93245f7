package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a local account linked one-to-one to a Firebase identity
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FirebaseUID string    `json:"-" db:"firebase_uid"` // provider subject, unique
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User instance
func NewUser(firebaseUID, email, displayName string) *User {
	now := time.Now()
	return &User{
		ID:          uuid.New(),
		FirebaseUID: firebaseUID,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
