package domain

import (
	"context"

	"job-portal-backend/pkg/datex"
)

type User struct {
	ID           int64      `json:"userID"`
	FullName     string     `json:"fullName"`
	EmailAddr    string     `json:"emailAddr"`
	PhoneNumber  string     `json:"phoneNumber"`
	PasswordHash string     `json:"-"`
	Sex          string     `json:"sex"`
	BirthDate    datex.Date `json:"birthDate"`
	Address      *string    `json:"address"`
}

// RegisterUserInput is the registration payload shared by createUser and
// applyAsNewCandidate. Password strength is checked by the usecase after
// the uniqueness check, so only presence is validated here.
type RegisterUserInput struct {
	FullName    string     `json:"fullName" validate:"required,max=255,valid_name,no_emoji"`
	EmailAddr   string     `json:"emailAddr" validate:"required,email,max=255"`
	PhoneNumber string     `json:"phoneNumber" validate:"required,valid_phone"`
	Password    string     `json:"password" validate:"required"`
	Sex         string     `json:"sex" validate:"max=10"`
	BirthDate   datex.Date `json:"birthDate"`
	Address     *string    `json:"address" validate:"omitempty,max=255"`
}

// ContactUpdate replaces a user's contact fields during a full profile update.
type ContactUpdate struct {
	FullName    string
	EmailAddr   string
	PhoneNumber string
	Address     *string
}

type UserRepository interface {
	// Create inserts u and sets u.ID. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	UpdateContact(ctx context.Context, id int64, c ContactUpdate) error
}
