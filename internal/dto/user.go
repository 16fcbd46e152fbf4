package dto

import (
	"time"

	"github.com/yukikurage/disaster-relief-api/internal/models"
)

// UserDTO represents a record owner in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// ProfileDTO represents the signed-in user's own profile
type ProfileDTO struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToProfileDTO converts a User model to ProfileDTO
func ToProfileDTO(user models.User) ProfileDTO {
	return ProfileDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
		IsActive:    user.IsActive,
	}
}

// ownerDTO returns the preloaded owner, or nil when the relation was not loaded
func ownerDTO(user models.User) *UserDTO {
	if user.ID == 0 {
		return nil
	}
	owner := ToUserDTO(user)
	return &owner
}
