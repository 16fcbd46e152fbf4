package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the username does not exist so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("relief-dummy-password"), bcrypt.DefaultCost)

// AuthService is the credential store: registration and password verification.
type AuthService struct {
	userRepo repository.UserRepository
	hashCost int
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=5,max=72"`
	FirstName   string `json:"first_name" validate:"max=100"`
	LastName    string `json:"last_name" validate:"max=100"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
}

// Register creates a new active user after checking username and email uniqueness.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	trim(&input.Username, &input.Email, &input.FirstName, &input.LastName, &input.PhoneNumber)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.checkAvailable(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		CreatedAt:    s.now().UTC(),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration; report which field collided.
			if conflict := s.checkAvailable(ctx, input.Username, input.Email); conflict != nil {
				return nil, conflict
			}
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: failed to create user: %v", ErrInternal, err)
	}

	return user, nil
}

// checkAvailable returns the conflict error for a taken username or email.
func (s *AuthService) checkAvailable(ctx context.Context, username, email string) error {
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%w: failed to check username: %v", ErrInternal, err)
	}
	if taken {
		return ErrDuplicateUsername
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: failed to check email: %v", ErrInternal, err)
	}
	if taken {
		return ErrDuplicateEmail
	}

	return nil
}

// VerifyCredentials returns the user only when the password matches. Unknown
// usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to find user: %v", ErrInternal, err)
	}

	// Case-insensitive collations (MySQL's default) match "ALICE" to "alice".
	if user.Username != username {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: failed to find user: %v", ErrInternal, err)
	}

	return user, nil
}
