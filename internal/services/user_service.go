package services

import (
	"fmt"
	"time"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles the user management surface used by admins and profile
// updates. Registration lives in AuthService.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Create adds a user with an explicit role. Admin only.
func (s *UserService) Create(user *models.User, principal *models.Principal) (*models.User, error) {
	if principal == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("admin role required: %w", apperrors.ErrForbidden)
	}
	if user.Role != models.RoleUser && user.Role != models.RoleAdmin {
		user.Role = models.RoleUser
	}

	exists, err := s.userRepo.ExistsByEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email %s already registered: %w", user.Email, apperrors.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.CreatedAt = time.Now()

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// List retrieves one page of users.
func (s *UserService) List(page, size int) ([]models.User, int64, error) {
	return s.userRepo.GetAll(page, size)
}

// GetByID retrieves a single user.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// Update changes a user's profile fields. Password and role are never touched
// by this path. A user may update themselves; admins may update anyone.
func (s *UserService) Update(id uint, updated *models.User, principal *models.Principal) (*models.User, error) {
	if principal == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	if !principal.IsAdmin() && principal.ID != id {
		return nil, fmt.Errorf("cannot update another user: %w", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.Username = updated.Username
	user.FirstName = updated.FirstName
	user.LastName = updated.LastName
	user.Email = updated.Email

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Admin only.
func (s *UserService) Delete(id uint, principal *models.Principal) error {
	if principal == nil {
		return fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	if !principal.IsAdmin() {
		return fmt.Errorf("admin role required: %w", apperrors.ErrForbidden)
	}
	return s.userRepo.Delete(id)
}
