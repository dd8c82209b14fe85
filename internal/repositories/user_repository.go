package repositories

import "blogapi/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	GetAll(page, size int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}
