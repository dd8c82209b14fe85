package repositories

import "blogapi/internal/models"

// TagRepository defines the interface for tag data access.
type TagRepository interface {
	Create(tag *models.Tag) error
	GetAll() ([]models.Tag, error)
	GetByIDs(ids []uint) ([]models.Tag, error)
}
