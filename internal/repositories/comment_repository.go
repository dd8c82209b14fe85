package repositories

import "blogapi/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	GetByArticle(articleID uint, page, size int) ([]models.Comment, int64, error)
	Delete(id uint) error
}
