package repositories

import (
	"errors"
	"fmt"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"

	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create creates a new comment in the database.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by its ID from the database.
func (r *GORMCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by ID %d: %w", id, err)
	}
	return &comment, nil
}

// GetByArticle retrieves one page of an article's comments, oldest first.
func (r *GORMCommentRepository) GetByArticle(articleID uint, page, size int) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).Where("article_id = ?", articleID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	var comments []models.Comment
	if err := query.Order("created_at").Offset(page * size).Limit(size).Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// Delete deletes a comment by its ID from the database.
func (r *GORMCommentRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
