package repositories

import (
	"errors"
	"fmt"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMArticleRepository is a GORM implementation of ArticleRepository.
type GORMArticleRepository struct {
	db *gorm.DB
}

// NewGORMArticleRepository creates a new instance of GORMArticleRepository.
func NewGORMArticleRepository(db *gorm.DB) *GORMArticleRepository {
	return &GORMArticleRepository{
		db: db,
	}
}

// GetByID retrieves a single article with its tag set loaded.
func (r *GORMArticleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by ID %d: %w", id, err)
	}
	if err := r.loadTags(r.db, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// GetAll retrieves one page of articles, newest first, with tags loaded.
func (r *GORMArticleRepository) GetAll(page, size int) ([]models.Article, int64, error) {
	return r.list(r.db.Model(&models.Article{}), page, size)
}

// GetAllByAuthor retrieves one page of a single author's articles.
func (r *GORMArticleRepository) GetAllByAuthor(authorID uint, page, size int) ([]models.Article, int64, error) {
	return r.list(r.db.Model(&models.Article{}).Where("author_id = ?", authorID), page, size)
}

func (r *GORMArticleRepository) list(query *gorm.DB, page, size int) ([]models.Article, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	var articles []models.Article
	if err := query.Order("created_at DESC").Offset(page * size).Limit(size).Find(&articles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	for i := range articles {
		if err := r.loadTags(r.db, &articles[i]); err != nil {
			return nil, 0, err
		}
	}
	return articles, total, nil
}

// Save persists the article row and reconciles the article_tags rows in one
// transaction so a failure between the delete and insert phases cannot leave
// a partially replaced tag set.
//
// An empty article.Tags leaves existing associations untouched; a non-empty
// set is applied with replace-all semantics. Inserts ignore duplicate-key
// conflicts, so duplicate tag IDs in the input and concurrent retries of the
// same replace are both no-ops.
func (r *GORMArticleRepository) Save(article *models.Article) (*models.Article, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return fmt.Errorf("failed to save article: %w", err)
		}

		if len(article.Tags) == 0 {
			return nil
		}

		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
			return fmt.Errorf("failed to clear article tags: %w", err)
		}
		for _, tag := range article.Tags {
			assoc := models.ArticleTag{ArticleID: article.ID, TagID: tag.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assoc).Error; err != nil {
				return fmt.Errorf("failed to link tag %d: %w", tag.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.loadTags(r.db, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete deletes an article and its tag associations.
func (r *GORMArticleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return fmt.Errorf("failed to clear article tags: %w", err)
		}
		res := tx.Delete(&models.Article{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete article: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("article %d: %w", id, apperrors.ErrNotFound)
		}
		return nil
	})
}

// loadTags replaces article.Tags with the stored association set.
func (r *GORMArticleRepository) loadTags(db *gorm.DB, article *models.Article) error {
	var tags []models.Tag
	err := db.
		Joins("INNER JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("article_tags.article_id = ?", article.ID).
		Order("tags.id").
		Find(&tags).Error
	if err != nil {
		return fmt.Errorf("failed to load tags for article %d: %w", article.ID, err)
	}
	article.Tags = tags
	return nil
}
