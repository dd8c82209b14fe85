package repositories

import "blogapi/internal/models"

// ArticleRepository defines the interface for article data access.
//
// Save persists the article row and reconciles its tag associations: an empty
// Tags slice leaves the stored associations untouched, a non-empty slice
// replaces them wholesale. Either way the returned article carries the tag
// set as stored after the call.
type ArticleRepository interface {
	GetByID(id uint) (*models.Article, error)
	GetAll(page, size int) ([]models.Article, int64, error)
	GetAllByAuthor(authorID uint, page, size int) ([]models.Article, int64, error)
	Save(article *models.Article) (*models.Article, error)
	Delete(id uint) error
}
