package repositories

import (
	"fmt"
	"sort"
	"sync"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository.
// It mirrors the GORM implementation's tag semantics: associations are stored
// separately from the article row and reconciled on Save.
type MockArticleRepository struct {
	articles map[uint]models.Article
	assoc    map[uint][]models.Tag
	nextID   uint
	mu       sync.RWMutex
}

// NewMockArticleRepository creates a new instance of MockArticleRepository.
func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		articles: make(map[uint]models.Article),
		assoc:    make(map[uint][]models.Tag),
		nextID:   1,
	}
}

// GetByID returns an article with its stored tag set.
func (r *MockArticleRepository) GetByID(id uint) (*models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	article, ok := r.articles[id]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, apperrors.ErrNotFound)
	}
	article.Tags = append([]models.Tag(nil), r.assoc[id]...)
	return &article, nil
}

// GetAll returns one page of articles ordered by ID descending.
func (r *MockArticleRepository) GetAll(page, size int) ([]models.Article, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.page(func(models.Article) bool { return true }, page, size)
}

// GetAllByAuthor returns one page of a single author's articles.
func (r *MockArticleRepository) GetAllByAuthor(authorID uint, page, size int) ([]models.Article, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.page(func(a models.Article) bool { return a.AuthorID == authorID }, page, size)
}

func (r *MockArticleRepository) page(match func(models.Article) bool, page, size int) ([]models.Article, int64, error) {
	all := make([]models.Article, 0, len(r.articles))
	for id, a := range r.articles {
		if match(a) {
			a.Tags = append([]models.Tag(nil), r.assoc[id]...)
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// Save stores the article row and reconciles tags: an empty set keeps the
// existing associations, a non-empty set replaces them with duplicates
// collapsed, matching the unique (article_id, tag_id) constraint.
func (r *MockArticleRepository) Save(article *models.Article) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if article.ID == 0 {
		article.ID = r.nextID
		r.nextID++
	}

	if len(article.Tags) > 0 {
		seen := make(map[uint]bool)
		replaced := make([]models.Tag, 0, len(article.Tags))
		for _, tag := range article.Tags {
			if seen[tag.ID] {
				continue
			}
			seen[tag.ID] = true
			replaced = append(replaced, tag)
		}
		sort.Slice(replaced, func(i, j int) bool { return replaced[i].ID < replaced[j].ID })
		r.assoc[article.ID] = replaced
	}

	stored := *article
	stored.Tags = nil
	r.articles[article.ID] = stored

	article.Tags = append([]models.Tag(nil), r.assoc[article.ID]...)
	return article, nil
}

// Delete removes an article and its tag associations.
func (r *MockArticleRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return fmt.Errorf("article %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.articles, id)
	delete(r.assoc, id)
	return nil
}
