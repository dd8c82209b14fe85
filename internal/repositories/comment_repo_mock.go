package repositories

import (
	"fmt"
	"sort"
	"sync"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// MockCommentRepository is an in-memory implementation of CommentRepository.
type MockCommentRepository struct {
	comments map[uint]models.Comment
	nextID   uint
	mu       sync.RWMutex
}

// NewMockCommentRepository creates a new instance of MockCommentRepository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[uint]models.Comment),
		nextID:   1,
	}
}

// Create adds a new comment, assigning an ID if missing.
func (r *MockCommentRepository) Create(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == 0 {
		comment.ID = r.nextID
		r.nextID++
	}
	r.comments[comment.ID] = *comment
	return nil
}

// GetByID returns a comment by ID.
func (r *MockCommentRepository) GetByID(id uint) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %d: %w", id, apperrors.ErrNotFound)
	}
	return &comment, nil
}

// GetByArticle returns one page of an article's comments ordered by ID.
func (r *MockCommentRepository) GetByArticle(articleID uint, page, size int) ([]models.Comment, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Comment, 0)
	for _, c := range r.comments {
		if c.ArticleID == articleID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

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

// Delete removes a comment by ID.
func (r *MockCommentRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return fmt.Errorf("comment %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.comments, id)
	return nil
}
