package repositories

import (
	"fmt"
	"sort"
	"sync"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// MockTagRepository is an in-memory implementation of TagRepository.
type MockTagRepository struct {
	tags   map[uint]models.Tag
	nextID uint
	mu     sync.RWMutex
}

// NewMockTagRepository creates a new instance of MockTagRepository.
func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{
		tags:   make(map[uint]models.Tag),
		nextID: 1,
	}
}

// Create adds a new tag; duplicate names conflict.
func (r *MockTagRepository) Create(tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tags {
		if t.Name == tag.Name {
			return fmt.Errorf("tag %q: %w", tag.Name, apperrors.ErrConflict)
		}
	}
	if tag.ID == 0 {
		tag.ID = r.nextID
		r.nextID++
	}
	r.tags[tag.ID] = *tag
	return nil
}

// GetAll returns all tags sorted by name.
func (r *MockTagRepository) GetAll() ([]models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// GetByIDs returns the tags matching the given IDs. Repeated IDs yield one
// tag, like a SQL IN clause.
func (r *MockTagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[uint]bool, len(ids))
	var out []models.Tag
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if t, ok := r.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
