package services

import (
	"fmt"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
)

// TagService manages the global tag vocabulary.
type TagService struct {
	tagRepo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repositories.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

// List returns the whole tag vocabulary.
func (s *TagService) List() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

// Create adds a tag to the vocabulary. Admin only.
func (s *TagService) Create(tag *models.Tag, principal *models.Principal) (*models.Tag, error) {
	if principal == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("admin role required: %w", apperrors.ErrForbidden)
	}

	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}
