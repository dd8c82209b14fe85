package services

import (
	"fmt"
	"log"
	"time"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
	"blogapi/pkg/events"
)

// ArticleService handles business logic related to articles and their tags.
type ArticleService struct {
	articleRepo repositories.ArticleRepository
	tagRepo     repositories.TagRepository
	mqClient    *events.Client
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articleRepo repositories.ArticleRepository, tagRepo repositories.TagRepository, mqClient *events.Client) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		tagRepo:     tagRepo,
		mqClient:    mqClient,
	}
}

// Create persists a new article. The author is always the principal, never a
// client-supplied field.
func (s *ArticleService) Create(article *models.Article, tagIDs []uint, principal *models.Principal) (*models.Article, error) {
	if principal == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}

	tags, err := s.resolveTags(tagIDs)
	if err != nil {
		return nil, err
	}

	article.AuthorID = principal.ID
	if article.Status == "" {
		article.Status = models.StatusDraft
	}
	article.Tags = tags
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt

	saved, err := s.articleRepo.Save(article)
	if err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		payload := map[string]interface{}{"article_id": saved.ID, "author_id": saved.AuthorID, "title": saved.Title}
		if err := s.mqClient.Publish(events.ArticleCreated, payload); err != nil {
			log.Printf("Warning: failed to publish article created event for %d: %v", saved.ID, err)
		}
	}

	return saved, nil
}

// GetByID fetches an article and increments its view count. This is not a
// pure read: the bumped count is persisted before the article is returned.
func (s *ArticleService) GetByID(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Read-then-write; a lost update between two simultaneous fetches of the
	// same article is accepted.
	article.Views++
	return s.articleRepo.Save(article)
}

// List retrieves one page of articles.
func (s *ArticleService) List(page, size int) ([]models.Article, int64, error) {
	return s.articleRepo.GetAll(page, size)
}

// ListByAuthor retrieves one page of a single author's articles.
func (s *ArticleService) ListByAuthor(authorID uint, page, size int) ([]models.Article, int64, error) {
	return s.articleRepo.GetAllByAuthor(authorID, page, size)
}

// Update applies new content to an existing article and, when tagIDs is
// non-empty, replaces its tag set. An empty tagIDs keeps the stored tags
// untouched so a bare "update title only" request cannot wipe them.
func (s *ArticleService) Update(id uint, updated *models.Article, tagIDs []uint, principal *models.Principal) (*models.Article, error) {
	if principal == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}

	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && article.AuthorID != principal.ID {
		return nil, fmt.Errorf("not the article author: %w", apperrors.ErrForbidden)
	}

	tags, err := s.resolveTags(tagIDs)
	if err != nil {
		return nil, err
	}

	article.Title = updated.Title
	article.Content = updated.Content
	article.ImageURL = updated.ImageURL
	if updated.Status != "" {
		article.Status = updated.Status
	}
	article.Tags = tags
	article.UpdatedAt = time.Now()

	return s.articleRepo.Save(article)
}

// Delete removes an article. Only its author or an admin may delete it.
func (s *ArticleService) Delete(id uint, principal *models.Principal) error {
	if principal == nil {
		return fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}

	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !principal.IsAdmin() && article.AuthorID != principal.ID {
		return fmt.Errorf("not the article author: %w", apperrors.ErrForbidden)
	}

	return s.articleRepo.Delete(id)
}

// resolveTags maps tag IDs to stored tags. Unknown IDs are dropped rather
// than rejected; the association insert would skip them anyway.
func (s *ArticleService) resolveTags(tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.GetByIDs(tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	return tags, nil
}
