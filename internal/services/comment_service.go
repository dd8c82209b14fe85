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

// CommentService handles business logic related to comments.
type CommentService struct {
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	mqClient    *events.Client
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, mqClient *events.Client) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		mqClient:    mqClient,
	}
}

// Add attaches a new comment to an article. The author is always the
// principal, never a client-supplied field.
func (s *CommentService) Add(comment *models.Comment, principal *models.Principal) (*models.Comment, error) {
	if principal == nil {
		return nil, fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}

	comment.AuthorID = principal.ID
	comment.CreatedAt = time.Now()

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		payload := map[string]interface{}{"comment_id": comment.ID, "article_id": comment.ArticleID, "author_id": comment.AuthorID}
		if err := s.mqClient.Publish(events.CommentAdded, payload); err != nil {
			log.Printf("Warning: failed to publish comment added event for %d: %v", comment.ID, err)
		}
	}

	return comment, nil
}

// ListByArticle retrieves one page of an article's comments.
func (s *CommentService) ListByArticle(articleID uint, page, size int) ([]models.Comment, int64, error) {
	return s.commentRepo.GetByArticle(articleID, page, size)
}

// Delete removes a comment. The check order is fixed: resolve the principal,
// resolve the comment, then compare ownership, so a caller always learns
// "not found" before "forbidden" for a nonexistent target.
func (s *CommentService) Delete(id uint, principal *models.Principal) error {
	if principal == nil {
		return fmt.Errorf("authentication required: %w", apperrors.ErrUnauthorized)
	}
	if _, err := s.userRepo.GetByID(principal.ID); err != nil {
		return fmt.Errorf("unknown user %d: %w", principal.ID, apperrors.ErrUnauthorized)
	}

	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment.AuthorID != principal.ID {
		return fmt.Errorf("you can only delete your own comments: %w", apperrors.ErrForbidden)
	}

	return s.commentRepo.Delete(id)
}
