package services_test

import (
	"testing"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
	"blogapi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*services.CommentService, *repositories.MockUserRepository, *models.Principal, *models.Principal) {
	t.Helper()
	commentRepo := repositories.NewMockCommentRepository()
	userRepo := repositories.NewMockUserRepository()

	alice := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	bob := models.User{Username: "bob", Email: "bob@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, userRepo.Create(&alice))
	require.NoError(t, userRepo.Create(&bob))

	svc := services.NewCommentService(commentRepo, userRepo, nil)
	return svc,
		userRepo,
		&models.Principal{ID: alice.ID, Email: alice.Email, Role: alice.Role},
		&models.Principal{ID: bob.ID, Email: bob.Email, Role: bob.Role}
}

func TestCommentService_Add(t *testing.T) {
	svc, _, alice, _ := newCommentFixture(t)

	comment := models.Comment{
		Content:   "nice article",
		ArticleID: 5,
		AuthorID:  999, // client-supplied author must be ignored
	}

	saved, err := svc.Add(&comment, alice)
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, saved.AuthorID)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestCommentService_Add_RequiresPrincipal(t *testing.T) {
	svc, _, _, _ := newCommentFixture(t)

	_, err := svc.Add(&models.Comment{Content: "hi", ArticleID: 1}, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCommentService_Delete(t *testing.T) {
	svc, _, alice, bob := newCommentFixture(t)

	comment := models.Comment{Content: "mine", ArticleID: 1}
	_, err := svc.Add(&comment, alice)
	require.NoError(t, err)

	// No principal.
	assert.ErrorIs(t, svc.Delete(comment.ID, nil), apperrors.ErrUnauthorized)

	// Another user's comment.
	assert.ErrorIs(t, svc.Delete(comment.ID, bob), apperrors.ErrForbidden)

	// A nonexistent comment is NotFound regardless of who asks.
	assert.ErrorIs(t, svc.Delete(999, alice), apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(999, bob), apperrors.ErrNotFound)

	// The author deletes it exactly once; the second attempt is NotFound,
	// not Forbidden.
	assert.NoError(t, svc.Delete(comment.ID, alice))
	assert.ErrorIs(t, svc.Delete(comment.ID, alice), apperrors.ErrNotFound)
}

func TestCommentService_Delete_DeletedUser(t *testing.T) {
	svc, userRepo, alice, _ := newCommentFixture(t)

	comment := models.Comment{Content: "orphaned", ArticleID: 1}
	_, err := svc.Add(&comment, alice)
	require.NoError(t, err)

	// The principal's account disappears between authentication and the
	// delete; the operation degrades to unauthorized.
	require.NoError(t, userRepo.Delete(alice.ID))
	assert.ErrorIs(t, svc.Delete(comment.ID, alice), apperrors.ErrUnauthorized)
}

func TestCommentService_ListByArticle(t *testing.T) {
	svc, _, alice, bob := newCommentFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Add(&models.Comment{Content: "c", ArticleID: 1}, alice)
		require.NoError(t, err)
	}
	_, err := svc.Add(&models.Comment{Content: "other article", ArticleID: 2}, bob)
	require.NoError(t, err)

	comments, total, err := svc.ListByArticle(1, 0, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, comments, 2)

	comments, _, err = svc.ListByArticle(1, 1, 2)
	assert.NoError(t, err)
	assert.Len(t, comments, 1)
}
