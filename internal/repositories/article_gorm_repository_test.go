package repositories_test

import (
	"fmt"
	"testing"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a private in-memory SQLite database. cache=shared keeps the
// pooled connections looking at the same data.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Article{}, &models.Tag{}, &models.ArticleTag{}, &models.Comment{}))
	return db
}

func seedTags(t *testing.T, db *gorm.DB, names ...string) []models.Tag {
	t.Helper()
	tagRepo := repositories.NewGORMTagRepository(db)
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		require.NoError(t, tagRepo.Create(&tag))
		tags = append(tags, tag)
	}
	return tags
}

func assocCount(t *testing.T, db *gorm.DB, articleID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ArticleTag{}).Where("article_id = ?", articleID).Count(&count).Error)
	return count
}

func TestGORMArticleRepository_SaveWithTags(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	tags := seedTags(t, db, "go", "fiber", "gorm")

	article := models.Article{
		Title:   "first",
		Content: "body",
		Status:  models.StatusPublished,
		Tags:    []models.Tag{tags[0], tags[1]},
	}

	saved, err := repo.Save(&article)
	require.NoError(t, err)
	assert.Len(t, saved.Tags, 2)
	assert.Equal(t, int64(2), assocCount(t, db, saved.ID))

	// Saving the same set again leaves exactly the same rows.
	saved.Tags = []models.Tag{tags[0], tags[1]}
	saved, err = repo.Save(saved)
	require.NoError(t, err)
	assert.Len(t, saved.Tags, 2)
	assert.Equal(t, int64(2), assocCount(t, db, saved.ID))
}

func TestGORMArticleRepository_SaveEmptyTagsKeepsSet(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	tags := seedTags(t, db, "go", "fiber")

	article := models.Article{Title: "t", Content: "c", Tags: tags}
	saved, err := repo.Save(&article)
	require.NoError(t, err)
	require.Len(t, saved.Tags, 2)

	// An update that does not mention tags must not clear them.
	saved.Title = "renamed"
	saved.Tags = nil
	saved, err = repo.Save(saved)
	require.NoError(t, err)
	assert.Equal(t, "renamed", saved.Title)
	assert.Len(t, saved.Tags, 2)
	assert.Equal(t, int64(2), assocCount(t, db, saved.ID))
}

func TestGORMArticleRepository_SaveReplacesTags(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	tags := seedTags(t, db, "go", "fiber", "gorm")

	article := models.Article{Title: "t", Content: "c", Tags: []models.Tag{tags[0], tags[1]}}
	saved, err := repo.Save(&article)
	require.NoError(t, err)

	saved.Tags = []models.Tag{tags[2]}
	saved, err = repo.Save(saved)
	require.NoError(t, err)
	require.Len(t, saved.Tags, 1)
	assert.Equal(t, tags[2].ID, saved.Tags[0].ID)
	assert.Equal(t, int64(1), assocCount(t, db, saved.ID))
}

func TestGORMArticleRepository_SaveDuplicateTagIDs(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	tags := seedTags(t, db, "go")

	// The same tag twice in the input hits the unique (article_id, tag_id)
	// constraint; the second insert is a no-op, not an error.
	article := models.Article{Title: "t", Content: "c", Tags: []models.Tag{tags[0], tags[0]}}
	saved, err := repo.Save(&article)
	require.NoError(t, err)
	assert.Len(t, saved.Tags, 1)
	assert.Equal(t, int64(1), assocCount(t, db, saved.ID))
}

func TestGORMArticleRepository_GetByID(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	tags := seedTags(t, db, "go")

	article := models.Article{Title: "t", Content: "c", Tags: tags}
	saved, err := repo.Save(&article)
	require.NoError(t, err)

	got, err := repo.GetByID(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Len(t, got.Tags, 1)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGORMArticleRepository_Delete(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	tags := seedTags(t, db, "go")

	article := models.Article{Title: "t", Content: "c", Tags: tags}
	saved, err := repo.Save(&article)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(saved.ID))
	assert.Equal(t, int64(0), assocCount(t, db, saved.ID))

	_, err = repo.GetByID(saved.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(saved.ID), apperrors.ErrNotFound)
}

func TestGORMArticleRepository_ListByAuthor(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)

	for i := 0; i < 3; i++ {
		_, err := repo.Save(&models.Article{Title: fmt.Sprintf("a%d", i), Content: "c", AuthorID: 1})
		require.NoError(t, err)
	}
	_, err := repo.Save(&models.Article{Title: "other", Content: "c", AuthorID: 2})
	require.NoError(t, err)

	articles, total, err := repo.GetAllByAuthor(1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, articles, 3)

	articles, total, err = repo.GetAll(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, articles, 2)
}
