package models

import "time"

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Article represents a blog article. Tags are kept in an explicit join table
// (ArticleTag) and loaded by the repository, not by GORM association magic,
// because saving an article replaces the whole tag set in one pass.
type Article struct {
	ID        uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string        `json:"title" gorm:"type:varchar(255)" validate:"required"`
	Content   string        `json:"content" gorm:"type:text" validate:"required"`
	ImageURL  string        `json:"image_url" gorm:"type:varchar(512)"`
	Status    ArticleStatus `json:"status" gorm:"type:varchar(20)"`
	AuthorID  uint          `json:"author_id" gorm:"index"`
	Views     int           `json:"views"`
	Likes     int           `json:"likes"`
	Tags      []Tag         `json:"tags" gorm:"-"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ArticleTag is one association row linking an article to a tag. The composite
// primary key doubles as the uniqueness constraint that makes concurrent
// duplicate inserts safe.
type ArticleTag struct {
	ArticleID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID     uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName keeps the join table name aligned with the SQL schema.
func (ArticleTag) TableName() string {
	return "article_tags"
}
