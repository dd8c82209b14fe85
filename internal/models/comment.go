package models

import "time"

// Comment is a user comment on an article. Only its author may delete it.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Content   string    `json:"content" gorm:"type:text" validate:"required"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	ArticleID uint      `json:"article_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
