// Package seed populates an empty database with a starter tag vocabulary,
// a few accounts and sample articles, mirroring what the blog needs to be
// browsable on first boot.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var tagNames = []string{"Go", "Fiber", "GORM", "PostgreSQL", "React", "TypeScript", "Docker", "Kubernetes"}

// Run seeds the database if and only if no users exist yet.
func Run(userRepo repositories.UserRepository, articleRepo repositories.ArticleRepository, tagRepo repositories.TagRepository) error {
	count, err := userRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to check user count: %w", err)
	}
	if count > 0 {
		log.Println("Database already contains data, skipping initialization")
		return nil
	}

	log.Println("Initializing seed data...")

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := models.Tag{Name: name}
		if err := tagRepo.Create(&tag); err != nil {
			return fmt.Errorf("failed to seed tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	// All seeded accounts share the password "password".
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	var users []models.User
	for i := 1; i <= 2; i++ {
		users = append(users, newUser(fmt.Sprintf("admin%d", i), models.RoleAdmin, string(hashed)))
	}
	for i := 1; i <= 5; i++ {
		users = append(users, newUser(fmt.Sprintf("user%d", i), models.RoleUser, string(hashed)))
	}
	for i := range users {
		if err := userRepo.Create(&users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", users[i].Username, err)
		}
	}

	for i := 1; i <= 20; i++ {
		author := users[rand.Intn(len(users))]
		article := newArticle(i, author.ID)

		// 1-3 random tags per article; duplicates collapse on save.
		numTags := 1 + rand.Intn(3)
		for j := 0; j < numTags; j++ {
			article.Tags = append(article.Tags, tags[rand.Intn(len(tags))])
		}

		if _, err := articleRepo.Save(&article); err != nil {
			return fmt.Errorf("failed to seed article %d: %w", i, err)
		}
	}

	log.Println("Seed data initialization completed")
	return nil
}

func newUser(name, role, hashedPassword string) models.User {
	return models.User{
		Username:  name,
		FirstName: name,
		LastName:  "Example",
		Email:     name + "@example.com",
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

func newArticle(index int, authorID uint) models.Article {
	statuses := []models.ArticleStatus{models.StatusDraft, models.StatusPublished, models.StatusArchived}
	now := time.Now()
	return models.Article{
		Title:     fmt.Sprintf("Article Title %d", index),
		Content:   fmt.Sprintf("This is the content for article %d. It contains some sample text for demonstration purposes.", index),
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%d/800/600", index),
		Status:    statuses[rand.Intn(len(statuses))],
		AuthorID:  authorID,
		Views:     rand.Intn(1000),
		Likes:     rand.Intn(100),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
