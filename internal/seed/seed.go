// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// AdminEmail, when set, is promoted to the admin role after seeding.
	AdminEmail string
}

// DemoPassword is the password shared by all seeded accounts.
const DemoPassword = "ReadingList99demo"

// Seed populates the database with demo users, posts, and comments.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
	}

	// Hashing is deliberately slow; compute the shared demo digest once.
	digest, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	users, err := seedUsers(db, opts.NumUsers, digest)
	if err != nil {
		return err
	}
	posts, err := seedPosts(db, users, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := seedComments(db, users, posts); err != nil {
		return err
	}

	if opts.AdminEmail != "" {
		if err := PromoteAdmin(db, opts.AdminEmail); err != nil {
			return err
		}
	}

	log.Printf("seeding complete; all demo users share the password %q", DemoPassword)
	return nil
}

// PromoteAdmin grants the admin role to the user with the given email.
func PromoteAdmin(db *gorm.DB, email string) error {
	res := db.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin)
	if res.Error != nil {
		return fmt.Errorf("promoting %s: %w", email, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("promoting %s: no such user", email)
	}
	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents.
	for _, model := range []any{
		&models.Comment{}, &models.Post{}, &models.ContactMessage{}, &models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, n int, digest string) ([]*models.User, error) {
	if n <= 0 {
		n = 10
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username:    fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			DisplayName: gofakeit.Name(),
			Email:       gofakeit.Email(),
			Password:    digest,
			Role:        models.RoleReader,
			Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if i == 0 {
			user.Role = models.RoleAdmin
		}
		users = append(users, user)
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("creating users: %w", err)
	}
	return users, nil
}

func seedPosts(db *gorm.DB, users []*models.User, n int) ([]*models.Post, error) {
	if n <= 0 {
		n = 25
	}

	// Posts are authored by the admin; that is the only account allowed
	// to write them through the API.
	author := users[0]

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		createdAt := time.Now().Add(-time.Duration(rand.Intn(120*24)) * time.Hour)
		post := &models.Post{
			Title:       fmt.Sprintf("%s #%d", strings.TrimSuffix(gofakeit.Sentence(4), "."), i+1),
			Subtitle:    strings.TrimSuffix(gofakeit.Sentence(7), "."),
			Body:        gofakeit.Paragraph(3, 5, 12, "\n\n"),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/900/500", gofakeit.UUID()),
			CreatedDate: createdAt.Format(models.DateLayout),
			UserID:      author.ID,
			CreatedAt:   createdAt,
		}
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("creating posts: %w", err)
	}
	return posts, nil
}

func seedComments(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < rand.Intn(6); i++ {
			commenter := users[rand.Intn(len(users))]
			comments = append(comments, &models.Comment{
				Body:      gofakeit.Sentence(gofakeit.Number(5, 25)),
				UserID:    commenter.ID,
				PostID:    post.ID,
				CreatedAt: post.CreatedAt.Add(time.Duration(rand.Intn(72)) * time.Hour),
			})
		}
	}
	if len(comments) == 0 {
		return nil
	}
	if err := db.Create(&comments).Error; err != nil {
		return fmt.Errorf("creating comments: %w", err)
	}
	return nil
}
