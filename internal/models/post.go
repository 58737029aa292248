package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"uniqueIndex;not null" json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImageURL string `json:"image_url"`
	// CreatedDate is the human-readable publication date shown on the
	// post page, stamped once at create time. Sorting uses CreatedAt.
	CreatedDate string    `gorm:"not null" json:"created_date"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	Comments    []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// DateLayout is the display format for Post.CreatedDate.
const DateLayout = "January 2, 2006"
