package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is the only persisted entity. ID and CreatedAt are assigned by the data store.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"not null" json:"body"`
	UserID    string    `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null;default:now()" json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}

// CreatePostRequest is the validated payload of POST /api/posts.
type CreatePostRequest struct {
	Title  string `json:"title" validate:"notblank"`
	Body   string `json:"body" validate:"notblank"`
	UserID string `json:"user_id" validate:"notblank"`
}

// RequiredPostFields lists the create payload keys in the order they are reported to clients.
var RequiredPostFields = []string{"title", "body", "user_id"}
