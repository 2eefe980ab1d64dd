package repository

import (
	"context"
	"errors"

	"github.com/emilythestrangee/posts-gateway/backend/internal/models"
)

// ErrEmptyInsert is returned when the store accepted an insert but handed no record back.
var ErrEmptyInsert = errors.New("insert returned no record")

type PostRepository interface {
	// ListPosts returns every post, newest first. It never returns a nil slice on success.
	ListPosts(ctx context.Context) ([]models.Post, error)
	// CreatePost inserts one post and returns it as stored, including id and created_at.
	CreatePost(ctx context.Context, title, body, userID string) (*models.Post, error)
}
