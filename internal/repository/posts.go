package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/posts-gateway/backend/internal/models"
)

var postColumns = []string{"id", "title", "body", "user_id", "created_at"}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}

	if err := r.db.WithContext(ctx).Select(postColumns).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) CreatePost(ctx context.Context, title, body, userID string) (*models.Post, error) {
	post := models.Post{
		Title:  title,
		Body:   body,
		UserID: userID,
	}

	result := r.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&post)
	if result.Error != nil {
		return nil, fmt.Errorf("insert post: %w", result.Error)
	}
	if result.RowsAffected == 0 || post.ID == uuid.Nil {
		return nil, ErrEmptyInsert
	}

	return &post, nil
}
