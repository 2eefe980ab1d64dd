package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/posts-gateway/backend/internal/middleware"
	"github.com/emilythestrangee/posts-gateway/backend/internal/models"
	"github.com/emilythestrangee/posts-gateway/backend/internal/repository"
)

type PostHandler struct {
	posts      repository.PostRepository
	production bool
}

func NewPostHandler(posts repository.PostRepository, production bool) *PostHandler {
	return &PostHandler{posts: posts, production: production}
}

// GetPosts returns every post, newest first
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError,
			middleware.ErrorBody(h.production, "Internal server error", "Failed to fetch posts", err))
		return
	}

	// empty array, not null
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, models.ListPostsResponse{
		Success: true,
		Data:    posts,
		Count:   len(posts),
	})
}

// CreatePost stores the payload accepted by middleware.ValidatePost
func (h *PostHandler) CreatePost(c *gin.Context) {
	input, ok := middleware.PostPayload(c)
	if !ok {
		_ = c.Error(errors.New("create post reached without a validated payload"))
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(),
		strings.TrimSpace(input.Title),
		strings.TrimSpace(input.Body),
		strings.TrimSpace(input.UserID),
	)
	switch {
	case errors.Is(err, repository.ErrEmptyInsert):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError,
			middleware.ErrorBody(h.production, "Internal server error", "Post was not created: no data returned", err))
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError,
			middleware.ErrorBody(h.production, "Internal server error", "Failed to create post", err))
		return
	}

	c.JSON(http.StatusCreated, models.CreatePostResponse{
		Success: true,
		Data:    *post,
		Message: "Post created successfully",
	})
}
