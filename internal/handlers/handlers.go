package handlers

import (
	"time"

	"github.com/emilythestrangee/posts-gateway/backend/internal/repository"
)

// Handler combines all handler types
type Handler struct {
	Post   *PostHandler
	Health *HealthHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(posts repository.PostRepository, production bool, started time.Time) *Handler {
	return &Handler{
		Post:   NewPostHandler(posts, production),
		Health: NewHealthHandler(started),
	}
}
