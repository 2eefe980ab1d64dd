package models

// ListPostsResponse is the success envelope of GET /api/posts.
type ListPostsResponse struct {
	Success bool   `json:"success"`
	Data    []Post `json:"data"`
	Count   int    `json:"count"`
}

// CreatePostResponse is the success envelope of POST /api/posts.
type CreatePostResponse struct {
	Success bool   `json:"success"`
	Data    Post   `json:"data"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// ErrorResponse is the body of every non-2xx answer. Details is only filled outside production.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse is the 400 body produced by the post validator.
type ValidationErrorResponse struct {
	Success  bool     `json:"success"`
	Error    string   `json:"error"`
	Message  string   `json:"message"`
	Required []string `json:"required"`
	Missing  []string `json:"missing,omitempty"`
	Invalid  []string `json:"invalid,omitempty"`
	Empty    []string `json:"empty,omitempty"`
}

// NotFoundResponse is the body answered for unknown routes.
type NotFoundResponse struct {
	Error           string   `json:"error"`
	Message         string   `json:"message"`
	AvailableRoutes []string `json:"availableRoutes"`
}
