package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/posts-gateway/backend/internal/models"
)

// ErrorBody builds a failure body. err is only exposed when production is false.
func ErrorBody(production bool, label, message string, err error) models.ErrorResponse {
	body := models.ErrorResponse{
		Success: false,
		Error:   label,
		Message: message,
	}
	if !production && err != nil {
		body.Details = err.Error()
	}
	return body
}

// ErrorHandler logs the errors handlers attached with c.Error and answers a generic 500
// when none of them wrote a response.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError,
			ErrorBody(production, "Internal server error", "Something went wrong", c.Errors.Last().Err))
	}
}

// Recovery turns a panic in any later handler into a generic 500.
func Recovery(production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			ErrorBody(production, "Internal server error", "Something went wrong", fmt.Errorf("%v", recovered)))
	})
}

// NotFound answers requests that matched no route with the list of known routes.
func NotFound(routes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NotFoundResponse{
			Error:           "Route not found",
			Message:         fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
			AvailableRoutes: routes,
		})
	}
}
