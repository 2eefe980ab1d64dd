package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/emilythestrangee/posts-gateway/backend/internal/models"
)

const (
	postPayloadKey = "post_payload"
	maxBodyBytes   = 100 << 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidationError describes why a create payload was rejected.
// Exactly one of Missing, Invalid or Empty is set.
type ValidationError struct {
	Reason  string
	Message string
	Missing []string
	Invalid []string
	Empty   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *ValidationError) Response() models.ValidationErrorResponse {
	return models.ValidationErrorResponse{
		Success:  false,
		Error:    e.Reason,
		Message:  e.Message,
		Required: models.RequiredPostFields,
		Missing:  e.Missing,
		Invalid:  e.Invalid,
		Empty:    e.Empty,
	}
}

// CheckCreatePost verifies that title, body and user_id are present, are strings and
// are not blank. The returned request holds the values untrimmed.
func CheckCreatePost(raw map[string]any) (models.CreatePostRequest, error) {
	var missing, invalid []string
	values := make(map[string]string, len(models.RequiredPostFields))

	for _, field := range models.RequiredPostFields {
		v, ok := raw[field]
		if !ok || v == nil {
			missing = append(missing, field)
			continue
		}
		s, ok := v.(string)
		if !ok {
			invalid = append(invalid, field)
			continue
		}
		values[field] = s
	}

	if len(missing) > 0 {
		return models.CreatePostRequest{}, &ValidationError{
			Reason:  "Missing required fields",
			Message: "title, body, and user_id are required",
			Missing: missing,
		}
	}
	if len(invalid) > 0 {
		return models.CreatePostRequest{}, &ValidationError{
			Reason:  "Invalid field types",
			Message: "title, body, and user_id must be strings",
			Invalid: invalid,
		}
	}

	req := models.CreatePostRequest{
		Title:  values["title"],
		Body:   values["body"],
		UserID: values["user_id"],
	}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return models.CreatePostRequest{}, err
		}
		empty := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			empty = append(empty, fe.Field())
		}
		return models.CreatePostRequest{}, &ValidationError{
			Reason:  "Empty fields",
			Message: "title, body, and user_id cannot be empty",
			Empty:   empty,
		}
	}

	return req, nil
}

// ValidatePost rejects POST /api/posts payloads that fail CheckCreatePost before the
// handler runs. The accepted payload is available through PostPayload.
func ValidatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
					Error:   "Payload too large",
					Message: fmt.Sprintf("Request body must not exceed %d bytes", tooLarge.Limit),
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid JSON",
				Message: "Request body must be a JSON object",
			})
			return
		}

		req, err := CheckCreatePost(raw)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				c.AbortWithStatusJSON(http.StatusBadRequest, verr.Response())
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(postPayloadKey, req)
		c.Next()
	}
}

// PostPayload returns the payload accepted by ValidatePost.
func PostPayload(c *gin.Context) (models.CreatePostRequest, bool) {
	v, ok := c.Get(postPayloadKey)
	if !ok {
		return models.CreatePostRequest{}, false
	}
	req, ok := v.(models.CreatePostRequest)
	return req, ok
}
