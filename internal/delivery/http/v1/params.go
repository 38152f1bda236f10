package v1

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body into req, recording a 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		c.Error(apperror.Validation(validation.FormatValidationErrors(err)))
	case errors.Is(err, io.EOF):
		c.Error(apperror.BadRequest("Request body is required"))
	default:
		c.Error(apperror.BadRequest("Invalid request body"))
	}
	return false
}

// pathID parses a positive integer path parameter, recording a 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid " + name))
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter. Blank means absent.
func queryInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.BadRequest(name + " must be an integer")
	}
	return &v, nil
}

func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest(name + " must be a positive integer"))
		return 0, false
	}
	return id, true
}

func secondsOf(n int) time.Duration {
	return time.Duration(n) * time.Second
}
