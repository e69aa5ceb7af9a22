package response

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/models"
)

const internalErrorMessage = "Something went wrong, please try again later"

// OK sends a 200 response. Arrays/slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	abort(c, http.StatusUnauthorized, "Authentication required")
}

// UnauthorizedMsg sends a 401 error response with a custom message.
func UnauthorizedMsg(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context) {
	abort(c, http.StatusForbidden, "You are not allowed to access this resource")
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abort(c, http.StatusNotFound, "Not found")
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abort(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	abort(c, http.StatusTooManyRequests, "Too many requests, slow down")
}

// ServiceUnavailable sends a 503 error response.
func ServiceUnavailable(c *gin.Context, message string) {
	abort(c, http.StatusServiceUnavailable, message)
}

// InternalError sends a 500 with a generic message. The cause is attached to the
// gin context so the request logger records it.
func InternalError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	abort(c, http.StatusInternalServerError, internalErrorMessage)
}

// Error maps a service error onto the error taxonomy.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidID),
		errors.Is(err, models.ErrInvalidMood),
		errors.Is(err, models.ErrEmptyPlaylist),
		errors.Is(err, models.ErrSongNotInCatalog):
		BadRequest(c, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		UnauthorizedMsg(c, models.ErrInvalidCredentials.Error())
	case errors.Is(err, models.ErrUnauthenticated):
		Unauthorized(c)
	case errors.Is(err, models.ErrForbidden):
		Forbidden(c)
	case errors.Is(err, models.ErrUserNotFound):
		NotFoundMsg(c, "User not found")
	case errors.Is(err, models.ErrPlaylistNotFound):
		NotFoundMsg(c, "Playlist not found")
	case errors.Is(err, models.ErrNotFound):
		NotFoundMsg(c, "Not found")
	case errors.Is(err, models.ErrUsernameTaken):
		Conflict(c, "Username already exists")
	case errors.Is(err, models.ErrPlaylistLimit):
		Conflict(c, err.Error())
	case errors.Is(err, models.ErrUnavailable):
		_ = c.Error(err)
		ServiceUnavailable(c, models.ErrUnavailable.Error())
	default:
		InternalError(c, err)
	}
}
