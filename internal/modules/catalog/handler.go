package catalog

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/pkg/response"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/catalog")
	g.GET("/genres", h.genres)
	g.GET("/moods", h.moods)
	g.GET("/songs", h.songs)
}

func (h *Handler) genres(c *gin.Context) {
	response.OK(c, h.catalog.Genres())
}

func (h *Handler) moods(c *gin.Context) {
	response.OK(c, h.catalog.Moods())
}

type songsQuery struct {
	Mood  string `form:"mood" binding:"required"`
	Genre string `form:"genre"`
}

func (h *Handler) songs(c *gin.Context) {
	var q songsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "mood is required")
		return
	}
	mood := strings.ToLower(strings.TrimSpace(q.Mood))
	if !models.IsKnownMood(mood) {
		response.BadRequest(c, "unknown mood "+q.Mood)
		return
	}

	var songs []models.Song
	if strings.TrimSpace(q.Genre) == "" {
		songs = h.catalog.ResolveMood(mood)
	} else {
		songs = h.catalog.Resolve(mood, q.Genre)
	}
	response.OK(c, gin.H{"mood": mood, "genre": strings.ToLower(strings.TrimSpace(q.Genre)), "songs": songs})
}
