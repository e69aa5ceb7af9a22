package song

import (
	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/middleware"
	"github.com/moodify/core/internal/pkg/response"
	"github.com/moodify/core/internal/pkg/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/songs", authMW)
	g.GET("", h.library)
	g.POST("", h.like)
	g.DELETE("", h.remove)
}

func (h *Handler) library(c *gin.Context) {
	uid, err := middleware.ResolveUserID(c, c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.svc.Library(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) like(c *gin.Context) {
	var dto LikeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "songId is required"))
		return
	}
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	liked, err := h.svc.SetLiked(c.Request.Context(), uid, dto.SongID, dto.Liked)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"songId": dto.SongID, "liked": liked})
}

func (h *Handler) remove(c *gin.Context) {
	var dto RemoveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "songId is required"))
		return
	}
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	n, err := h.svc.Remove(c.Request.Context(), uid, dto.SongID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Song removed from playlists", "modifiedPlaylists": n})
}
