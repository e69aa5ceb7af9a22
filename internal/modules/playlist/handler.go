package playlist

import (
	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/middleware"
	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/pkg/response"
	"github.com/moodify/core/internal/pkg/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the playlist routes; dedupe guards the create call against double submits.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, dedupe gin.HandlerFunc) {
	g := rg.Group("/playlist", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", dedupe, h.create)
	g.PATCH("/:id", h.rename)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	var q listQuery
	_ = c.ShouldBindQuery(&q)
	uid, err := middleware.ResolveUserID(c, q.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	playlists, err := h.svc.List(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"playlists": playlists})
}

func (h *Handler) get(c *gin.Context) {
	uid, err := middleware.ResolveUserID(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "name, mood and songs are required"))
		return
	}
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), uid, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Playlist saved successfully", "playlistId": p.ID.Hex(), "playlist": p})
}

func (h *Handler) rename(c *gin.Context) {
	var dto RenameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	uid, err := middleware.ResolveUserID(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.Rename(c.Request.Context(), uid, id, dto.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Playlist updated successfully"})
}

func (h *Handler) delete(c *gin.Context) {
	uid, err := middleware.ResolveUserID(c, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Playlist deleted successfully"})
}
