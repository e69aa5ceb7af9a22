package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/middleware"
	"github.com/moodify/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/dashboard", authMW)
	g.GET("", h.overview)
	g.POST("", h.recent)
}

func (h *Handler) overview(c *gin.Context) {
	uid, err := middleware.ResolveUserID(c, c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.svc.Overview(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"dashboardData": res})
}

func (h *Handler) recent(c *gin.Context) {
	var dto RecentDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.svc.Recent(c.Request.Context(), uid, dto.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"playlists": list})
}
