package feedback

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
	rg.POST("/feedback", authMW, h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "message is required"))
		return
	}
	sess := middleware.CurrentSession(c)
	if sess == nil {
		response.Unauthorized(c)
		return
	}
	f, err := h.svc.Submit(c.Request.Context(), sess.UserID, sess.Username, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"feedbackId": f.ID.Hex()})
}
