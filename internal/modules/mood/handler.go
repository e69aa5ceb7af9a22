package mood

import (
	"net/http"

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

// RegisterRoutes mounts the mood routes. All of them require a session; /classify
// is additionally rate limited since it may call a paid model.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, classifyLimit gin.HandlerFunc) {
	a := rg.Group("", authMW)
	a.POST("/classify", classifyLimit, h.classify)
	a.POST("/mood/manual", h.manual)
	a.POST("/mood/ai", h.detected)
	a.GET("/mood/history", h.history)
	a.POST("/topMoods", h.topMoods)
}

func (h *Handler) classify(c *gin.Context) {
	var dto ClassifyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "input is required"))
		return
	}
	label, err := h.svc.Classify(c.Request.Context(), dto.Input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"mood": label})
}

func (h *Handler) manual(c *gin.Context) {
	var dto ManualDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "moodDescription is required"))
		return
	}
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	rec, err := h.svc.Manual(c.Request.Context(), uid, dto.MoodDescription, int(dto.Intensity))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Mood saved successfully",
		"moodId":         rec.Entry.ID.Hex(),
		"moodCategories": rec.Entry.Categories,
		"intensity":      rec.Entry.Intensity,
		"topMoods":       rec.TopMoods,
	})
}

func (h *Handler) detected(c *gin.Context) {
	var dto DetectedDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "detectedMood is required"))
		return
	}
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	rec, err := h.svc.Detected(c.Request.Context(), uid, dto.DetectedMood)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Mood saved successfully",
		"moodId":   rec.Entry.ID.Hex(),
		"mood":     rec.Entry.Primary(),
		"topMoods": rec.TopMoods,
	})
}

func (h *Handler) history(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "limit must be a number")
		return
	}
	uid, err := middleware.ResolveUserID(c, q.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.svc.History(c.Request.Context(), uid, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

func (h *Handler) topMoods(c *gin.Context) {
	var dto TopMoodsDTO
	// Body is optional; the session identifies the user.
	_ = c.ShouldBindJSON(&dto)
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	top, err := h.svc.TopMoods(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"topMoods": top})
}
