package user

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

// RegisterRoutes mounts signup/login behind authLimit and the profile routes behind authMW.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, authLimit gin.HandlerFunc) {
	rg.POST("/signup", authLimit, h.signup)
	rg.POST("/login", authLimit, h.login)

	a := rg.Group("", authMW)
	a.POST("/updateUser", h.updateUser)
	a.GET("/user/:userId", h.profile)
}

func (h *Handler) signup(c *gin.Context) {
	var dto SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "username and password (at least 6 characters) are required"))
		return
	}
	u, err := h.svc.Signup(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "User created successfully", "userId": u.ID.Hex()})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}
	res, err := h.svc.Login(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) updateUser(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err, "username is required and a new password needs at least 6 characters"))
		return
	}
	uid, err := middleware.ResolveUserID(c, dto.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	changed, err := h.svc.UpdateProfile(c.Request.Context(), uid, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !changed {
		response.OK(c, gin.H{"message": "No changes detected", "updated": false})
		return
	}
	response.OK(c, gin.H{"message": "Profile updated successfully", "updated": true})
}

func (h *Handler) profile(c *gin.Context) {
	uid, err := middleware.ResolveUserID(c, c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	u, err := h.svc.GetByID(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toProfile(u))
}
