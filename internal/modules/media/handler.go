package media

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/middleware"
	"github.com/moodify/core/internal/pkg/response"
)

const multipartMemory = 8 << 20

type Handler struct {
	svc      *Service
	maxBytes int64
}

func NewHandler(svc *Service, maxUploadMB int) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 50
	}
	return &Handler{svc: svc, maxBytes: int64(maxUploadMB) << 20}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, limit gin.HandlerFunc) {
	rg.POST("/mood/media", authMW, limit, h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if !h.svc.Enabled() {
		response.ServiceUnavailable(c, "media analysis is not configured")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			abortTooLarge(c)
			return
		}
		response.BadRequest(c, "expected a multipart upload")
		return
	}
	uid, err := middleware.ResolveUserID(c, c.PostForm("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}
	if fh.Size > h.maxBytes {
		abortTooLarge(c)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	kind, ok := ParseKind(c.PostForm("kind"), contentType)
	if !ok {
		response.BadRequest(c, "kind must be image or video")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()
	payload, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	res, err := h.svc.Analyze(c.Request.Context(), uid, Upload{
		Kind:        kind,
		Filename:    fh.Filename,
		ContentType: contentType,
		Payload:     payload,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
		"ok": 0, "code": http.StatusRequestEntityTooLarge, "message": "file is too large",
	})
}
