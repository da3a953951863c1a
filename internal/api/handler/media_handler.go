package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KalitoMero/silent-excel-vault/config"
	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// MediaHandler 媒体附件模块 HTTP 处理器
type MediaHandler struct {
	mediaSvc service.MediaService
	upload   config.UploadConfig
}

// NewMediaHandler 创建 MediaHandler
func NewMediaHandler(mediaSvc service.MediaService, upload config.UploadConfig) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc, upload: upload}
}

// CreateMedia 创建媒体附件。
// 文字备注走 JSON；视频走 multipart，file 字段落盘后以相对路径入库。
// POST /api/v1/media
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		h.createFromMultipart(c)
		return
	}

	var req dto.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "auftragsnummer and file_type are required")
		return
	}

	media, err := h.mediaSvc.Create(c.Request.Context(), &req, "")
	if err != nil {
		h.handleMediaError(c, err)
		return
	}
	response.OK(c, gin.H{"media": media})
}

func (h *MediaHandler) createFromMultipart(c *gin.Context) {
	var req dto.CreateMediaRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "auftragsnummer and file_type are required")
		return
	}

	filePath := ""
	if req.FileType == model.MediaTypeVideo {
		file, err := c.FormFile("file")
		if err != nil {
			response.BadRequest(c, "video file is required")
			return
		}
		if file.Size > h.upload.MaxSizeMB*1024*1024 {
			response.BadRequest(c, fmt.Sprintf("file exceeds %d MB limit", h.upload.MaxSizeMB))
			return
		}

		if err := os.MkdirAll(h.upload.Dir, 0o755); err != nil {
			response.InternalError(c, "")
			return
		}
		ext := filepath.Ext(file.Filename)
		name := uuid.NewString() + ext
		dst := filepath.Join(h.upload.Dir, name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			response.InternalError(c, "failed to store uploaded file")
			return
		}
		filePath = name
	}

	media, err := h.mediaSvc.Create(c.Request.Context(), &req, filePath)
	if err != nil {
		h.handleMediaError(c, err)
		return
	}
	response.OK(c, gin.H{"media": media})
}

// ListMedia 全部附件
// GET /api/v1/media
func (h *MediaHandler) ListMedia(c *gin.Context) {
	media, err := h.mediaSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"media": media})
}

// ListMediaByNummer 某业务键的附件
// GET /api/v1/media/:auftragsnummer
func (h *MediaHandler) ListMediaByNummer(c *gin.Context) {
	media, err := h.mediaSvc.ListByNummer(c.Request.Context(), c.Param("auftragsnummer"))
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"media": media})
}

// handleMediaError 统一处理媒体附件模块业务错误
func (h *MediaHandler) handleMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuftragsnummerEmpty):
		response.BadRequest(c, "auftragsnummer must not be empty")
	case errors.Is(err, service.ErrInvalidMediaType):
		response.BadRequest(c, "file_type must be video or text")
	case errors.Is(err, service.ErrMediaContentMissing):
		response.BadRequest(c, "media content or file missing")
	default:
		response.InternalError(c, "")
	}
}
