package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// AdditionalInfoHandler 追加信息模块 HTTP 处理器
type AdditionalInfoHandler struct {
	infoSvc service.AdditionalInfoService
}

// NewAdditionalInfoHandler 创建 AdditionalInfoHandler
func NewAdditionalInfoHandler(infoSvc service.AdditionalInfoService) *AdditionalInfoHandler {
	return &AdditionalInfoHandler{infoSvc: infoSvc}
}

// ListAdditionalInfos 追加信息列表；?department= 按部门名过滤
// GET /api/v1/additional-infos
func (h *AdditionalInfoHandler) ListAdditionalInfos(c *gin.Context) {
	if dept := c.Query("department"); dept != "" {
		infos, err := h.infoSvc.ListForDepartment(c.Request.Context(), dept)
		if err != nil {
			h.handleAdditionalInfoError(c, err)
			return
		}
		response.OK(c, gin.H{"additionalInfos": infos})
		return
	}

	infos, err := h.infoSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"additionalInfos": infos})
}

// CreateAdditionalInfo 创建追加信息
// POST /api/v1/additional-infos
func (h *AdditionalInfoHandler) CreateAdditionalInfo(c *gin.Context) {
	var req dto.CreateAdditionalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and department_id are required")
		return
	}

	info, err := h.infoSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAdditionalInfoError(c, err)
		return
	}

	response.OK(c, gin.H{"additionalInfo": info})
}

// DeleteAdditionalInfo 删除追加信息
// DELETE /api/v1/additional-infos/:id
func (h *AdditionalInfoHandler) DeleteAdditionalInfo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid additional info id")
		return
	}

	if err := h.infoSvc.Delete(c.Request.Context(), uint(id)); err != nil {
		h.handleAdditionalInfoError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAdditionalInfoError 统一处理追加信息模块业务错误
func (h *AdditionalInfoHandler) handleAdditionalInfoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdditionalInfoNameEmpty):
		response.BadRequest(c, "additional info name must not be empty")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, "department not found")
	case errors.Is(err, service.ErrAdditionalInfoNotFound):
		response.NotFound(c, "additional info not found")
	default:
		response.InternalError(c, "")
	}
}
