package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// SettingsHandler 设置模块 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetExcelSettings 最新 Excel 列设置
// GET /api/v1/excel-settings
func (h *SettingsHandler) GetExcelSettings(c *gin.Context) {
	setting, err := h.settingsSvc.GetExcelSettings(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"settings": setting})
}

// SaveExcelSettings 保存 Excel 列设置
// POST /api/v1/excel-settings
func (h *SettingsHandler) SaveExcelSettings(c *gin.Context) {
	var req dto.SaveExcelSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "settings.auftragsnummer_column is required")
		return
	}

	setting, err := h.settingsSvc.SaveExcelSettings(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"settings": setting})
}

// GetColumnSettings 看板附加列设置
// GET /api/v1/column-settings
func (h *SettingsHandler) GetColumnSettings(c *gin.Context) {
	settings, err := h.settingsSvc.GetColumnSettings(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"settings": settings})
}

// SaveColumnSettings 全量替换看板附加列设置
// POST /api/v1/column-settings
func (h *SettingsHandler) SaveColumnSettings(c *gin.Context) {
	var req dto.SaveColumnSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "settings array is required")
		return
	}

	settings, err := h.settingsSvc.SaveColumnSettings(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"settings": settings})
}
