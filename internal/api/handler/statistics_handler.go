package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// StatisticsHandler 统计模块 HTTP 处理器
type StatisticsHandler struct {
	statsSvc service.StatisticsService
}

// NewStatisticsHandler 创建 StatisticsHandler
func NewStatisticsHandler(statsSvc service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsSvc: statsSvc}
}

// GetStatistics 归档统计（按优先级，均值仅计正常完成）
// GET /api/v1/statistics
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statsSvc.Statistics(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"statistics": stats})
}

// ExportArchive 归档导出为 xlsx 下载
// GET /api/v1/statistics/export
func (h *StatisticsHandler) ExportArchive(c *gin.Context) {
	buf, filename, err := h.statsSvc.ExportArchive(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
