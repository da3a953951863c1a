package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/monitor"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// MonitorHandler 监控看板 HTTP 处理器
type MonitorHandler struct {
	engine *monitor.Engine
}

// NewMonitorHandler 创建 MonitorHandler
func NewMonitorHandler(engine *monitor.Engine) *MonitorHandler {
	return &MonitorHandler{engine: engine}
}

// GetBoard 看板快照；停留时长在响应时刻即时重算
// GET /api/v1/monitor
func (h *MonitorHandler) GetBoard(c *gin.Context) {
	board := h.engine.Snapshot()
	if board.RefreshedAt.IsZero() {
		// 引擎尚未成功刷新过（冷启动且数据库不可达）：退回共享缓存
		if cached, err := h.engine.CachedBoard(c.Request.Context()); err == nil && cached != nil {
			response.OK(c, gin.H{"board": cached})
			return
		}
	}
	response.OK(c, gin.H{"board": board})
}

// ScanInput 看板前端转发的全局按键流。
// keys 追加进条码缓冲；enter 结束一次扫描；input_focused 标记焦点状态。
// POST /api/v1/monitor/scan-input
func (h *MonitorHandler) ScanInput(c *gin.Context) {
	var req struct {
		Keys         string `json:"keys"`
		Enter        bool   `json:"enter"`
		InputFocused *bool  `json:"input_focused"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	scanner := h.engine.Scanner()
	if req.InputFocused != nil {
		scanner.SetInputFocused(*req.InputFocused)
	}
	for _, r := range req.Keys {
		scanner.HandleRune(r)
	}
	if req.Enter {
		scanner.HandleEnter()
	}

	response.OK(c, nil)
}

// CompleteByBarcode 直接以完整条码完成工单（看板手动输入路径）
// POST /api/v1/monitor/barcode
func (h *MonitorHandler) CompleteByBarcode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "code is required")
		return
	}

	archived, err := h.engine.ProcessBarcode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "no open order found for this auftragsnummer")
			return
		}
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"order": archived})
}
