package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// OrderHandler 工单模块 HTTP 处理器
type OrderHandler struct {
	orderSvc service.OrderService
}

// NewOrderHandler 创建 OrderHandler
func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// CreateOrder 创建扫描工单
// POST /api/v1/scan-orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.orderSvc.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, gin.H{"order": order})
}

// ListOrders 全部工单（创建时间降序）
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderSvc.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"orders": orders})
}

// ListOpenOrders 开放工单（Zeitstempel 升序, FIFO）
// GET /api/v1/orders/open
func (h *OrderHandler) ListOpenOrders(c *gin.Context) {
	orders, err := h.orderSvc.ListOpen(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"orders": orders})
}

// CompleteOrder 按业务键正常完成工单（看板扫码路径）
// POST /api/v1/complete-order
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "auftragsnummer is required")
		return
	}

	archived, err := h.orderSvc.CompleteOrder(c.Request.Context(), req.Auftragsnummer)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, gin.H{"order": archived})
}

// CancelOrder 按业务键取消工单
// POST /api/v1/cancel-order
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "auftragsnummer is required")
		return
	}

	archived, err := h.orderSvc.CancelOrder(c.Request.Context(), req.Auftragsnummer)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, gin.H{"order": archived})
}

// ListArchive 归档工单（结束时刻降序，停留时长即时推导）
// GET /api/v1/archive
func (h *OrderHandler) ListArchive(c *gin.Context) {
	archived, err := h.orderSvc.ListArchived(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"orders": archived})
}

// handleOrderError 统一处理工单模块业务错误
func (h *OrderHandler) handleOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuftragsnummerEmpty):
		response.BadRequest(c, "auftragsnummer must not be empty")
	case errors.Is(err, service.ErrInvalidPrioritaet):
		response.BadRequest(c, "prioritaet must be 1 or 2")
	case errors.Is(err, service.ErrOpenOrderExists):
		response.Conflict(c, "an open order with this auftragsnummer already exists")
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "no open order found for this auftragsnummer")
	default:
		response.InternalError(c, "")
	}
}
