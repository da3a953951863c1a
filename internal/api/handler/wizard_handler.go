package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/lifecycle"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// WizardHandler 扫描向导 HTTP 处理器。
// 每个端点对应向导的一个步骤；会话状态全部留在服务端内存，
// 前端只携带会话 ID。
type WizardHandler struct {
	wizardSvc *service.WizardService
}

// NewWizardHandler 创建 WizardHandler
func NewWizardHandler(wizardSvc *service.WizardService) *WizardHandler {
	return &WizardHandler{wizardSvc: wizardSvc}
}

// StartSession 以扫入的业务键开启会话
// POST /api/v1/wizard/sessions
func (h *WizardHandler) StartSession(c *gin.Context) {
	var req dto.StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "auftragsnummer is required")
		return
	}

	sess, err := h.wizardSvc.Start(req.Auftragsnummer)
	if err != nil {
		h.handleWizardError(c, err)
		return
	}
	response.OK(c, gin.H{"session": sess})
}

// GetSession 读取会话状态
// GET /api/v1/wizard/sessions/:id
func (h *WizardHandler) GetSession(c *gin.Context) {
	sess, err := h.wizardSvc.Get(c.Param("id"))
	if err != nil {
		h.handleWizardError(c, err)
		return
	}
	response.OK(c, gin.H{"session": sess})
}

// SelectPriority 步骤 2：选择优先级
// POST /api/v1/wizard/sessions/:id/priority
func (h *WizardHandler) SelectPriority(c *gin.Context) {
	var req dto.WizardPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "prioritaet must be 1 or 2")
		return
	}

	sess, err := h.wizardSvc.SelectPriority(c.Param("id"), req.Prioritaet)
	if err != nil {
		h.handleWizardError(c, err)
		return
	}
	response.OK(c, gin.H{"session": sess})
}

// SelectDepartment 步骤 3：选择部门或显式跳过
// POST /api/v1/wizard/sessions/:id/department
func (h *WizardHandler) SelectDepartment(c *gin.Context) {
	var req dto.WizardDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	sess, err := h.wizardSvc.SelectDepartment(c.Request.Context(), c.Param("id"), req.Abteilung)
	if err != nil {
		h.handleWizardError(c, err)
		return
	}
	response.OK(c, gin.H{"session": sess})
}

// SelectZusatzinfo 步骤 4：选择追加信息或显式跳过
// POST /api/v1/wizard/sessions/:id/zusatzinfo
func (h *WizardHandler) SelectZusatzinfo(c *gin.Context) {
	var req dto.WizardZusatzinfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	sess, err := h.wizardSvc.SelectZusatzinfo(c.Request.Context(), c.Param("id"), req.Zusatzinfo)
	if err != nil {
		h.handleWizardError(c, err)
		return
	}
	response.OK(c, gin.H{"session": sess})
}

// MediaAction 步骤 5：媒体动作（preview/record/video/text/skip）
// POST /api/v1/wizard/sessions/:id/media
func (h *WizardHandler) MediaAction(c *gin.Context) {
	var req dto.WizardMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "action must be preview, record, video, text or skip")
		return
	}

	sess, err := h.wizardSvc.Media(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleWizardError(c, err)
		return
	}
	response.OK(c, gin.H{"session": sess})
}

// Confirm 步骤 6：最终确认优先级并创建工单
// POST /api/v1/wizard/sessions/:id/confirm
func (h *WizardHandler) Confirm(c *gin.Context) {
	var req dto.WizardConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "prioritaet must be 1 or 2")
		return
	}

	order, err := h.wizardSvc.Confirm(c.Request.Context(), c.Param("id"), req.Prioritaet)
	if err != nil {
		h.handleWizardError(c, err)
		return
	}
	response.OK(c, gin.H{"order": order})
}

// AbandonSession 放弃会话（无持久化痕迹）
// DELETE /api/v1/wizard/sessions/:id
func (h *WizardHandler) AbandonSession(c *gin.Context) {
	h.wizardSvc.Abandon(c.Request.Context(), c.Param("id"))
	response.OK(c, nil)
}

// handleWizardError 统一处理向导模块业务错误
func (h *WizardHandler) handleWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrSessionNotFound):
		response.NotFound(c, "wizard session not found")
	case errors.Is(err, lifecycle.ErrLeereAuftragsnummer):
		response.BadRequest(c, "auftragsnummer must not be empty")
	case errors.Is(err, lifecycle.ErrUngueltigePrio):
		response.BadRequest(c, "prioritaet must be 1 or 2")
	case errors.Is(err, lifecycle.ErrFalscherSchritt):
		response.Conflict(c, "operation not valid in current wizard step")
	case errors.Is(err, lifecycle.ErrDeviceBusy), errors.Is(err, lifecycle.ErrDeviceReleaseFailed):
		response.Conflict(c, "capture device unavailable")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, "department not found")
	case errors.Is(err, service.ErrZusatzinfoNotFound):
		response.NotFound(c, "zusatzinfo not found for selected department")
	case errors.Is(err, service.ErrUnknownMediaAction):
		response.BadRequest(c, "unknown media action")
	case errors.Is(err, service.ErrMediaContentMissing):
		response.BadRequest(c, "media content or file missing")
	case errors.Is(err, service.ErrOpenOrderExists):
		response.Conflict(c, "an open order with this auftragsnummer already exists")
	default:
		response.InternalError(c, "")
	}
}
