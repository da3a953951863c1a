package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments 部门列表（名称升序）
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"departments": depts})
}

// CreateDepartment 创建部门
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, gin.H{"department": dept})
}

// DeleteDepartment 删除部门（其追加信息级联删除）
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid department id")
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), uint(id)); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDepartmentError 统一处理部门模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNameEmpty):
		response.BadRequest(c, "department name must not be empty")
	case errors.Is(err, service.ErrDepartmentNameExists):
		response.Conflict(c, "department name already exists")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, "department not found")
	default:
		response.InternalError(c, "")
	}
}
