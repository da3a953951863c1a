package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/response"
)

// ImportHandler 参照数据导入模块 HTTP 处理器
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportMatrix 导入前端已解析的行矩阵
// POST /api/v1/excel-import
func (h *ImportHandler) ImportMatrix(c *gin.Context) {
	var req dto.ImportExcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "filename and data are required")
		return
	}

	rows, err := h.importSvc.ImportMatrix(c.Request.Context(), &req)
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	response.OK(c, gin.H{"rows": rows})
}

// UploadWorkbook 上传 .xlsx 工作簿并导入首个工作表
// POST /api/v1/excel-upload
func (h *ImportHandler) UploadWorkbook(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "xlsx file is required")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "")
		return
	}
	defer f.Close()

	rows, err := h.importSvc.ImportWorkbook(c.Request.Context(), file.Filename, f)
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	response.OK(c, gin.H{"rows": rows})
}

// GetExcelData 最新一份参照数据
// GET /api/v1/excel-data
func (h *ImportHandler) GetExcelData(c *gin.Context) {
	data, err := h.importSvc.LatestData(c.Request.Context())
	if err != nil {
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"data": data})
}

// handleImportError 统一处理导入模块业务错误
func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyImport), errors.Is(err, service.ErrEmptyWorkbook):
		response.BadRequest(c, "import data must not be empty")
	case errors.Is(err, service.ErrInvalidUpload):
		response.BadRequest(c, "uploaded file is not a readable xlsx workbook")
	default:
		response.InternalError(c, "")
	}
}
