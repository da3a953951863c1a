package dto

// ── 参照数据模块 DTO（部门 / 追加信息） ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateAdditionalInfoRequest 创建追加信息请求
type CreateAdditionalInfoRequest struct {
	Name         string `json:"name"          binding:"required"`
	DepartmentID uint   `json:"department_id" binding:"required"`
}

// AdditionalInfoResponse 追加信息响应（含所属部门名）
type AdditionalInfoResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
}
