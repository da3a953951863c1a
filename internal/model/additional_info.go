package model

// AdditionalInfo 追加信息表 — 对应 additional_infos
// 每条追加信息归属且仅归属一个部门；部门删除时级联删除（外键 ON DELETE CASCADE）
type AdditionalInfo struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	DepartmentID uint   `gorm:"not null;index"             json:"department_id"`
	BaseModel

	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (AdditionalInfo) TableName() string { return "additional_infos" }
