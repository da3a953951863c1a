package model

import "time"

// ExcelSetting Excel 参照数据设置 — 对应 excel_settings
// 记录导入表格中哪一列是 Auftragsnummer（1 起始列号）；最新一条生效
type ExcelSetting struct {
	ID                   uint `gorm:"primaryKey;autoIncrement" json:"id"`
	AuftragsnummerColumn int  `gorm:"not null"                 json:"auftragsnummer_column"`
	BaseModel
}

// TableName 指定表名
func (ExcelSetting) TableName() string { return "excel_settings" }

// ExcelData 导入的参照数据 — 对应 excel_data
// 整张表格按行矩阵存为 JSONB；读取时取最新一份
type ExcelData struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Filename  string    `gorm:"type:varchar(255);not null" json:"filename"`
	Data      RowMatrix `gorm:"type:jsonb;not null"        json:"data"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (ExcelData) TableName() string { return "excel_data" }
