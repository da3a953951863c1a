package model

// ColumnSetting 看板附加列设置 — 对应 column_settings
// 描述监控看板在 Auftragsnummer/Zeitstempel/Aufenthaltszeit 之外
// 额外展示哪些 zusatz_daten 列以及展示顺序
type ColumnSetting struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	Title           string `gorm:"type:varchar(255);not null" json:"title"`
	ColumnNumber    int    `gorm:"not null"                   json:"column_number"`
	DisplayPosition int    `gorm:"not null;default:0"         json:"display_position"`
	BaseModel
}

// TableName 指定表名
func (ColumnSetting) TableName() string { return "column_settings" }
