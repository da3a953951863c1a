package model

import "time"

// 媒体附件类型
const (
	MediaTypeVideo = "video"
	MediaTypeText  = "text"
)

// OrderMedia 工单媒体附件表 — 对应 order_media
//
// 通过业务键 Auftragsnummer 关联工单（而非行 ID），生命周期独立：
// 创建后从不修改，展示工单时按业务键联查。纯文本备注 FilePath 为空。
type OrderMedia struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"          json:"id"`
	Auftragsnummer string    `gorm:"type:varchar(255);not null;index"  json:"auftragsnummer"`
	FilePath       string    `gorm:"type:varchar(500);not null;default:''" json:"file_path"`
	FileType       string    `gorm:"type:varchar(100);not null"        json:"file_type"`
	Content        string    `gorm:"type:text"                         json:"content,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (OrderMedia) TableName() string { return "order_media" }
