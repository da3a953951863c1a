package model

import "time"

// 工单归档结果标记
const (
	ErgebnisAbgeschlossen = "abgeschlossen" // 正常扫码完成
	ErgebnisAbgebrochen   = "abgebrochen"   // 看板侧取消
)

// ScanOrder 扫描工单表 — 对应 scan_orders（系统核心实体）
//
// Auftragsnummer 是业务键而非全局唯一键：同一工单号在其生命周期内
// 可以被多次扫入。部分唯一索引保证任意时刻最多只有一条未完成记录
// （uniq_scan_orders_open_auftragsnummer）。
//
// 生命周期：向导最终确认时创建；之后唯一的变更是完成/取消时翻转
// completed 并记录 AbschlussZeitstempel 与 Ergebnis；归档视图上的
// 停留时长始终由时间戳推导，从不落库。
type ScanOrder struct {
	ID                   uint       `gorm:"primaryKey;autoIncrement"      json:"id"`
	Auftragsnummer       string     `gorm:"type:varchar(255);not null;index" json:"auftragsnummer"`
	Prioritaet           int        `gorm:"not null"                      json:"prioritaet"`
	Zeitstempel          time.Time  `gorm:"not null"                      json:"zeitstempel"`
	Abteilung            string     `gorm:"type:varchar(255)"             json:"abteilung,omitempty"`
	Zusatzinfo           string     `gorm:"type:text"                     json:"zusatzinfo,omitempty"`
	ZusatzDaten          JSONMap    `gorm:"type:jsonb;column:zusatz_daten" json:"zusatzDaten"`
	Completed            bool       `gorm:"not null;default:false;index"  json:"completed"`
	AbschlussZeitstempel *time.Time `gorm:"column:abschluss_zeitstempel"  json:"abschluss_zeitstempel,omitempty"`
	Ergebnis             string     `gorm:"type:varchar(50)"              json:"ergebnis,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ScanOrder) TableName() string { return "scan_orders" }
