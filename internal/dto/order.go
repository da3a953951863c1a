package dto

import "time"

// ── 工单模块 DTO ──

// CreateOrderRequest 创建扫描工单请求
type CreateOrderRequest struct {
	Auftragsnummer string                 `json:"auftragsnummer" binding:"required"`
	Prioritaet     int                    `json:"prioritaet"     binding:"required,oneof=1 2"`
	Zeitstempel    *time.Time             `json:"zeitstempel"` // 缺省为服务器当前时间
	Abteilung      string                 `json:"abteilung"`
	Zusatzinfo     string                 `json:"zusatzinfo"`
	ZusatzDaten    map[string]interface{} `json:"zusatzDaten"`
}

// CompleteOrderRequest 完成/取消工单请求（业务键定位）
type CompleteOrderRequest struct {
	Auftragsnummer string `json:"auftragsnummer" binding:"required"`
}

// ArchivedOrderResponse 归档工单条目（派生，非存储类型）
// AufenthaltszeitInQS 由创建与结束时间戳即时推导；取消的工单只带结果标记
type ArchivedOrderResponse struct {
	Auftragsnummer       string                 `json:"auftragsnummer"`
	Prioritaet           int                    `json:"prioritaet"`
	Zeitstempel          time.Time              `json:"zeitstempel"`
	Abteilung            string                 `json:"abteilung,omitempty"`
	Zusatzinfo           string                 `json:"zusatzinfo,omitempty"`
	ZusatzDaten          map[string]interface{} `json:"zusatzDaten,omitempty"`
	AbschlussZeitstempel time.Time              `json:"abschluss_zeitstempel"`
	AufenthaltsZeitInQS  string                 `json:"aufenthaltsZeitInQS,omitempty"`
	Ergebnis             string                 `json:"ergebnis"`
}
