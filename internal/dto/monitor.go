package dto

import "time"

// ── 监控看板 DTO ──

// BoardEntry 看板上的一条开放工单
// AufenthaltsZeitInQS 在每次快照时由 Zeitstempel 即时重算
type BoardEntry struct {
	Auftragsnummer      string                 `json:"auftragsnummer"`
	Zeitstempel         time.Time              `json:"zeitstempel"`
	AufenthaltsZeitInQS string                 `json:"aufenthaltsZeitInQS"`
	Abteilung           string                 `json:"abteilung,omitempty"`
	Zusatzinfo          string                 `json:"zusatzinfo,omitempty"`
	ZusatzDaten         map[string]interface{} `json:"zusatzDaten,omitempty"`
}

// BoardColumn 看板附加列表头
type BoardColumn struct {
	Title           string `json:"title"`
	DisplayPosition int    `json:"display_position"`
}

// MonitorBoard 看板快照：开放工单按优先级分列，各自按 Zeitstempel 升序（FIFO）
type MonitorBoard struct {
	Prio1       []BoardEntry  `json:"prio1"`
	Prio2       []BoardEntry  `json:"prio2"`
	Columns     []BoardColumn `json:"columns"`
	RefreshedAt time.Time     `json:"refreshed_at"`
}

// ── 统计模块 DTO ──

// PrioStatistik 单个优先级类别的归档统计
// 仅正常完成的工单计入均值；类别无数据时 MittlereAufenthaltszeit 为 "Keine Daten"
type PrioStatistik struct {
	Anzahl                  int    `json:"anzahl"`
	MittlereAufenthaltszeit string `json:"mittlere_aufenthaltszeit"`
}

// StatisticsResponse 归档统计响应
type StatisticsResponse struct {
	Prio1 PrioStatistik `json:"prio1"`
	Prio2 PrioStatistik `json:"prio2"`
}
