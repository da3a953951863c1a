package dto

// ── 扫描向导 DTO ──

// StartWizardRequest 开始一次扫描向导会话
type StartWizardRequest struct {
	Auftragsnummer string `json:"auftragsnummer" binding:"required"`
}

// WizardPriorityRequest 步骤 2：选择优先级
type WizardPriorityRequest struct {
	Prioritaet int `json:"prioritaet" binding:"required,oneof=1 2"`
}

// WizardDepartmentRequest 步骤 3：选择部门（空字符串 = 显式跳过）
type WizardDepartmentRequest struct {
	Abteilung string `json:"abteilung"`
}

// WizardZusatzinfoRequest 步骤 4：选择追加信息（空字符串 = 显式跳过）
type WizardZusatzinfoRequest struct {
	Zusatzinfo string `json:"zusatzinfo"`
}

// WizardMediaRequest 步骤 5：媒体步骤动作
//
//	preview — 申请采集设备预览
//	record  — 开始录制（先完全释放预览句柄）
//	video   — 结束录制并保存视频附件（FilePath 为已落盘的文件路径）
//	text    — 保存文字备注附件
//	skip    — 跳过
type WizardMediaRequest struct {
	Action   string `json:"action" binding:"required,oneof=preview record video text skip"`
	Content  string `json:"content"`
	FilePath string `json:"file_path"`
}

// WizardConfirmRequest 步骤 6：最终确认优先级（落库时点）
// Prioritaet 为 0 时沿用步骤 2 的预选值
type WizardConfirmRequest struct {
	Prioritaet int `json:"prioritaet" binding:"omitempty,oneof=1 2"`
}

// WizardSessionResponse 向导会话当前状态
type WizardSessionResponse struct {
	ID             string `json:"id"`
	Step           string `json:"step"`
	Auftragsnummer string `json:"auftragsnummer"`
	Prioritaet     int    `json:"prioritaet,omitempty"`
	Abteilung      string `json:"abteilung,omitempty"`
	Zusatzinfo     string `json:"zusatzinfo,omitempty"`
	MediaInfo      string `json:"media_info,omitempty"`
}
