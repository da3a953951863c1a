package dto

// ── 媒体附件模块 DTO ──

// CreateMediaRequest 创建媒体附件请求（JSON 纯文本备注路径；
// 视频走 multipart，file 字段由 Handler 落盘后填入 FilePath）
type CreateMediaRequest struct {
	Auftragsnummer string `json:"auftragsnummer" form:"auftragsnummer" binding:"required"`
	FileType       string `json:"file_type"      form:"file_type"      binding:"required"`
	Content        string `json:"content"        form:"content"`
}
