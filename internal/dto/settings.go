package dto

// ── 设置与参照数据导入 DTO ──

// ExcelSettingInput Excel 列设置（Auftragsnummer 所在列，1 起始）
type ExcelSettingInput struct {
	AuftragsnummerColumn int `json:"auftragsnummer_column" binding:"required,min=1"`
}

// SaveExcelSettingsRequest 保存 Excel 列设置请求
type SaveExcelSettingsRequest struct {
	Settings ExcelSettingInput `json:"settings" binding:"required"`
}

// ColumnSettingInput 看板附加列设置条目
type ColumnSettingInput struct {
	Title           string `json:"title"            binding:"required"`
	ColumnNumber    int    `json:"column_number"    binding:"required,min=1"`
	DisplayPosition int    `json:"display_position"`
}

// SaveColumnSettingsRequest 全量替换看板附加列设置请求
type SaveColumnSettingsRequest struct {
	Settings []ColumnSettingInput `json:"settings" binding:"required"`
}

// ImportExcelRequest 导入已解析的参照数据（行矩阵）
type ImportExcelRequest struct {
	Filename string          `json:"filename" binding:"required"`
	Data     [][]interface{} `json:"data"     binding:"required"`
}
