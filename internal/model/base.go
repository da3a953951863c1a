package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── PostgreSQL JSONB 自定义类型 ──

// JSONMap 对应 PostgreSQL JSONB 键值包，实现 GORM Scanner/Valuer 接口。
// 用于 scan_orders.zusatz_daten（来自参照数据与媒体注记的附加列）。
type JSONMap map[string]interface{}

// Scan 将 JSONB 字节反序列化为 map
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("JSONMap.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// Value 将 map 序列化为 JSONB 字节
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// RowMatrix 对应 JSONB 行矩阵（excel_data.data，按行再按列的单元格值）
type RowMatrix [][]interface{}

// Scan 反序列化行矩阵
func (r *RowMatrix) Scan(src interface{}) error {
	if src == nil {
		*r = RowMatrix{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("RowMatrix.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, r)
}

// Value 序列化行矩阵
func (r RowMatrix) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
