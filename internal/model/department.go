package model

// Department 部门表 — 对应 departments
type Department struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"           json:"id"`
	Name string `gorm:"type:varchar(255);not null;unique" json:"name"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
