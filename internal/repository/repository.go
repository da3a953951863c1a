package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Department     DepartmentRepository
	AdditionalInfo AdditionalInfoRepository
	ScanOrder      ScanOrderRepository
	Media          MediaRepository
	Settings       SettingsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Department:     NewDepartmentRepo(db),
		AdditionalInfo: NewAdditionalInfoRepo(db),
		ScanOrder:      NewScanOrderRepo(db),
		Media:          NewMediaRepo(db),
		Settings:       NewSettingsRepo(db),
	}
}
