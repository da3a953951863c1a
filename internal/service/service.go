package service

import (
	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/internal/lifecycle"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// Services 所有 Service 的聚合入口
type Services struct {
	Department     DepartmentService
	AdditionalInfo AdditionalInfoService
	Order          OrderService
	Media          MediaService
	Settings       SettingsService
	Import         ImportService
	Statistics     StatisticsService
	Wizard         *WizardService
}

// NewServices 创建 Services 聚合
func NewServices(repo *repository.Repository, store *lifecycle.Store, log *zap.Logger) *Services {
	orders := NewOrderService(repo.ScanOrder, repo.Settings, log)
	media := NewMediaService(repo.Media, log)

	return &Services{
		Department:     NewDepartmentService(repo.Department, log),
		AdditionalInfo: NewAdditionalInfoService(repo.AdditionalInfo, repo.Department, log),
		Order:          orders,
		Media:          media,
		Settings:       NewSettingsService(repo.Settings, log),
		Import:         NewImportService(repo.Settings, log),
		Statistics:     NewStatisticsService(repo.ScanOrder, log),
		Wizard:         NewWizardService(store, orders, media, repo.Department, repo.AdditionalInfo, log),
	}
}
