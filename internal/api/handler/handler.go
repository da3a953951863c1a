package handler

import (
	"github.com/KalitoMero/silent-excel-vault/config"
	"github.com/KalitoMero/silent-excel-vault/internal/monitor"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Order          *OrderHandler
	Department     *DepartmentHandler
	AdditionalInfo *AdditionalInfoHandler
	Media          *MediaHandler
	Settings       *SettingsHandler
	Import         *ImportHandler
	Statistics     *StatisticsHandler
	Wizard         *WizardHandler
	Monitor        *MonitorHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Services, engine *monitor.Engine, upload config.UploadConfig) *Handler {
	return &Handler{
		Order:          NewOrderHandler(svc.Order),
		Department:     NewDepartmentHandler(svc.Department),
		AdditionalInfo: NewAdditionalInfoHandler(svc.AdditionalInfo),
		Media:          NewMediaHandler(svc.Media, upload),
		Settings:       NewSettingsHandler(svc.Settings),
		Import:         NewImportHandler(svc.Import),
		Statistics:     NewStatisticsHandler(svc.Statistics),
		Wizard:         NewWizardHandler(svc.Wizard),
		Monitor:        NewMonitorHandler(engine),
	}
}
