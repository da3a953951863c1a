package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// SettingsService 设置业务接口（Excel 列设置 + 看板附加列设置）
type SettingsService interface {
	// GetExcelSettings 最新 Excel 列设置；从未保存过时返回 (nil, nil)
	GetExcelSettings(ctx context.Context) (*model.ExcelSetting, error)
	SaveExcelSettings(ctx context.Context, req *dto.SaveExcelSettingsRequest) (*model.ExcelSetting, error)

	GetColumnSettings(ctx context.Context) ([]model.ColumnSetting, error)
	// SaveColumnSettings 全量替换看板附加列设置
	SaveColumnSettings(ctx context.Context, req *dto.SaveColumnSettingsRequest) ([]model.ColumnSetting, error)
}

type settingsService struct {
	repo repository.SettingsRepository
	log  *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(repo repository.SettingsRepository, log *zap.Logger) SettingsService {
	return &settingsService{repo: repo, log: log}
}

func (s *settingsService) GetExcelSettings(ctx context.Context) (*model.ExcelSetting, error) {
	return s.repo.LatestExcelSetting(ctx)
}

func (s *settingsService) SaveExcelSettings(ctx context.Context, req *dto.SaveExcelSettingsRequest) (*model.ExcelSetting, error) {
	setting := &model.ExcelSetting{
		AuftragsnummerColumn: req.Settings.AuftragsnummerColumn,
	}
	if err := s.repo.SaveExcelSetting(ctx, setting); err != nil {
		s.log.Error("保存 Excel 设置失败", zap.Error(err))
		return nil, err
	}
	s.log.Info("Excel 设置已保存", zap.Int("auftragsnummer_column", setting.AuftragsnummerColumn))
	return setting, nil
}

func (s *settingsService) GetColumnSettings(ctx context.Context) ([]model.ColumnSetting, error) {
	return s.repo.ListColumnSettings(ctx)
}

func (s *settingsService) SaveColumnSettings(ctx context.Context, req *dto.SaveColumnSettingsRequest) ([]model.ColumnSetting, error) {
	settings := make([]model.ColumnSetting, 0, len(req.Settings))
	for i, in := range req.Settings {
		pos := in.DisplayPosition
		if pos == 0 {
			pos = i + 1
		}
		settings = append(settings, model.ColumnSetting{
			Title:           in.Title,
			ColumnNumber:    in.ColumnNumber,
			DisplayPosition: pos,
		})
	}

	if err := s.repo.ReplaceColumnSettings(ctx, settings); err != nil {
		s.log.Error("保存看板列设置失败", zap.Error(err))
		return nil, err
	}
	s.log.Info("看板列设置已保存", zap.Int("count", len(settings)))
	return settings, nil
}
