package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/model"
)

// SettingsRepository 设置与参照数据访问接口
// 覆盖看板列设置、Excel 列设置与导入的参照数据
type SettingsRepository interface {
	// LatestExcelSetting 最新一条 Excel 列设置；不存在时返回 (nil, nil)
	LatestExcelSetting(ctx context.Context) (*model.ExcelSetting, error)
	SaveExcelSetting(ctx context.Context, setting *model.ExcelSetting) error

	// ListColumnSettings 按 column_number 升序返回看板附加列设置
	ListColumnSettings(ctx context.Context) ([]model.ColumnSetting, error)
	// ReplaceColumnSettings 全量替换看板附加列设置（事务内先删后插）
	ReplaceColumnSettings(ctx context.Context, settings []model.ColumnSetting) error

	SaveExcelData(ctx context.Context, data *model.ExcelData) error
	// LatestExcelData 最新一份参照数据；不存在时返回 (nil, nil)
	LatestExcelData(ctx context.Context) (*model.ExcelData, error)
}

// settingsRepo SettingsRepository 的 GORM 实现
type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo 创建 SettingsRepository 实例
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) LatestExcelSetting(ctx context.Context) (*model.ExcelSetting, error) {
	var setting model.ExcelSetting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepo) SaveExcelSetting(ctx context.Context, setting *model.ExcelSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *settingsRepo) ListColumnSettings(ctx context.Context) ([]model.ColumnSetting, error) {
	var settings []model.ColumnSetting
	err := r.db.WithContext(ctx).
		Order("column_number ASC").
		Find(&settings).Error
	return settings, err
}

func (r *settingsRepo) ReplaceColumnSettings(ctx context.Context, settings []model.ColumnSetting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.ColumnSetting{}).Error; err != nil {
			return err
		}
		if len(settings) == 0 {
			return nil
		}
		return tx.Create(&settings).Error
	})
}

func (r *settingsRepo) SaveExcelData(ctx context.Context, data *model.ExcelData) error {
	return r.db.WithContext(ctx).Create(data).Error
}

func (r *settingsRepo) LatestExcelData(ctx context.Context) (*model.ExcelData, error) {
	var data model.ExcelData
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}
