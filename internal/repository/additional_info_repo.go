package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/model"
)

// AdditionalInfoEntry 追加信息 + 所属部门名（联查结果）
type AdditionalInfoEntry struct {
	model.AdditionalInfo
	DepartmentName string `json:"department_name"`
}

// AdditionalInfoRepository 追加信息数据访问接口
type AdditionalInfoRepository interface {
	Create(ctx context.Context, info *model.AdditionalInfo) error
	List(ctx context.Context) ([]AdditionalInfoEntry, error)
	ListByDepartmentID(ctx context.Context, departmentID uint) ([]model.AdditionalInfo, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// additionalInfoRepo AdditionalInfoRepository 的 GORM 实现
type additionalInfoRepo struct {
	db *gorm.DB
}

// NewAdditionalInfoRepo 创建 AdditionalInfoRepository 实例
func NewAdditionalInfoRepo(db *gorm.DB) AdditionalInfoRepository {
	return &additionalInfoRepo{db: db}
}

func (r *additionalInfoRepo) Create(ctx context.Context, info *model.AdditionalInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *additionalInfoRepo) List(ctx context.Context) ([]AdditionalInfoEntry, error) {
	var entries []AdditionalInfoEntry
	err := r.db.WithContext(ctx).
		Model(&model.AdditionalInfo{}).
		Select("additional_infos.*, departments.name AS department_name").
		Joins("LEFT JOIN departments ON additional_infos.department_id = departments.id").
		Order("additional_infos.name ASC").
		Scan(&entries).Error
	return entries, err
}

func (r *additionalInfoRepo) ListByDepartmentID(ctx context.Context, departmentID uint) ([]model.AdditionalInfo, error) {
	var infos []model.AdditionalInfo
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("name ASC").
		Find(&infos).Error
	return infos, err
}

func (r *additionalInfoRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AdditionalInfo{})
	return res.RowsAffected, res.Error
}
