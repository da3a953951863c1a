package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/model"
)

// MediaRepository 工单媒体附件数据访问接口
type MediaRepository interface {
	Create(ctx context.Context, media *model.OrderMedia) error
	List(ctx context.Context) ([]model.OrderMedia, error)
	ListByNummer(ctx context.Context, auftragsnummer string) ([]model.OrderMedia, error)
}

// mediaRepo MediaRepository 的 GORM 实现
type mediaRepo struct {
	db *gorm.DB
}

// NewMediaRepo 创建 MediaRepository 实例
func NewMediaRepo(db *gorm.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Create(ctx context.Context, media *model.OrderMedia) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepo) List(ctx context.Context) ([]model.OrderMedia, error) {
	var media []model.OrderMedia
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&media).Error
	return media, err
}

func (r *mediaRepo) ListByNummer(ctx context.Context, auftragsnummer string) ([]model.OrderMedia, error) {
	var media []model.OrderMedia
	err := r.db.WithContext(ctx).
		Where("auftragsnummer = ?", auftragsnummer).
		Order("created_at DESC").
		Find(&media).Error
	return media, err
}
