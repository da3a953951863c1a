package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/model"
)

// ScanOrderRepository 扫描工单数据访问接口
type ScanOrderRepository interface {
	// Create 新建工单；同一业务键已存在未完成工单时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, order *model.ScanOrder) error
	ListAll(ctx context.Context) ([]model.ScanOrder, error)
	// ListOpen 返回全部未完成工单，按 zeitstempel 升序（FIFO，等待最久者在前）
	ListOpen(ctx context.Context) ([]model.ScanOrder, error)
	// ListOpenByNummer 返回某业务键的未完成工单，按 zeitstempel 升序
	ListOpenByNummer(ctx context.Context, auftragsnummer string) ([]model.ScanOrder, error)
	// Close 将工单标记为已关闭并记录结束时刻与结果标记
	Close(ctx context.Context, id uint, abschluss time.Time, ergebnis string) error
	// ListArchived 返回全部已关闭工单，按结束时刻降序
	ListArchived(ctx context.Context) ([]model.ScanOrder, error)
}

// scanOrderRepo ScanOrderRepository 的 GORM 实现
type scanOrderRepo struct {
	db *gorm.DB
}

// NewScanOrderRepo 创建 ScanOrderRepository 实例
func NewScanOrderRepo(db *gorm.DB) ScanOrderRepository {
	return &scanOrderRepo{db: db}
}

// Create 在事务内先检查再插入，维持“每个业务键至多一个开放工单”的约束；
// 并发竞争下部分唯一索引兜底（TranslateError 将其翻译为 ErrDuplicatedKey）。
func (r *scanOrderRepo) Create(ctx context.Context, order *model.ScanOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ScanOrder{}).
			Where("auftragsnummer = ? AND NOT completed", order.Auftragsnummer).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(order).Error
	})
}

func (r *scanOrderRepo) ListAll(ctx context.Context) ([]model.ScanOrder, error) {
	var orders []model.ScanOrder
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *scanOrderRepo) ListOpen(ctx context.Context) ([]model.ScanOrder, error) {
	var orders []model.ScanOrder
	err := r.db.WithContext(ctx).
		Where("NOT completed").
		Order("zeitstempel ASC").
		Find(&orders).Error
	return orders, err
}

func (r *scanOrderRepo) ListOpenByNummer(ctx context.Context, auftragsnummer string) ([]model.ScanOrder, error) {
	var orders []model.ScanOrder
	err := r.db.WithContext(ctx).
		Where("auftragsnummer = ? AND NOT completed", auftragsnummer).
		Order("zeitstempel ASC").
		Find(&orders).Error
	return orders, err
}

func (r *scanOrderRepo) Close(ctx context.Context, id uint, abschluss time.Time, ergebnis string) error {
	return r.db.WithContext(ctx).
		Model(&model.ScanOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed":             true,
			"abschluss_zeitstempel": abschluss,
			"ergebnis":              ergebnis,
		}).Error
}

func (r *scanOrderRepo) ListArchived(ctx context.Context) ([]model.ScanOrder, error) {
	var orders []model.ScanOrder
	err := r.db.WithContext(ctx).
		Where("completed").
		Order("abschluss_zeitstempel DESC").
		Find(&orders).Error
	return orders, err
}
