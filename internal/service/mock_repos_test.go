package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// ── 测试用内存仓储 ──

type mockDepartmentRepo struct {
	depts  []model.Department
	nextID uint
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{nextID: 1}
}

func (m *mockDepartmentRepo) Create(ctx context.Context, dept *model.Department) error {
	for _, d := range m.depts {
		if d.Name == dept.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	dept.ID = m.nextID
	m.nextID++
	m.depts = append(m.depts, *dept)
	return nil
}

func (m *mockDepartmentRepo) GetByID(ctx context.Context, id uint) (*model.Department, error) {
	for _, d := range m.depts {
		if d.ID == id {
			dept := d
			return &dept, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) GetByName(ctx context.Context, name string) (*model.Department, error) {
	for _, d := range m.depts {
		if d.Name == name {
			dept := d
			return &dept, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]model.Department, error) {
	out := append([]model.Department(nil), m.depts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id uint) (int64, error) {
	for i, d := range m.depts {
		if d.ID == id {
			m.depts = append(m.depts[:i], m.depts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type mockAdditionalInfoRepo struct {
	infos  []model.AdditionalInfo
	depts  *mockDepartmentRepo
	nextID uint
}

func newMockAdditionalInfoRepo(depts *mockDepartmentRepo) *mockAdditionalInfoRepo {
	return &mockAdditionalInfoRepo{depts: depts, nextID: 1}
}

func (m *mockAdditionalInfoRepo) Create(ctx context.Context, info *model.AdditionalInfo) error {
	info.ID = m.nextID
	m.nextID++
	m.infos = append(m.infos, *info)
	return nil
}

func (m *mockAdditionalInfoRepo) List(ctx context.Context) ([]repository.AdditionalInfoEntry, error) {
	entries := make([]repository.AdditionalInfoEntry, 0, len(m.infos))
	for _, info := range m.infos {
		entry := repository.AdditionalInfoEntry{AdditionalInfo: info}
		if dept, err := m.depts.GetByID(ctx, info.DepartmentID); err == nil {
			entry.DepartmentName = dept.Name
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *mockAdditionalInfoRepo) ListByDepartmentID(ctx context.Context, departmentID uint) ([]model.AdditionalInfo, error) {
	var out []model.AdditionalInfo
	for _, info := range m.infos {
		if info.DepartmentID == departmentID {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockAdditionalInfoRepo) Delete(ctx context.Context, id uint) (int64, error) {
	for i, info := range m.infos {
		if info.ID == id {
			m.infos = append(m.infos[:i], m.infos[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type mockScanOrderRepo struct {
	orders []model.ScanOrder
	nextID uint
}

func newMockScanOrderRepo() *mockScanOrderRepo {
	return &mockScanOrderRepo{nextID: 1}
}

func (m *mockScanOrderRepo) Create(ctx context.Context, order *model.ScanOrder) error {
	for _, o := range m.orders {
		if o.Auftragsnummer == order.Auftragsnummer && !o.Completed {
			return gorm.ErrDuplicatedKey
		}
	}
	order.ID = m.nextID
	m.nextID++
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockScanOrderRepo) ListAll(ctx context.Context) ([]model.ScanOrder, error) {
	return append([]model.ScanOrder(nil), m.orders...), nil
}

func (m *mockScanOrderRepo) ListOpen(ctx context.Context) ([]model.ScanOrder, error) {
	var out []model.ScanOrder
	for _, o := range m.orders {
		if !o.Completed {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zeitstempel.Before(out[j].Zeitstempel) })
	return out, nil
}

func (m *mockScanOrderRepo) ListOpenByNummer(ctx context.Context, nummer string) ([]model.ScanOrder, error) {
	var out []model.ScanOrder
	for _, o := range m.orders {
		if o.Auftragsnummer == nummer && !o.Completed {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zeitstempel.Before(out[j].Zeitstempel) })
	return out, nil
}

func (m *mockScanOrderRepo) Close(ctx context.Context, id uint, abschluss time.Time, ergebnis string) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Completed = true
			m.orders[i].AbschlussZeitstempel = &abschluss
			m.orders[i].Ergebnis = ergebnis
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScanOrderRepo) ListArchived(ctx context.Context) ([]model.ScanOrder, error) {
	var out []model.ScanOrder
	for _, o := range m.orders {
		if o.Completed {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AbschlussZeitstempel.After(*out[j].AbschlussZeitstempel)
	})
	return out, nil
}

type mockMediaRepo struct {
	media  []model.OrderMedia
	nextID uint
}

func newMockMediaRepo() *mockMediaRepo {
	return &mockMediaRepo{nextID: 1}
}

func (m *mockMediaRepo) Create(ctx context.Context, media *model.OrderMedia) error {
	media.ID = m.nextID
	m.nextID++
	m.media = append(m.media, *media)
	return nil
}

func (m *mockMediaRepo) List(ctx context.Context) ([]model.OrderMedia, error) {
	return append([]model.OrderMedia(nil), m.media...), nil
}

func (m *mockMediaRepo) ListByNummer(ctx context.Context, nummer string) ([]model.OrderMedia, error) {
	var out []model.OrderMedia
	for _, md := range m.media {
		if md.Auftragsnummer == nummer {
			out = append(out, md)
		}
	}
	return out, nil
}

type mockSettingsRepo struct {
	excelSetting *model.ExcelSetting
	excelData    *model.ExcelData
	columns      []model.ColumnSetting
}

func (m *mockSettingsRepo) LatestExcelSetting(ctx context.Context) (*model.ExcelSetting, error) {
	return m.excelSetting, nil
}

func (m *mockSettingsRepo) SaveExcelSetting(ctx context.Context, setting *model.ExcelSetting) error {
	m.excelSetting = setting
	return nil
}

func (m *mockSettingsRepo) ListColumnSettings(ctx context.Context) ([]model.ColumnSetting, error) {
	return append([]model.ColumnSetting(nil), m.columns...), nil
}

func (m *mockSettingsRepo) ReplaceColumnSettings(ctx context.Context, settings []model.ColumnSetting) error {
	m.columns = append([]model.ColumnSetting(nil), settings...)
	return nil
}

func (m *mockSettingsRepo) SaveExcelData(ctx context.Context, data *model.ExcelData) error {
	m.excelData = data
	return nil
}

func (m *mockSettingsRepo) LatestExcelData(ctx context.Context) (*model.ExcelData, error) {
	return m.excelData, nil
}

// matrixRow 参照数据行的便捷构造
func matrixRow(cells ...string) []interface{} {
	row := make([]interface{}, 0, len(cells))
	for _, c := range cells {
		row = append(row, strings.TrimSpace(c))
	}
	return row
}
