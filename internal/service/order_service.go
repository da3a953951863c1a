package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
	"github.com/KalitoMero/silent-excel-vault/pkg/durfmt"
)

// ── 工单模块业务错误 ──

var (
	ErrAuftragsnummerEmpty = errors.New("auftragsnummer must not be empty")
	ErrInvalidPrioritaet   = errors.New("prioritaet must be 1 or 2")
	// ErrOpenOrderExists 同一业务键已存在未完成工单
	ErrOpenOrderExists = errors.New("an open order with this auftragsnummer already exists")
	// ErrOrderNotFound 不存在匹配的未完成工单
	ErrOrderNotFound = errors.New("no open order found for this auftragsnummer")
)

// OrderService 扫描工单业务接口
type OrderService interface {
	// CreateOrder 创建工单；zusatzDaten 自动从导入的参照数据补全
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.ScanOrder, error)
	ListAll(ctx context.Context) ([]model.ScanOrder, error)
	ListOpen(ctx context.Context) ([]model.ScanOrder, error)
	// CompleteOrder 正常完成某业务键最早的未完成工单（看板扫码路径）
	CompleteOrder(ctx context.Context, auftragsnummer string) (*dto.ArchivedOrderResponse, error)
	// CancelOrder 取消某业务键最早的未完成工单（不计入统计均值）
	CancelOrder(ctx context.Context, auftragsnummer string) (*dto.ArchivedOrderResponse, error)
	ListArchived(ctx context.Context) ([]dto.ArchivedOrderResponse, error)
}

type orderService struct {
	repo         repository.ScanOrderRepository
	settingsRepo repository.SettingsRepository
	log          *zap.Logger
	now          func() time.Time
}

// NewOrderService 创建 OrderService 实例
func NewOrderService(repo repository.ScanOrderRepository, settingsRepo repository.SettingsRepository, log *zap.Logger) OrderService {
	return &orderService{
		repo:         repo,
		settingsRepo: settingsRepo,
		log:          log,
		now:          time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.ScanOrder, error) {
	nummer := strings.TrimSpace(req.Auftragsnummer)
	if nummer == "" {
		return nil, ErrAuftragsnummerEmpty
	}
	if req.Prioritaet != 1 && req.Prioritaet != 2 {
		return nil, ErrInvalidPrioritaet
	}

	zeitstempel := s.now()
	if req.Zeitstempel != nil {
		zeitstempel = *req.Zeitstempel
	}

	zusatzDaten := s.enrichZusatzDaten(ctx, nummer, req.ZusatzDaten)

	order := &model.ScanOrder{
		Auftragsnummer: nummer,
		Prioritaet:     req.Prioritaet,
		Zeitstempel:    zeitstempel,
		Abteilung:      strings.TrimSpace(req.Abteilung),
		Zusatzinfo:     strings.TrimSpace(req.Zusatzinfo),
		ZusatzDaten:    zusatzDaten,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOpenOrderExists
		}
		s.log.Error("创建工单失败", zap.String("auftragsnummer", nummer), zap.Error(err))
		return nil, err
	}

	s.log.Info("工单已创建",
		zap.Uint("id", order.ID),
		zap.String("auftragsnummer", nummer),
		zap.Int("prioritaet", order.Prioritaet))
	return order, nil
}

// enrichZusatzDaten 按最新 Excel 设置与参照数据补全 zusatzDaten：
// 在行矩阵中定位业务键所在行，再按看板列设置逐列取值。
// 参照数据查询失败只降级不阻断（工单创建优先于附加展示）。
func (s *orderService) enrichZusatzDaten(ctx context.Context, nummer string, base map[string]interface{}) model.JSONMap {
	daten := model.JSONMap{}
	for k, v := range base {
		daten[k] = v
	}

	setting, err := s.settingsRepo.LatestExcelSetting(ctx)
	if err != nil {
		s.log.Warn("读取 Excel 设置失败, 跳过参照数据补全", zap.Error(err))
		return daten
	}
	if setting == nil {
		return daten
	}

	excelData, err := s.settingsRepo.LatestExcelData(ctx)
	if err != nil {
		s.log.Warn("读取参照数据失败, 跳过补全", zap.Error(err))
		return daten
	}
	if excelData == nil {
		return daten
	}

	columns, err := s.settingsRepo.ListColumnSettings(ctx)
	if err != nil {
		s.log.Warn("读取看板列设置失败, 跳过补全", zap.Error(err))
		return daten
	}

	keyCol := setting.AuftragsnummerColumn - 1
	for _, row := range excelData.Data {
		if keyCol < 0 || keyCol >= len(row) {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[keyCol])) != nummer {
			continue
		}
		for _, col := range columns {
			idx := col.ColumnNumber - 1
			if idx >= 0 && idx < len(row) {
				daten[col.Title] = row[idx]
			}
		}
		break
	}
	return daten
}

func (s *orderService) ListAll(ctx context.Context) ([]model.ScanOrder, error) {
	return s.repo.ListAll(ctx)
}

func (s *orderService) ListOpen(ctx context.Context) ([]model.ScanOrder, error) {
	return s.repo.ListOpen(ctx)
}

func (s *orderService) CompleteOrder(ctx context.Context, auftragsnummer string) (*dto.ArchivedOrderResponse, error) {
	return s.closeOrder(ctx, auftragsnummer, model.ErgebnisAbgeschlossen)
}

func (s *orderService) CancelOrder(ctx context.Context, auftragsnummer string) (*dto.ArchivedOrderResponse, error) {
	return s.closeOrder(ctx, auftragsnummer, model.ErgebnisAbgebrochen)
}

// closeOrder 关闭某业务键最早的未完成工单。
// 正常情况下最多一条匹配；多于一条属于异常数据，取最早者并记录警告。
func (s *orderService) closeOrder(ctx context.Context, auftragsnummer, ergebnis string) (*dto.ArchivedOrderResponse, error) {
	nummer := strings.TrimSpace(auftragsnummer)
	if nummer == "" {
		return nil, ErrAuftragsnummerEmpty
	}

	open, err := s.repo.ListOpenByNummer(ctx, nummer)
	if err != nil {
		s.log.Error("查询未完成工单失败", zap.String("auftragsnummer", nummer), zap.Error(err))
		return nil, err
	}
	if len(open) == 0 {
		return nil, ErrOrderNotFound
	}
	if len(open) > 1 {
		s.log.Warn("同一业务键存在多条未完成工单, 关闭最早一条",
			zap.String("auftragsnummer", nummer),
			zap.Int("count", len(open)))
	}

	order := open[0]
	abschluss := s.now()
	if err := s.repo.Close(ctx, order.ID, abschluss, ergebnis); err != nil {
		s.log.Error("关闭工单失败", zap.Uint("id", order.ID), zap.Error(err))
		return nil, err
	}

	s.log.Info("工单已关闭",
		zap.Uint("id", order.ID),
		zap.String("auftragsnummer", nummer),
		zap.String("ergebnis", ergebnis))

	order.Completed = true
	order.AbschlussZeitstempel = &abschluss
	order.Ergebnis = ergebnis
	resp := toArchivedResponse(&order)
	return &resp, nil
}

func (s *orderService) ListArchived(ctx context.Context) ([]dto.ArchivedOrderResponse, error) {
	orders, err := s.repo.ListArchived(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ArchivedOrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toArchivedResponse(&orders[i]))
	}
	return resp, nil
}

// toArchivedResponse 归档条目始终由存储字段即时推导；
// 停留时长只对正常完成的工单展示，取消的只带结果标记。
func toArchivedResponse(order *model.ScanOrder) dto.ArchivedOrderResponse {
	resp := dto.ArchivedOrderResponse{
		Auftragsnummer: order.Auftragsnummer,
		Prioritaet:     order.Prioritaet,
		Zeitstempel:    order.Zeitstempel,
		Abteilung:      order.Abteilung,
		Zusatzinfo:     order.Zusatzinfo,
		ZusatzDaten:    order.ZusatzDaten,
		Ergebnis:       order.Ergebnis,
	}
	if order.AbschlussZeitstempel != nil {
		resp.AbschlussZeitstempel = *order.AbschlussZeitstempel
		if order.Ergebnis == model.ErgebnisAbgeschlossen {
			resp.AufenthaltsZeitInQS = durfmt.Seit(order.Zeitstempel, *order.AbschlussZeitstempel)
		}
	}
	return resp
}
