package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
	"github.com/KalitoMero/silent-excel-vault/pkg/durfmt"
	"github.com/KalitoMero/silent-excel-vault/pkg/redis"
)

// Engine 看板引擎。
//
// 两个节奏解耦：轮询只刷新底层数据（开放工单 + 列设置），停留时长
// 字符串在每次取快照时由原始时间戳即时重算，因此即使两次轮询之间
// 没有任何数据变化，看板上的时长显示也在持续走动。
type Engine struct {
	orders   service.OrderService
	settings service.SettingsService
	cache    *redis.Client // 可为 nil，降级为纯数据库读取
	log      *zap.Logger

	pollInterval time.Duration
	scanner      *Scanner

	mu          sync.RWMutex
	open        []model.ScanOrder
	columns     []model.ColumnSetting
	refreshedAt time.Time
}

// NewEngine 创建看板引擎
func NewEngine(
	orders service.OrderService,
	settings service.SettingsService,
	cache *redis.Client,
	pollInterval, barcodeTimeout time.Duration,
	log *zap.Logger,
) *Engine {
	e := &Engine{
		orders:       orders,
		settings:     settings,
		cache:        cache,
		log:          log,
		pollInterval: pollInterval,
	}
	e.scanner = NewScanner(barcodeTimeout, e.onBarcode)
	return e
}

// Scanner 引擎持有的全局条码监听器
func (e *Engine) Scanner() *Scanner { return e.scanner }

// Run 轮询循环，直到 ctx 结束
func (e *Engine) Run(ctx context.Context) {
	if err := e.Refresh(ctx); err != nil {
		e.log.Error("看板首次刷新失败", zap.Error(err))
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.Refresh(ctx); err != nil {
				e.log.Error("看板刷新失败", zap.Error(err))
			}
		}
	}
}

// Refresh 从数据库刷新底层数据并更新共享缓存
func (e *Engine) Refresh(ctx context.Context) error {
	open, err := e.orders.ListOpen(ctx)
	if err != nil {
		return err
	}
	columns, err := e.settings.GetColumnSettings(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.open = open
	e.columns = columns
	e.refreshedAt = time.Now()
	e.mu.Unlock()

	e.cacheBoard(ctx)
	return nil
}

// Snapshot 当前看板快照；停留时长字符串在此刻重算，不触发数据库
func (e *Engine) Snapshot() *dto.MonitorBoard {
	return e.snapshotAt(time.Now())
}

func (e *Engine) snapshotAt(now time.Time) *dto.MonitorBoard {
	e.mu.RLock()
	defer e.mu.RUnlock()

	board := &dto.MonitorBoard{
		Prio1:       []dto.BoardEntry{},
		Prio2:       []dto.BoardEntry{},
		Columns:     make([]dto.BoardColumn, 0, len(e.columns)),
		RefreshedAt: e.refreshedAt,
	}

	for i := range e.open {
		o := &e.open[i]
		entry := dto.BoardEntry{
			Auftragsnummer:      o.Auftragsnummer,
			Zeitstempel:         o.Zeitstempel,
			AufenthaltsZeitInQS: durfmt.Seit(o.Zeitstempel, now),
			Abteilung:           o.Abteilung,
			Zusatzinfo:          o.Zusatzinfo,
			ZusatzDaten:         o.ZusatzDaten,
		}
		switch o.Prioritaet {
		case 1:
			board.Prio1 = append(board.Prio1, entry)
		case 2:
			board.Prio2 = append(board.Prio2, entry)
		}
	}

	for _, col := range e.columns {
		board.Columns = append(board.Columns, dto.BoardColumn{
			Title:           col.Title,
			DisplayPosition: col.DisplayPosition,
		})
	}
	sort.SliceStable(board.Columns, func(i, j int) bool {
		return board.Columns[i].DisplayPosition < board.Columns[j].DisplayPosition
	})

	return board
}

// cacheBoard 将快照写入共享缓存；缓存不可用时静默降级
func (e *Engine) cacheBoard(ctx context.Context) {
	if e.cache == nil {
		return
	}
	payload, err := json.Marshal(e.Snapshot())
	if err != nil {
		return
	}
	if err := e.cache.SetBoard(ctx, payload, 2*e.pollInterval); err != nil {
		e.log.Warn("写入看板缓存失败", zap.Error(err))
	}
}

// CachedBoard 读取共享缓存的看板；未命中或缓存不可用返回 (nil, nil)
func (e *Engine) CachedBoard(ctx context.Context) (*dto.MonitorBoard, error) {
	if e.cache == nil {
		return nil, nil
	}
	payload, err := e.cache.GetBoard(ctx)
	if err != nil || payload == nil {
		return nil, err
	}
	var board dto.MonitorBoard
	if err := json.Unmarshal(payload, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// ProcessBarcode 处理一个完整条码：与开放工单精确匹配则正常完成，
// 未知条码只提示不改动任何数据
func (e *Engine) ProcessBarcode(ctx context.Context, code string) (*dto.ArchivedOrderResponse, error) {
	resp, err := e.orders.CompleteOrder(ctx, code)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			e.log.Info("条码无匹配的开放工单", zap.String("code", code))
		}
		return nil, err
	}

	e.log.Info("扫码完成工单",
		zap.String("auftragsnummer", resp.Auftragsnummer),
		zap.String("aufenthaltszeit", resp.AufenthaltsZeitInQS))

	if err := e.Refresh(ctx); err != nil {
		e.log.Warn("完成后刷新看板失败", zap.Error(err))
	}
	return resp, nil
}

// onBarcode 监听器派发回调（后台路径，无调用方等待结果）
func (e *Engine) onBarcode(code string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := e.ProcessBarcode(ctx, code); err != nil && !errors.Is(err, service.ErrOrderNotFound) {
		e.log.Error("处理条码失败", zap.String("code", code), zap.Error(err))
	}
}
