package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
)

func newTestOrderService(orders *mockScanOrderRepo, settings *mockSettingsRepo) *orderService {
	return &orderService{
		repo:         orders,
		settingsRepo: settings,
		log:          zap.NewNop(),
		now:          time.Now,
	}
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestOrderService(newMockScanOrderRepo(), &mockSettingsRepo{})
	ctx := context.Background()

	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "  ", Prioritaet: 1}); !errors.Is(err, ErrAuftragsnummerEmpty) {
		t.Errorf("空业务键应被拒绝, 实际 %v", err)
	}
	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "AB-1", Prioritaet: 3}); !errors.Is(err, ErrInvalidPrioritaet) {
		t.Errorf("非法优先级应被拒绝, 实际 %v", err)
	}
}

// 同一业务键：开放工单存在期间再次创建必须冲突
func TestCreateOrderRejectsSecondOpenOrder(t *testing.T) {
	s := newTestOrderService(newMockScanOrderRepo(), &mockSettingsRepo{})
	ctx := context.Background()

	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "AB-1", Prioritaet: 1}); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "AB-1", Prioritaet: 2}); !errors.Is(err, ErrOpenOrderExists) {
		t.Fatalf("应报开放工单冲突, 实际 %v", err)
	}
}

// 完成后同一业务键可以重新进入系统
func TestAuftragsnummerReusableAfterCompletion(t *testing.T) {
	s := newTestOrderService(newMockScanOrderRepo(), &mockSettingsRepo{})
	ctx := context.Background()

	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "AB-1", Prioritaet: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CompleteOrder(ctx, "AB-1"); err != nil {
		t.Fatalf("完成失败: %v", err)
	}
	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "AB-1", Prioritaet: 2}); err != nil {
		t.Errorf("完成后应可重新创建: %v", err)
	}
}

// 参照数据补全：按 Excel 设置定位行，按列设置取值进 zusatzDaten
func TestCreateOrderEnrichesZusatzDaten(t *testing.T) {
	settings := &mockSettingsRepo{
		excelSetting: &model.ExcelSetting{AuftragsnummerColumn: 1},
		excelData: &model.ExcelData{
			Filename: "auftraege.xlsx",
			Data: model.RowMatrix{
				matrixRow("Auftragsnummer", "Kunde", "Artikel"),
				matrixRow("AB-1", "Musterfirma", "Welle 30mm"),
				matrixRow("AB-2", "Beispiel AG", "Flansch"),
			},
		},
		columns: []model.ColumnSetting{
			{Title: "Kunde", ColumnNumber: 2, DisplayPosition: 1},
			{Title: "Artikel", ColumnNumber: 3, DisplayPosition: 2},
		},
	}
	s := newTestOrderService(newMockScanOrderRepo(), settings)

	order, err := s.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Auftragsnummer: "AB-2",
		Prioritaet:     1,
		ZusatzDaten:    map[string]interface{}{"mediaInfo": "Textnotiz hinzugefügt"},
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	if order.ZusatzDaten["Kunde"] != "Beispiel AG" || order.ZusatzDaten["Artikel"] != "Flansch" {
		t.Errorf("参照数据补全错误: %v", order.ZusatzDaten)
	}
	if order.ZusatzDaten["mediaInfo"] != "Textnotiz hinzugefügt" {
		t.Errorf("请求携带的 zusatzDaten 应保留: %v", order.ZusatzDaten)
	}
}

// 无参照数据配置时不补全也不报错
func TestCreateOrderWithoutReferenceData(t *testing.T) {
	s := newTestOrderService(newMockScanOrderRepo(), &mockSettingsRepo{})

	order, err := s.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Auftragsnummer: "AB-1",
		Prioritaet:     2,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if len(order.ZusatzDaten) != 0 {
		t.Errorf("无参照数据时 zusatzDaten 应为空: %v", order.ZusatzDaten)
	}
}

func TestCompleteOrderNotFound(t *testing.T) {
	s := newTestOrderService(newMockScanOrderRepo(), &mockSettingsRepo{})
	if _, err := s.CompleteOrder(context.Background(), "GIBT-ES-NICHT"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("应报未找到, 实际 %v", err)
	}
}

// 完成的归档条目带推导的停留时长与正常结果标记
func TestCompleteOrderDerivesElapsed(t *testing.T) {
	repo := newMockScanOrderRepo()
	s := newTestOrderService(repo, &mockSettingsRepo{})
	ctx := context.Background()

	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }
	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "AB-1", Prioritaet: 1}); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return start.Add(3*time.Hour + 12*time.Minute + 45*time.Second) }
	resp, err := s.CompleteOrder(ctx, "AB-1")
	if err != nil {
		t.Fatalf("完成失败: %v", err)
	}

	if resp.Ergebnis != model.ErgebnisAbgeschlossen {
		t.Errorf("结果标记错误: %s", resp.Ergebnis)
	}
	if want := "3 Stunden, 12 Minuten, 45 Sekunden"; resp.AufenthaltsZeitInQS != want {
		t.Errorf("停留时长错误: got %q, want %q", resp.AufenthaltsZeitInQS, want)
	}
}

// 异常数据下存在多条开放工单：关闭最早一条
func TestCompleteOrderClosesOldest(t *testing.T) {
	repo := newMockScanOrderRepo()
	base := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	repo.orders = []model.ScanOrder{
		{ID: 1, Auftragsnummer: "AB-1", Prioritaet: 1, Zeitstempel: base.Add(time.Hour)},
		{ID: 2, Auftragsnummer: "AB-1", Prioritaet: 1, Zeitstempel: base},
	}
	repo.nextID = 3
	s := newTestOrderService(repo, &mockSettingsRepo{})

	if _, err := s.CompleteOrder(context.Background(), "AB-1"); err != nil {
		t.Fatalf("完成失败: %v", err)
	}

	open, _ := repo.ListOpenByNummer(context.Background(), "AB-1")
	if len(open) != 1 || open[0].ID != 1 {
		t.Errorf("应关闭最早的工单(ID 2), 剩余 %v", open)
	}
}

// 取消的工单带取消标记且不展示停留时长
func TestCancelOrderMarksAbgebrochen(t *testing.T) {
	s := newTestOrderService(newMockScanOrderRepo(), &mockSettingsRepo{})
	ctx := context.Background()

	if _, err := s.CreateOrder(ctx, &dto.CreateOrderRequest{Auftragsnummer: "AB-1", Prioritaet: 1}); err != nil {
		t.Fatal(err)
	}
	resp, err := s.CancelOrder(ctx, "AB-1")
	if err != nil {
		t.Fatalf("取消失败: %v", err)
	}

	if resp.Ergebnis != model.ErgebnisAbgebrochen {
		t.Errorf("结果标记错误: %s", resp.Ergebnis)
	}
	if resp.AufenthaltsZeitInQS != "" {
		t.Errorf("取消的工单不应展示停留时长: %q", resp.AufenthaltsZeitInQS)
	}
}
