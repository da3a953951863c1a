package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock OrderService ──

type mockOrderService struct {
	createResult   *model.ScanOrder
	createErr      error
	listAllResult  []model.ScanOrder
	listOpenResult []model.ScanOrder
	completeResult *dto.ArchivedOrderResponse
	completeErr    error
	cancelResult   *dto.ArchivedOrderResponse
	cancelErr      error
	archivedResult []dto.ArchivedOrderResponse
	archivedErr    error
}

func (m *mockOrderService) CreateOrder(_ context.Context, _ *dto.CreateOrderRequest) (*model.ScanOrder, error) {
	return m.createResult, m.createErr
}
func (m *mockOrderService) ListAll(_ context.Context) ([]model.ScanOrder, error) {
	return m.listAllResult, nil
}
func (m *mockOrderService) ListOpen(_ context.Context) ([]model.ScanOrder, error) {
	return m.listOpenResult, nil
}
func (m *mockOrderService) CompleteOrder(_ context.Context, _ string) (*dto.ArchivedOrderResponse, error) {
	return m.completeResult, m.completeErr
}
func (m *mockOrderService) CancelOrder(_ context.Context, _ string) (*dto.ArchivedOrderResponse, error) {
	return m.cancelResult, m.cancelErr
}
func (m *mockOrderService) ListArchived(_ context.Context) ([]dto.ArchivedOrderResponse, error) {
	return m.archivedResult, m.archivedErr
}

// ── Mock DepartmentService ──

type mockDepartmentService struct {
	createResult *model.Department
	createErr    error
	listResult   []model.Department
	deleteErr    error
}

func (m *mockDepartmentService) Create(_ context.Context, _ string) (*model.Department, error) {
	return m.createResult, m.createErr
}
func (m *mockDepartmentService) List(_ context.Context) ([]model.Department, error) {
	return m.listResult, nil
}
func (m *mockDepartmentService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

// ── Mock StatisticsService ──

type mockStatisticsService struct {
	statsResult *dto.StatisticsResponse
	statsErr    error
	exportBuf   *bytes.Buffer
	exportName  string
	exportErr   error
}

func (m *mockStatisticsService) Statistics(_ context.Context) (*dto.StatisticsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockStatisticsService) ExportArchive(_ context.Context) (*bytes.Buffer, string, error) {
	return m.exportBuf, m.exportName, m.exportErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return env
}

func doJSON(h gin.HandlerFunc, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	r := gin.New()
	r.Handle(method, pathPattern(path), h)
	r.ServeHTTP(w, req)
	return w
}

// pathPattern 去掉查询串（测试路由注册用）
func pathPattern(path string) string {
	for i := range path {
		if path[i] == '?' {
			return path[:i]
		}
	}
	return path
}

// ═══════════════════════════════════════════════════════════
// OrderHandler Tests
// ═══════════════════════════════════════════════════════════

func TestOrderHandler_CreateOrder_Success(t *testing.T) {
	mock := &mockOrderService{
		createResult: &model.ScanOrder{
			ID:             1,
			Auftragsnummer: "AB-1",
			Prioritaet:     1,
			Zeitstempel:    time.Now(),
		},
	}
	h := NewOrderHandler(mock)

	w := doJSON(h.CreateOrder, "POST", "/scan-orders", jsonBody(dto.CreateOrderRequest{
		Auftragsnummer: "AB-1",
		Prioritaet:     1,
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if env := parseEnvelope(t, w); !env.Success {
		t.Errorf("expected success envelope, got %s", w.Body.String())
	}
}

func TestOrderHandler_CreateOrder_BadJSON(t *testing.T) {
	h := NewOrderHandler(&mockOrderService{})

	w := doJSON(h.CreateOrder, "POST", "/scan-orders", bytes.NewReader([]byte("bad")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestOrderHandler_CreateOrder_Conflict(t *testing.T) {
	mock := &mockOrderService{createErr: service.ErrOpenOrderExists}
	h := NewOrderHandler(mock)

	w := doJSON(h.CreateOrder, "POST", "/scan-orders", jsonBody(dto.CreateOrderRequest{
		Auftragsnummer: "AB-1",
		Prioritaet:     1,
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if env := parseEnvelope(t, w); env.Success || env.Error == "" {
		t.Errorf("expected error envelope, got %s", w.Body.String())
	}
}

func TestOrderHandler_CompleteOrder_NotFound(t *testing.T) {
	mock := &mockOrderService{completeErr: service.ErrOrderNotFound}
	h := NewOrderHandler(mock)

	w := doJSON(h.CompleteOrder, "POST", "/complete-order", jsonBody(dto.CompleteOrderRequest{
		Auftragsnummer: "GIBT-ES-NICHT",
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestOrderHandler_CompleteOrder_Success(t *testing.T) {
	mock := &mockOrderService{
		completeResult: &dto.ArchivedOrderResponse{
			Auftragsnummer:      "AB-1",
			Ergebnis:            model.ErgebnisAbgeschlossen,
			AufenthaltsZeitInQS: "1 Stunden, 0 Minuten, 0 Sekunden",
		},
	}
	h := NewOrderHandler(mock)

	w := doJSON(h.CompleteOrder, "POST", "/complete-order", jsonBody(dto.CompleteOrderRequest{
		Auftragsnummer: "AB-1",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestOrderHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"EmptyNummer", service.ErrAuftragsnummerEmpty, 400},
		{"InvalidPrio", service.ErrInvalidPrioritaet, 400},
		{"Conflict", service.ErrOpenOrderExists, 409},
		{"NotFound", service.ErrOrderNotFound, 404},
		{"Internal", errors.New("unknown"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockOrderService{createErr: tt.err}
			h := NewOrderHandler(mock)

			w := doJSON(h.CreateOrder, "POST", "/scan-orders", jsonBody(dto.CreateOrderRequest{
				Auftragsnummer: "AB-1",
				Prioritaet:     1,
			}))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// DepartmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDepartmentHandler_Create_Success(t *testing.T) {
	mock := &mockDepartmentService{
		createResult: &model.Department{ID: 1, Name: "Fräserei"},
	}
	h := NewDepartmentHandler(mock)

	w := doJSON(h.CreateDepartment, "POST", "/departments", jsonBody(dto.CreateDepartmentRequest{
		Name: "Fräserei",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestDepartmentHandler_Create_Duplicate(t *testing.T) {
	mock := &mockDepartmentService{createErr: service.ErrDepartmentNameExists}
	h := NewDepartmentHandler(mock)

	w := doJSON(h.CreateDepartment, "POST", "/departments", jsonBody(dto.CreateDepartmentRequest{
		Name: "Fräserei",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestDepartmentHandler_Delete_InvalidID(t *testing.T) {
	h := NewDepartmentHandler(&mockDepartmentService{})

	w := doJSON(h.DeleteDepartment, "DELETE", "/departments/:id", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDepartmentHandler_Delete_NotFound(t *testing.T) {
	mock := &mockDepartmentService{deleteErr: service.ErrDepartmentNotFound}
	h := NewDepartmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/departments/99", nil)
	r := gin.New()
	r.DELETE("/departments/:id", h.DeleteDepartment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// StatisticsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStatisticsHandler_GetStatistics(t *testing.T) {
	mock := &mockStatisticsService{
		statsResult: &dto.StatisticsResponse{
			Prio1: dto.PrioStatistik{Anzahl: 3, MittlereAufenthaltszeit: "2 Stunden, 0 Minuten, 0 Sekunden"},
			Prio2: dto.PrioStatistik{Anzahl: 0, MittlereAufenthaltszeit: "Keine Daten"},
		},
	}
	h := NewStatisticsHandler(mock)

	w := doJSON(h.GetStatistics, "GET", "/statistics", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body struct {
		Success    bool                   `json:"success"`
		Statistics dto.StatisticsResponse `json:"statistics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Statistics.Prio2.MittlereAufenthaltszeit != "Keine Daten" {
		t.Errorf("空类别占位错误: %q", body.Statistics.Prio2.MittlereAufenthaltszeit)
	}
}

func TestStatisticsHandler_Export(t *testing.T) {
	mock := &mockStatisticsService{
		exportBuf:  bytes.NewBufferString("workbook content"),
		exportName: "qs-archiv-2026-01-15.xlsx",
	}
	h := NewStatisticsHandler(mock)

	w := doJSON(h.ExportArchive, "GET", "/statistics/export", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}
