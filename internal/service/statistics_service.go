package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
	"github.com/KalitoMero/silent-excel-vault/pkg/durfmt"
)

// KeineDaten 类别无可统计工单时的均值占位
const KeineDaten = "Keine Daten"

// StatisticsService 归档统计业务接口
type StatisticsService interface {
	// Statistics 按优先级统计归档工单；均值只计入正常完成的工单
	Statistics(ctx context.Context) (*dto.StatisticsResponse, error)
	// ExportArchive 将归档导出为 xlsx 工作簿，返回内容与下载文件名
	ExportArchive(ctx context.Context) (*bytes.Buffer, string, error)
}

type statisticsService struct {
	repo repository.ScanOrderRepository
	log  *zap.Logger
	now  func() time.Time
}

// NewStatisticsService 创建 StatisticsService 实例
func NewStatisticsService(repo repository.ScanOrderRepository, log *zap.Logger) StatisticsService {
	return &statisticsService{repo: repo, log: log, now: time.Now}
}

func (s *statisticsService) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	orders, err := s.repo.ListArchived(ctx)
	if err != nil {
		return nil, err
	}

	var (
		sums   [3]time.Duration
		counts [3]int
	)
	for i := range orders {
		o := &orders[i]
		// 取消的工单不计入均值（没有有效停留时长）
		if o.Ergebnis != model.ErgebnisAbgeschlossen || o.AbschlussZeitstempel == nil {
			continue
		}
		if o.Prioritaet != 1 && o.Prioritaet != 2 {
			continue
		}
		sums[o.Prioritaet] += o.AbschlussZeitstempel.Sub(o.Zeitstempel)
		counts[o.Prioritaet]++
	}

	return &dto.StatisticsResponse{
		Prio1: prioStatistik(counts[1], sums[1]),
		Prio2: prioStatistik(counts[2], sums[2]),
	}, nil
}

func prioStatistik(count int, sum time.Duration) dto.PrioStatistik {
	stat := dto.PrioStatistik{Anzahl: count, MittlereAufenthaltszeit: KeineDaten}
	if count > 0 {
		stat.MittlereAufenthaltszeit = durfmt.Aufenthaltszeit(sum / time.Duration(count))
	}
	return stat
}

func (s *statisticsService) ExportArchive(ctx context.Context) (*bytes.Buffer, string, error) {
	orders, err := s.repo.ListArchived(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Archiv"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}

	header := []interface{}{
		"Auftragsnummer", "Priorität", "Erfasst am",
		"Abgeschlossen am", "Aufenthaltszeit in QS", "Abteilung", "Zusatzinfo", "Ergebnis",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", err
	}

	for i := range orders {
		o := &orders[i]
		abschluss, aufenthalt := "", ""
		if o.AbschlussZeitstempel != nil {
			abschluss = o.AbschlussZeitstempel.Format("02.01.2006 15:04:05")
			if o.Ergebnis == model.ErgebnisAbgeschlossen {
				aufenthalt = durfmt.Seit(o.Zeitstempel, *o.AbschlussZeitstempel)
			}
		}
		row := []interface{}{
			o.Auftragsnummer,
			o.Prioritaet,
			o.Zeitstempel.Format("02.01.2006 15:04:05"),
			abschluss,
			aufenthalt,
			o.Abteilung,
			o.Zusatzinfo,
			o.Ergebnis,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.log.Error("导出归档工作簿失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("qs-archiv-%s.xlsx", s.now().Format("2006-01-02"))
	s.log.Info("归档已导出", zap.String("filename", filename), zap.Int("rows", len(orders)))
	return buf, filename, nil
}
