package service

import (
	"context"
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// ── 参照数据导入业务错误 ──

var (
	ErrEmptyWorkbook = errors.New("workbook contains no data")
	ErrEmptyImport   = errors.New("import data must not be empty")
	ErrInvalidUpload = errors.New("uploaded file is not a readable xlsx workbook")
)

// ImportService 参照数据导入业务接口
// 两条导入路径：前端已解析好的行矩阵（JSON），或直接上传 .xlsx 文件
type ImportService interface {
	ImportMatrix(ctx context.Context, req *dto.ImportExcelRequest) (int, error)
	ImportWorkbook(ctx context.Context, filename string, r io.Reader) (int, error)
	// LatestData 最新一份参照数据；从未导入过时返回 (nil, nil)
	LatestData(ctx context.Context) (*model.ExcelData, error)
}

type importService struct {
	repo repository.SettingsRepository
	log  *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo repository.SettingsRepository, log *zap.Logger) ImportService {
	return &importService{repo: repo, log: log}
}

func (s *importService) ImportMatrix(ctx context.Context, req *dto.ImportExcelRequest) (int, error) {
	if len(req.Data) == 0 {
		return 0, ErrEmptyImport
	}
	return s.save(ctx, req.Filename, model.RowMatrix(req.Data))
}

func (s *importService) ImportWorkbook(ctx context.Context, filename string, r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		s.log.Warn("解析上传的工作簿失败", zap.String("filename", filename), zap.Error(err))
		return 0, ErrInvalidUpload
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, ErrEmptyWorkbook
	}

	matrix := make(model.RowMatrix, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		matrix = append(matrix, cells)
	}
	return s.save(ctx, filename, matrix)
}

func (s *importService) LatestData(ctx context.Context) (*model.ExcelData, error) {
	return s.repo.LatestExcelData(ctx)
}

func (s *importService) save(ctx context.Context, filename string, matrix model.RowMatrix) (int, error) {
	data := &model.ExcelData{Filename: filename, Data: matrix}
	if err := s.repo.SaveExcelData(ctx, data); err != nil {
		s.log.Error("保存参照数据失败", zap.String("filename", filename), zap.Error(err))
		return 0, err
	}
	s.log.Info("参照数据已导入",
		zap.String("filename", filename),
		zap.Int("rows", len(matrix)))
	return len(matrix), nil
}
