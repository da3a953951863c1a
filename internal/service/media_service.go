package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// ── 媒体附件模块业务错误 ──

var (
	ErrInvalidMediaType = errors.New("file_type must be video or text")
	// ErrMediaContentMissing 纯文本备注缺少内容，视频附件缺少文件
	ErrMediaContentMissing = errors.New("media content or file missing")
)

// MediaService 工单媒体附件业务接口
type MediaService interface {
	// Create 创建附件；视频的 filePath 为 Handler 已落盘的相对路径
	Create(ctx context.Context, req *dto.CreateMediaRequest, filePath string) (*model.OrderMedia, error)
	List(ctx context.Context) ([]model.OrderMedia, error)
	ListByNummer(ctx context.Context, auftragsnummer string) ([]model.OrderMedia, error)
}

type mediaService struct {
	repo repository.MediaRepository
	log  *zap.Logger
}

// NewMediaService 创建 MediaService 实例
func NewMediaService(repo repository.MediaRepository, log *zap.Logger) MediaService {
	return &mediaService{repo: repo, log: log}
}

func (s *mediaService) Create(ctx context.Context, req *dto.CreateMediaRequest, filePath string) (*model.OrderMedia, error) {
	nummer := strings.TrimSpace(req.Auftragsnummer)
	if nummer == "" {
		return nil, ErrAuftragsnummerEmpty
	}

	switch req.FileType {
	case model.MediaTypeVideo:
		if filePath == "" {
			return nil, ErrMediaContentMissing
		}
	case model.MediaTypeText:
		if strings.TrimSpace(req.Content) == "" {
			return nil, ErrMediaContentMissing
		}
	default:
		return nil, ErrInvalidMediaType
	}

	media := &model.OrderMedia{
		Auftragsnummer: nummer,
		FilePath:       filePath,
		FileType:       req.FileType,
		Content:        req.Content,
	}
	if err := s.repo.Create(ctx, media); err != nil {
		s.log.Error("创建媒体附件失败", zap.String("auftragsnummer", nummer), zap.Error(err))
		return nil, err
	}

	s.log.Info("媒体附件已创建",
		zap.Uint("id", media.ID),
		zap.String("auftragsnummer", nummer),
		zap.String("file_type", media.FileType))
	return media, nil
}

func (s *mediaService) List(ctx context.Context) ([]model.OrderMedia, error) {
	return s.repo.List(ctx)
}

func (s *mediaService) ListByNummer(ctx context.Context, auftragsnummer string) ([]model.OrderMedia, error) {
	return s.repo.ListByNummer(ctx, strings.TrimSpace(auftragsnummer))
}
