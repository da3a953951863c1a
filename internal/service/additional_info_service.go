package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// ── 追加信息模块业务错误 ──

var (
	ErrAdditionalInfoNameEmpty = errors.New("additional info name must not be empty")
	ErrAdditionalInfoNotFound  = errors.New("additional info not found")
)

// AdditionalInfoService 追加信息业务接口
type AdditionalInfoService interface {
	Create(ctx context.Context, req *dto.CreateAdditionalInfoRequest) (*model.AdditionalInfo, error)
	List(ctx context.Context) ([]dto.AdditionalInfoResponse, error)
	// ListForDepartment 按部门名过滤（向导步骤 4 的候选列表）
	ListForDepartment(ctx context.Context, departmentName string) ([]model.AdditionalInfo, error)
	Delete(ctx context.Context, id uint) error
}

type additionalInfoService struct {
	repo     repository.AdditionalInfoRepository
	deptRepo repository.DepartmentRepository
	log      *zap.Logger
}

// NewAdditionalInfoService 创建 AdditionalInfoService 实例
func NewAdditionalInfoService(repo repository.AdditionalInfoRepository, deptRepo repository.DepartmentRepository, log *zap.Logger) AdditionalInfoService {
	return &additionalInfoService{repo: repo, deptRepo: deptRepo, log: log}
}

func (s *additionalInfoService) Create(ctx context.Context, req *dto.CreateAdditionalInfoRequest) (*model.AdditionalInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrAdditionalInfoNameEmpty
	}

	if _, err := s.deptRepo.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	info := &model.AdditionalInfo{Name: name, DepartmentID: req.DepartmentID}
	if err := s.repo.Create(ctx, info); err != nil {
		s.log.Error("创建追加信息失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.log.Info("追加信息已创建",
		zap.Uint("id", info.ID),
		zap.String("name", name),
		zap.Uint("department_id", req.DepartmentID))
	return info, nil
}

func (s *additionalInfoService) List(ctx context.Context) ([]dto.AdditionalInfoResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.AdditionalInfoResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.AdditionalInfoResponse{
			ID:             e.ID,
			Name:           e.Name,
			DepartmentID:   e.DepartmentID,
			DepartmentName: e.DepartmentName,
		})
	}
	return resp, nil
}

func (s *additionalInfoService) ListForDepartment(ctx context.Context, departmentName string) ([]model.AdditionalInfo, error) {
	dept, err := s.deptRepo.GetByName(ctx, strings.TrimSpace(departmentName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return s.repo.ListByDepartmentID(ctx, dept.ID)
}

func (s *additionalInfoService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("删除追加信息失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrAdditionalInfoNotFound
	}
	s.log.Info("追加信息已删除", zap.Uint("id", id))
	return nil
}
