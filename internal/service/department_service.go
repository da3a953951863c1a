package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNameEmpty  = errors.New("department name must not be empty")
	ErrDepartmentNameExists = errors.New("department name already exists")
	ErrDepartmentNotFound   = errors.New("department not found")
)

// DepartmentService 部门业务接口
type DepartmentService interface {
	Create(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	// Delete 删除部门及其全部追加信息（数据库级联）
	Delete(ctx context.Context, id uint) error
}

type departmentService struct {
	repo repository.DepartmentRepository
	log  *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo repository.DepartmentRepository, log *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, log: log}
}

func (s *departmentService) Create(ctx context.Context, name string) (*model.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrDepartmentNameEmpty
	}

	dept := &model.Department{Name: name}
	if err := s.repo.Create(ctx, dept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDepartmentNameExists
		}
		s.log.Error("创建部门失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.log.Info("部门已创建", zap.Uint("id", dept.ID), zap.String("name", name))
	return dept, nil
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	return s.repo.List(ctx)
}

func (s *departmentService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("删除部门失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrDepartmentNotFound
	}
	s.log.Info("部门已删除", zap.Uint("id", id))
	return nil
}
