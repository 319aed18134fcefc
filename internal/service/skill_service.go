package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/repository"
)

var ErrSkillNotFound = errors.New("技能不存在")

// SkillService 技能业务接口
type SkillService interface {
	// List 技能目录，search 为名称子串过滤
	List(ctx context.Context, search string) ([]dto.SkillResponse, error)
	// Create 按名称取或建技能（名称全局唯一，重复提交返回已有记录）
	Create(ctx context.Context, name, description string) (*dto.SkillResponse, error)
	Get(ctx context.Context, id string) (*dto.SkillResponse, error)
	// ListOffered / ListWanted 至少被一名用户登记为可教授/求学的技能
	ListOffered(ctx context.Context) ([]dto.SkillResponse, error)
	ListWanted(ctx context.Context) ([]dto.SkillResponse, error)
}

// skillService SkillService 实现
type skillService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSkillService 创建技能服务
func NewSkillService(repo *repository.Repository, logger *zap.Logger) SkillService {
	return &skillService{repo: repo, logger: logger}
}

func (s *skillService) List(ctx context.Context, search string) ([]dto.SkillResponse, error) {
	skills, err := s.repo.Skill.List(ctx, search)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		result = append(result, toSkillResponse(&skills[i]))
	}
	return result, nil
}

func (s *skillService) Create(ctx context.Context, name, description string) (*dto.SkillResponse, error) {
	skill, err := s.repo.Skill.GetOrCreate(ctx, name, description)
	if err != nil {
		return nil, err
	}
	resp := toSkillResponse(skill)
	return &resp, nil
}

func (s *skillService) ListOffered(ctx context.Context) ([]dto.SkillResponse, error) {
	skills, err := s.repo.Skill.ListOfferedByAnyUser(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		result = append(result, toSkillResponse(&skills[i]))
	}
	return result, nil
}

func (s *skillService) ListWanted(ctx context.Context) ([]dto.SkillResponse, error) {
	skills, err := s.repo.Skill.ListWantedByAnyUser(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		result = append(result, toSkillResponse(&skills[i]))
	}
	return result, nil
}

func (s *skillService) Get(ctx context.Context, id string) (*dto.SkillResponse, error) {
	skill, err := s.repo.Skill.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	resp := toSkillResponse(skill)
	return &resp, nil
}
