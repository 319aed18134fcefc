package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skillswap/backend/internal/model"
)

// SkillRepository 技能数据访问接口
type SkillRepository interface {
	Create(ctx context.Context, skill *model.Skill) error
	GetByID(ctx context.Context, id string) (*model.Skill, error)
	GetByName(ctx context.Context, name string) (*model.Skill, error)
	// GetOrCreate 按名称取技能，不存在则创建（名称全局唯一）
	GetOrCreate(ctx context.Context, name, description string) (*model.Skill, error)
	// List 按名称子串过滤（大小写不敏感），search 为空返回全部
	List(ctx context.Context, search string) ([]model.Skill, error)
	// SearchAll 管理端检索：名称或描述子串匹配
	SearchAll(ctx context.Context, search string) ([]model.Skill, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Skill, error)
	// ListOfferedByAnyUser / ListWantedByAnyUser 至少被一名用户登记的技能目录
	ListOfferedByAnyUser(ctx context.Context) ([]model.Skill, error)
	ListWantedByAnyUser(ctx context.Context) ([]model.Skill, error)
	Delete(ctx context.Context, id string) error
}

// skillRepo SkillRepository 的 GORM 实现
type skillRepo struct {
	db *gorm.DB
}

// NewSkillRepo 创建 SkillRepository 实例
func NewSkillRepo(db *gorm.DB) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, skill *model.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *skillRepo) GetByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	err := r.db.WithContext(ctx).Where("skill_id = ?", id).First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepo) GetByName(ctx context.Context, name string) (*model.Skill, error) {
	var skill model.Skill
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepo) GetOrCreate(ctx context.Context, name, description string) (*model.Skill, error) {
	skill, err := r.GetByName(ctx, name)
	if err == nil {
		return skill, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.Skill{Name: name, Description: description}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		// 并发创建同名技能时回查一次
		if existing, getErr := r.GetByName(ctx, name); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

func (r *skillRepo) List(ctx context.Context, search string) ([]model.Skill, error) {
	db := r.db.WithContext(ctx).Model(&model.Skill{})
	if search != "" {
		db = db.Where("name ILIKE ?", "%"+search+"%")
	}

	var skills []model.Skill
	if err := db.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepo) SearchAll(ctx context.Context, search string) ([]model.Skill, error) {
	db := r.db.WithContext(ctx).Model(&model.Skill{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var skills []model.Skill
	if err := db.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var skills []model.Skill
	err := r.db.WithContext(ctx).Where("skill_id IN ?", ids).Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepo) ListOfferedByAnyUser(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM user_offered_skills uos WHERE uos.skill_id = skills.skill_id)").
		Order("name ASC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepo) ListWantedByAnyUser(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM user_wanted_skills uws WHERE uws.skill_id = skills.skill_id)").
		Order("name ASC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("skill_id = ?", id).Delete(&model.Skill{}).Error
}
