package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillswap/backend/internal/model"
)

// UserSkillRepository 用户技能关联数据访问接口
type UserSkillRepository interface {
	ListOffered(ctx context.Context, userID string) ([]model.OfferedSkill, error)
	ListWanted(ctx context.Context, userID string) ([]model.WantedSkill, error)
	// AddOffered / AddWanted 重复挂接时幂等（保留原记录）
	AddOffered(ctx context.Context, assoc *model.OfferedSkill) error
	AddWanted(ctx context.Context, assoc *model.WantedSkill) error
	RemoveOffered(ctx context.Context, userID, skillID string) (int64, error)
	RemoveWanted(ctx context.Context, userID, skillID string) (int64, error)
	// ReplaceOffered / ReplaceWanted 整体重设（资料编辑提交技能 ID 集合时）
	ReplaceOffered(ctx context.Context, userID string, skillIDs []string) error
	ReplaceWanted(ctx context.Context, userID string, skillIDs []string) error
}

// userSkillRepo UserSkillRepository 的 GORM 实现
type userSkillRepo struct {
	db *gorm.DB
}

// NewUserSkillRepo 创建 UserSkillRepository 实例
func NewUserSkillRepo(db *gorm.DB) UserSkillRepository {
	return &userSkillRepo{db: db}
}

func (r *userSkillRepo) ListOffered(ctx context.Context, userID string) ([]model.OfferedSkill, error) {
	var assocs []model.OfferedSkill
	err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Find(&assocs).Error
	if err != nil {
		return nil, err
	}
	return assocs, nil
}

func (r *userSkillRepo) ListWanted(ctx context.Context, userID string) ([]model.WantedSkill, error) {
	var assocs []model.WantedSkill
	err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Find(&assocs).Error
	if err != nil {
		return nil, err
	}
	return assocs, nil
}

func (r *userSkillRepo) AddOffered(ctx context.Context, assoc *model.OfferedSkill) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(assoc).Error
}

func (r *userSkillRepo) AddWanted(ctx context.Context, assoc *model.WantedSkill) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(assoc).Error
}

func (r *userSkillRepo) RemoveOffered(ctx context.Context, userID, skillID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&model.OfferedSkill{})
	return res.RowsAffected, res.Error
}

func (r *userSkillRepo) RemoveWanted(ctx context.Context, userID, skillID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&model.WantedSkill{})
	return res.RowsAffected, res.Error
}

func (r *userSkillRepo) ReplaceOffered(ctx context.Context, userID string, skillIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.OfferedSkill{}).Error; err != nil {
			return err
		}
		for _, skillID := range skillIDs {
			assoc := &model.OfferedSkill{UserID: userID, SkillID: skillID, Level: model.LevelBeginner}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(assoc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userSkillRepo) ReplaceWanted(ctx context.Context, userID string, skillIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.WantedSkill{}).Error; err != nil {
			return err
		}
		for _, skillID := range skillIDs {
			assoc := &model.WantedSkill{UserID: userID, SkillID: skillID, Level: model.LevelAny, Priority: model.PriorityMedium}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(assoc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
