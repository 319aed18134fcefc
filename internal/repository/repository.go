package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Skill        SkillRepository
	UserSkill    UserSkillRepository
	Swap         SwapRepository
	Rating       RatingRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Skill:        NewSkillRepo(db),
		UserSkill:    NewUserSkillRepo(db),
		Swap:         NewSwapRepo(db),
		Rating:       NewRatingRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

// BeginTx 开启事务
// 单元测试中 db 为 nil 时返回 nil 事务，调用方需做 nil 判断
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
