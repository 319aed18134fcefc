package repository

import (
	"context"

	"gorm.io/gorm"

	"skillswap/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateRating(ctx context.Context, userID string, rating float64) error
	// ListPublic 返回公开且未封禁的用户（排除 excludeID），预加载技能关联
	// 搜索与分页为内存操作，由 Service 层完成
	ListPublic(ctx context.Context, excludeID string) ([]model.User, error)
	// ListAll 返回全部用户（管理端），预加载技能关联
	ListAll(ctx context.Context) ([]model.User, error)
	// ListActive 返回全部未封禁用户（平台广播目标）
	ListActive(ctx context.Context) ([]model.User, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("SkillsOffered.Skill").
		Preload("SkillsWanted.Skill").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("SkillsOffered.Skill").
		Preload("SkillsWanted.Skill").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) UpdateRating(ctx context.Context, userID string, rating float64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("rating", rating).Error
}

func (r *userRepo) ListPublic(ctx context.Context, excludeID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("SkillsOffered.Skill").
		Preload("SkillsWanted.Skill").
		Where("is_public = TRUE AND is_active = TRUE AND user_id <> ?", excludeID).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("SkillsOffered.Skill").
		Preload("SkillsWanted.Skill").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) ListActive(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
