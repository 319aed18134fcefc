package repository

import (
	"context"

	"gorm.io/gorm"

	"skillswap/backend/internal/model"
)

// RatingRepository 评分数据访问接口
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	// Exists 同一 (申请, 评分人, 被评人) 是否已有评分
	Exists(ctx context.Context, swapID, raterID, ratedUserID string) (bool, error)
	// AverageForUser 用户收到的全部评分均值；无评分返回 0
	AverageForUser(ctx context.Context, userID string) (float64, error)
	// ListAll 全量评分（管理端报表），预加载关联用户
	ListAll(ctx context.Context) ([]model.Rating, error)
}

// ratingRepo RatingRepository 的 GORM 实现
type ratingRepo struct {
	db *gorm.DB
}

// NewRatingRepo 创建 RatingRepository 实例
func NewRatingRepo(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepo) Exists(ctx context.Context, swapID, raterID, ratedUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("swap_request_id = ? AND rater_id = ? AND rated_user_id = ?",
			swapID, raterID, ratedUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ratingRepo) AverageForUser(ctx context.Context, userID string) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("rated_user_id = ?", userID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *ratingRepo) ListAll(ctx context.Context) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Preload("Rater").
		Preload("RatedUser").
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
