package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillswap/backend/internal/model"
)

// SwapRepository 换技能申请数据访问接口
type SwapRepository interface {
	Create(ctx context.Context, swap *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	// ListByUser 返回用户发出与收到的全部申请，按创建时间倒序
	ListByUser(ctx context.Context, userID string) ([]model.SwapRequest, error)
	// ListRecentSent 返回用户最近发出的 limit 条申请
	ListRecentSent(ctx context.Context, userID string, limit int) ([]model.SwapRequest, error)
	// ListAll 管理端全量列表，status 非空时过滤
	ListAll(ctx context.Context, status string) ([]model.SwapRequest, error)
	// UpdateStatus 条件更新：仅当前状态为 fromStatus 时流转到 toStatus
	// 返回受影响行数，0 表示状态已被并发修改
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error)
	// ExistsPending 同一发起方到同一接收方是否已有 pending 申请
	ExistsPending(ctx context.Context, fromUserID, toUserID string) (bool, error)
}

// swapRepo SwapRepository 的 GORM 实现
type swapRepo struct {
	db *gorm.DB
}

// NewSwapRepo 创建 SwapRepository 实例
func NewSwapRepo(db *gorm.DB) SwapRepository {
	return &swapRepo{db: db}
}

func (r *swapRepo) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("FromUser").
		Preload("ToUser").
		Preload("Ratings")
}

func (r *swapRepo) Create(ctx context.Context, swap *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(swap).Error
}

func (r *swapRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var swap model.SwapRequest
	err := r.preload(r.db.WithContext(ctx)).
		Where("swap_request_id = ?", id).
		First(&swap).Error
	if err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *swapRepo) ListByUser(ctx context.Context, userID string) ([]model.SwapRequest, error) {
	var swaps []model.SwapRequest
	err := r.preload(r.db.WithContext(ctx)).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&swaps).Error
	if err != nil {
		return nil, err
	}
	return swaps, nil
}

func (r *swapRepo) ListRecentSent(ctx context.Context, userID string, limit int) ([]model.SwapRequest, error) {
	var swaps []model.SwapRequest
	err := r.preload(r.db.WithContext(ctx)).
		Where("from_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&swaps).Error
	if err != nil {
		return nil, err
	}
	return swaps, nil
}

func (r *swapRepo) ListAll(ctx context.Context, status string) ([]model.SwapRequest, error) {
	db := r.preload(r.db.WithContext(ctx))
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var swaps []model.SwapRequest
	if err := db.Order("created_at DESC").Find(&swaps).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

func (r *swapRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{
			"status":     toStatus,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *swapRepo) ExistsPending(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?",
			fromUserID, toUserID, model.SwapStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
