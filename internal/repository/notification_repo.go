package repository

import (
	"context"

	"gorm.io/gorm"

	"skillswap/backend/internal/model"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateBatch(ctx context.Context, ns []model.Notification) error
	// ListByUser 返回用户最近 limit 条通知，按创建时间倒序
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	// MarkAllRead 用户全部未读通知置已读
	MarkAllRead(ctx context.Context, userID string) error
	// MarkRead 指定通知置已读（校验归属）；返回受影响行数
	MarkRead(ctx context.Context, id, userID string) (int64, error)
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ns, 200).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ns).Error
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Update("is_read", true).Error
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
