package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/repository"
)

var ErrNotificationNotFound = errors.New("通知不存在")

// 通知列表只取最近 10 条，前端铃铛下拉不翻页
const notificationListLimit = 10

// NotificationService 通知业务接口
type NotificationService interface {
	List(ctx context.Context, userID string) ([]dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID string) error
	// MarkRead 单条置已读；非本人通知视为不存在
	MarkRead(ctx context.Context, userID, notificationID string) error
}

// notificationService NotificationService 实现
type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	ns, err := s.repo.Notification.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.NotificationResponse, 0, len(ns))
	for i := range ns {
		result = append(result, toNotificationResponse(&ns[i]))
	}
	return result, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	affected, err := s.repo.Notification.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
