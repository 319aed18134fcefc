package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/model"
	"skillswap/backend/internal/repository"
)

var ErrCannotBanSelf = errors.New("不能封禁自己的账号")

// AdminService 管理端业务接口
type AdminService interface {
	// ListUsers 全量用户列表，search 匹配姓名/技能名（含非公开与被封禁用户）
	ListUsers(ctx context.Context, search string) ([]dto.UserResponse, error)
	// SetBanned 封禁/解封用户（软标记 is_active）
	SetBanned(ctx context.Context, adminID, userID string, banned bool) (*dto.UserResponse, error)
	ListSkills(ctx context.Context, search string) ([]dto.SkillResponse, error)
	DeleteSkill(ctx context.Context, skillID string) error
	ListSwaps(ctx context.Context, status string) ([]dto.SwapResponse, error)
	// Broadcast 向全部未封禁用户群发站内通知
	Broadcast(ctx context.Context, req *dto.BroadcastRequest) (*dto.BroadcastResponse, error)
}

// adminService AdminService 实现
type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService 创建管理端服务
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

func (s *adminService) ListUsers(ctx context.Context, search string) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		if !matchesQuery(&users[i], search) {
			continue
		}
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

func (s *adminService) SetBanned(ctx context.Context, adminID, userID string, banned bool) (*dto.UserResponse, error) {
	if adminID == userID {
		return nil, ErrCannotBanSelf
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = !banned
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("管理员变更用户封禁状态",
		zap.String("admin_id", adminID),
		zap.String("user_id", userID),
		zap.Bool("banned", banned),
	)

	return toUserResponse(user), nil
}

func (s *adminService) ListSkills(ctx context.Context, search string) ([]dto.SkillResponse, error) {
	skills, err := s.repo.Skill.SearchAll(ctx, search)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		result = append(result, toSkillResponse(&skills[i]))
	}
	return result, nil
}

func (s *adminService) DeleteSkill(ctx context.Context, skillID string) error {
	if _, err := s.repo.Skill.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		return err
	}

	if err := s.repo.Skill.Delete(ctx, skillID); err != nil {
		return err
	}

	s.logger.Info("管理员删除技能", zap.String("skill_id", skillID))
	return nil
}

func (s *adminService) ListSwaps(ctx context.Context, status string) ([]dto.SwapResponse, error) {
	swaps, err := s.repo.Swap.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SwapResponse, 0, len(swaps))
	for i := range swaps {
		resp, err := assembleSwapResponse(ctx, s.repo, &swaps[i], "")
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *adminService) Broadcast(ctx context.Context, req *dto.BroadcastRequest) (*dto.BroadcastResponse, error) {
	users, err := s.repo.User.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("【平台公告】%s：%s", req.Title, req.Message)
	ns := make([]model.Notification, 0, len(users))
	for i := range users {
		ns = append(ns, model.Notification{UserID: users[i].UserID, Message: message})
	}

	// 群发在事务内完成，避免部分写入
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Notification.CreateBatch(ctx, ns); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	s.logger.Info("平台公告已群发",
		zap.String("title", req.Title),
		zap.Int("users_notified", len(ns)),
	)

	return &dto.BroadcastResponse{UsersNotified: len(ns)}, nil
}
