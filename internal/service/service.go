package service

import (
	"go.uber.org/zap"

	"skillswap/backend/config"
	"skillswap/backend/internal/repository"
	"skillswap/backend/pkg/jwt"
	"skillswap/backend/pkg/mailer"
	"skillswap/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Skill        SkillService
	Swap         SwapService
	Notification NotificationService
	Admin        AdminService
	Export       ExportService
}

// NewService 创建 Service 聚合
// rdb / mail 可为 nil（对应功能降级）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail *mailer.Mailer,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Skill:        NewSkillService(repo, logger),
		Swap:         NewSwapService(cfg, repo, mail, logger),
		Notification: NewNotificationService(repo, logger),
		Admin:        NewAdminService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
