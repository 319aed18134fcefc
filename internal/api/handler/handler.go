package handler

import "skillswap/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Skill        *SkillHandler
	Swap         *SwapHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Skill:        NewSkillHandler(svc.Skill),
		Swap:         NewSwapHandler(svc.Swap),
		Notification: NewNotificationHandler(svc.Notification),
		Admin:        NewAdminHandler(svc.Admin, svc.Export),
	}
}
