package dto

// ── 通知模块 DTO ──

// MarkReadRequest 单条通知置已读请求（PATCH）
type MarkReadRequest struct {
	NotificationID string `json:"notification_id" binding:"required,uuid"`
}
