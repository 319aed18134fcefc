package model

import "time"

// Notification 通知消息表 — 对应 notifications
// 服务端在申请创建/接受/拒绝/完成/评分及平台广播时写入；客户端只能置已读
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Message        string    `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"read"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
